// Package config holds the rendering options of a map. Defaults can be
// loaded from a YAML file and are then overridden by the option
// declarations of each document.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"textmapper/core"
	"textmapper/geometry"
	"textmapper/hexflower"
	"textmapper/labels"
)

// Option keys.
const (
	KeyFlowerStart       = "flower-start"
	KeyCounterclockwise  = "counterclockwise"
	KeyHexFlower         = "hexflower"
	KeyMap               = "map"
	KeyCoordinatesFormat = "coordinates-format"
	KeyHorizontal        = "horizontal"
	KeySwapEvenOdd       = "swap-even-odd"
	KeyGlobal            = "global"
	KeyRelabel           = "relabel"
	KeyPathFrequency     = "pathFrequency"
	KeyPathDepth         = "pathDepth"
	KeyPathRate          = "pathRate"
	KeyPathCurvature     = "pathCurvature"
)

// ErrUnknownOption is the cause of an OptionError for a key nobody handles.
var ErrUnknownOption = errors.New("unknown option")

// OptionError reports an option declaration that could not be applied.
type OptionError struct {
	Key   string
	Value string
	Err   error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

// Options controls how a document is laid out.
type Options struct {
	FlowerStart       hexflower.Direction
	Counterclockwise  bool
	Relabel           bool
	CoordinatesFormat string
	// Horizontal selects pointy-top hexes laid out in rows.
	Horizontal  bool
	SwapEvenOdd bool
	// Global disables id namespacing.
	Global bool
	Curve  core.CurveOptions
}

// Default returns the options a document starts with.
func Default() Options {
	return Options{
		FlowerStart:       hexflower.North,
		CoordinatesFormat: labels.DefaultFormat,
		Curve: core.CurveOptions{
			Frequency: 1,
			Depth:     0.1,
			Rate:      0.1,
		},
	}
}

// Orientation returns the grid orientation the options select.
func (o Options) Orientation() geometry.Orientation {
	return geometry.FromFlags(!o.Horizontal, o.SwapEvenOdd)
}

// file is the YAML form of Options. Pointers distinguish absent keys.
type file struct {
	FlowerStart       *string  `yaml:"flower-start"`
	Counterclockwise  *bool    `yaml:"counterclockwise"`
	Relabel           *bool    `yaml:"relabel"`
	CoordinatesFormat *string  `yaml:"coordinates-format"`
	Horizontal        *bool    `yaml:"horizontal"`
	SwapEvenOdd       *bool    `yaml:"swap-even-odd"`
	Global            *bool    `yaml:"global"`
	PathFrequency     *float64 `yaml:"pathFrequency"`
	PathDepth         *float64 `yaml:"pathDepth"`
	PathRate          *float64 `yaml:"pathRate"`
	PathCurvature     *float64 `yaml:"pathCurvature"`
}

// Load reads options from a YAML file on top of Default.
func Load(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return FromReader(f)
}

// FromReader reads YAML options from r on top of Default. An empty input
// yields Default.
func FromReader(r io.Reader) (Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Options{}, fmt.Errorf("read config: %w", err)
	}

	var raw file
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Options{}, fmt.Errorf("parse config: %w", err)
	}

	opts := Default()
	if raw.FlowerStart != nil {
		d, err := hexflower.ParseDirection(*raw.FlowerStart)
		if err != nil {
			return Options{}, &OptionError{Key: KeyFlowerStart, Value: *raw.FlowerStart, Err: err}
		}
		opts.FlowerStart = d
	}
	setBool(&opts.Counterclockwise, raw.Counterclockwise)
	setBool(&opts.Relabel, raw.Relabel)
	setBool(&opts.Horizontal, raw.Horizontal)
	setBool(&opts.SwapEvenOdd, raw.SwapEvenOdd)
	setBool(&opts.Global, raw.Global)
	if raw.CoordinatesFormat != nil && *raw.CoordinatesFormat != "" {
		opts.CoordinatesFormat = *raw.CoordinatesFormat
	}
	setFloat(&opts.Curve.Frequency, raw.PathFrequency)
	setFloat(&opts.Curve.Depth, raw.PathDepth)
	setFloat(&opts.Curve.Rate, raw.PathRate)
	setFloat(&opts.Curve.Curvature, raw.PathCurvature)
	return opts, nil
}

func setBool(dst, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// NormalizeKey folds an option key so that "PathDepth" and "pathdepth" match.
func NormalizeKey(key string) string {
	return cases.Fold().String(strings.TrimSpace(key))
}

// Apply overrides the options with one document declaration. Flag options
// are set by their presence unless the value says otherwise. Declarations
// for hexflower and map belong to the session and are rejected here, as is
// any unknown key.
func (o *Options) Apply(decl core.OptionDecl) error {
	fail := func(err error) error {
		return &OptionError{Key: decl.Key, Value: decl.Value, Err: err}
	}

	switch NormalizeKey(decl.Key) {
	case KeyFlowerStart:
		d, err := hexflower.ParseDirection(decl.Value)
		if err != nil {
			return fail(err)
		}
		o.FlowerStart = d
	case KeyCounterclockwise:
		return applyFlag(&o.Counterclockwise, decl.Value, fail)
	case KeyRelabel:
		return applyFlag(&o.Relabel, decl.Value, fail)
	case KeyHorizontal:
		return applyFlag(&o.Horizontal, decl.Value, fail)
	case KeySwapEvenOdd:
		return applyFlag(&o.SwapEvenOdd, decl.Value, fail)
	case KeyGlobal:
		return applyFlag(&o.Global, decl.Value, fail)
	case KeyCoordinatesFormat:
		if strings.TrimSpace(decl.Value) == "" {
			return fail(errors.New("empty format"))
		}
		o.CoordinatesFormat = decl.Value
	case NormalizeKey(KeyPathFrequency):
		return applyFloat(&o.Curve.Frequency, decl.Value, fail)
	case NormalizeKey(KeyPathDepth):
		return applyFloat(&o.Curve.Depth, decl.Value, fail)
	case NormalizeKey(KeyPathRate):
		return applyFloat(&o.Curve.Rate, decl.Value, fail)
	case NormalizeKey(KeyPathCurvature):
		return applyFloat(&o.Curve.Curvature, decl.Value, fail)
	default:
		return fail(ErrUnknownOption)
	}
	return nil
}

func applyFlag(dst *bool, value string, fail func(error) error) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*dst = true
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fail(err)
	}
	*dst = b
	return nil
}

func applyFloat(dst *float64, value string, fail func(error) error) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fail(err)
	}
	*dst = f
	return nil
}

// Flower is a parsed hexflower declaration.
type Flower struct {
	Letter string
	Center string
}

// ParseFlower accepts the letter and centre either as fields or as the
// value "A center:1010". The centre may carry a "center:" prefix.
func ParseFlower(decl core.OptionDecl) (Flower, error) {
	f := Flower{Letter: strings.TrimSpace(decl.Letter), Center: strings.TrimSpace(decl.Center)}
	if fields := strings.Fields(decl.Value); len(fields) > 0 {
		if f.Letter == "" {
			f.Letter = fields[0]
		}
		if f.Center == "" && len(fields) > 1 {
			f.Center = fields[1]
		}
	}
	if i := strings.LastIndex(f.Center, ":"); i >= 0 {
		f.Center = f.Center[i+1:]
	}
	if f.Letter == "" || f.Center == "" {
		return f, &OptionError{Key: KeyHexFlower, Value: decl.Value, Err: errors.New("needs a letter and a center")}
	}
	return f, nil
}
