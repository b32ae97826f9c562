package validation

import (
	"fmt"
	"strings"

	"textmapper/config"
	"textmapper/core"
	"textmapper/hexflower"
	"textmapper/labels"
	"textmapper/pathfinding"
)

// Severity of a finding.
type Severity int

const (
	// Warning marks something the renderer works around.
	Warning Severity = iota
	// Error marks something the renderer drops or cannot draw as written.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// DocumentValidator checks a document before it is laid out. The mapper is
// lenient and only logs what it skips; the validator reports all of it.
type DocumentValidator struct {
	// Track validation errors
	errors []ValidationError
	// Options
	strictMode bool // Also report types without attributes or an icon
}

// ValidationError represents a finding with its location in the document.
type ValidationError struct {
	Section  string // "options", "regions" or "splines"
	Index    int
	Field    string
	Value    string
	Severity Severity
	Message  string
}

// NewDocumentValidator creates a new validator with default settings.
func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{}
}

// SetStrictMode enables or disables strict validation.
func (v *DocumentValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// Validate checks every declaration of doc.
func (v *DocumentValidator) Validate(doc *core.Document) []ValidationError {
	v.errors = nil
	if doc == nil {
		v.addError("document", 0, "", "", Error, "document is missing")
		return v.errors
	}

	for i, decl := range doc.Options {
		v.checkOption(i, decl)
	}
	for i, decl := range doc.Regions {
		v.checkRegion(i, decl, doc)
	}
	for i, decl := range doc.Splines {
		v.checkSpline(i, decl, doc)
	}
	return v.errors
}

// CheckBounds reports only region and spline positions that do not fit a
// four digit coordinate. It is cheap enough to run on every document.
func (v *DocumentValidator) CheckBounds(doc *core.Document) []ValidationError {
	v.errors = nil
	if doc == nil {
		return nil
	}
	for i, decl := range doc.Regions {
		v.checkPoint("regions", i, "position", core.Point{X: decl.X, Y: decl.Y})
		if decl.To != nil {
			v.checkPoint("regions", i, "to", *decl.To)
		}
	}
	for i, decl := range doc.Splines {
		for _, p := range decl.Points {
			v.checkPoint("splines", i, "points", p)
		}
	}
	return v.errors
}

// HasErrors reports whether any finding has Error severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

func (v *DocumentValidator) checkOption(i int, decl core.OptionDecl) {
	switch config.NormalizeKey(decl.Key) {
	case config.KeyHexFlower:
		f, err := config.ParseFlower(decl)
		if err != nil {
			v.addError("options", i, "hexflower", decl.Value, Error, "%v", err)
			return
		}
		if hexflower.LetterIndex(f.Letter) < 0 {
			v.addError("options", i, "letter", f.Letter, Warning,
				"letter %q is not a super-hex %s-%s; connectors keep numeric labels",
				f.Letter, hexflower.LetterAt(0), hexflower.LetterAt(-1))
		}
		center, ok := core.ParseCoordinate(f.Center)
		if !ok {
			v.addError("options", i, "center", f.Center, Error, "center %q is not a four digit coordinate", f.Center)
		} else if !fitsFlower(center) {
			v.addError("options", i, "center", f.Center, Warning,
				"center %q is less than %d hexes from the edge; the cells past it are dropped", f.Center, hexflower.Radius)
		}
	case config.KeyMap:
		if err := labels.NewResolver("").ParseMap(decl.Value); err != nil {
			v.addError("options", i, "map", decl.Value, Error, "%v", err)
		}
	default:
		o := config.Default()
		if err := o.Apply(decl); err != nil {
			v.addError("options", i, decl.Key, decl.Value, Error, "%v", err)
		}
	}
}

func (v *DocumentValidator) checkRegion(i int, decl core.RegionDecl, doc *core.Document) {
	start := core.Point{X: decl.X, Y: decl.Y}
	v.checkPoint("regions", i, "position", start)
	if decl.To != nil {
		v.checkPoint("regions", i, "to", *decl.To)
		if decl.To.X != start.X && decl.To.Y != start.Y {
			v.addError("regions", i, "to", decl.To.String(), Warning,
				"sequence %s-%s is diagonal; only the first hex is drawn", start, decl.To)
		}
	}
	if v.strictMode {
		for _, t := range decl.Types {
			v.checkType("regions", i, t, doc)
		}
	}
}

func (v *DocumentValidator) checkSpline(i int, decl core.SplineDecl, doc *core.Document) {
	if len(decl.Points) == 0 {
		v.addError("splines", i, "points", "", Error, "spline has no points")
	}
	for _, p := range decl.Points {
		v.checkPoint("splines", i, "points", p)
	}
	if strings.TrimSpace(decl.Types) == "" {
		v.addError("splines", i, "types", "", Error, "spline has no type")
	} else if v.strictMode {
		v.checkType("splines", i, decl.Types, doc)
	}
	switch decl.Side {
	case "", pathfinding.SideLeft, pathfinding.SideRight:
	default:
		v.addError("splines", i, "side", decl.Side, Error, "side must be %q or %q", pathfinding.SideLeft, pathfinding.SideRight)
	}
}

// fitsFlower reports whether every cell of a flower around center is on the
// map.
func fitsFlower(center core.Point) bool {
	r := hexflower.Radius
	return center.X >= r && center.Y >= r && center.X <= core.MaxCoordinate-r && center.Y <= core.MaxCoordinate-r
}

// checkPoint flags positions that do not fit a four digit coordinate.
func (v *DocumentValidator) checkPoint(section string, i int, field string, p core.Point) {
	if !p.Valid() {
		v.addError(section, i, field, fmt.Sprintf("%d,%d", p.X, p.Y), Error, "position outside 0000-9999")
	}
}

func (v *DocumentValidator) checkType(section string, i int, t string, doc *core.Document) {
	_, hasAttrs := doc.Attributes[t]
	_, hasPathAttrs := doc.PathAttributes[t]
	_, hasPath := doc.Paths[t]
	if !hasAttrs && !hasPathAttrs && !hasPath {
		v.addError(section, i, "types", t, Warning, "type %q has no attributes or icon and is not drawn", t)
	}
}

// addError adds a validation error.
func (v *DocumentValidator) addError(section string, index int, field, value string, severity Severity, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		Section:  section,
		Index:    index,
		Field:    field,
		Value:    value,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("%s[%d] %s %q [%s]: %s", e.Section, e.Index, e.Field, e.Value, e.Severity, e.Message)
}
