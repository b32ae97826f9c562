// Package labels resolves the text shown on each hex: either an explicit
// mapping from a hex flower or map declaration, or a coordinate template.
package labels

import (
	"fmt"
	"sort"
	"strings"

	"textmapper/core"
)

// DefaultFormat renders a coordinate as "XXYY".
const DefaultFormat = "{X}{Y}"

// Resolver owns the coordinate to label table of one document. It is not
// safe for concurrent use; each session builds its own.
type Resolver struct {
	format string
	table  map[string]string
}

// NewResolver creates an empty resolver using format for unmapped cells.
// An empty format falls back to DefaultFormat.
func NewResolver(format string) *Resolver {
	if format == "" {
		format = DefaultFormat
	}
	return &Resolver{format: format, table: make(map[string]string)}
}

// AddMapping labels coordinate ("XXYY") with display. Later mappings of the
// same coordinate win.
func (r *Resolver) AddMapping(display, coordinate string) {
	r.table[coordinate] = display
}

// AddFlower adds every mapping of a hex flower.
func (r *Resolver) AddFlower(mappings []core.HexMapping) {
	for _, m := range mappings {
		r.AddMapping(m.DisplayValue, m.Coordinate)
	}
}

// ParseMap reads a "map" declaration such as "A1=0101, A2=0102" and adds
// its entries. Malformed entries are returned as an error after the valid
// ones have been added.
func (r *Resolver) ParseMap(value string) error {
	var bad []string
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		display, coordinate, ok := strings.Cut(entry, "=")
		display, coordinate = strings.TrimSpace(display), strings.TrimSpace(coordinate)
		if _, valid := core.ParseCoordinate(coordinate); !ok || display == "" || !valid {
			bad = append(bad, entry)
			continue
		}
		r.AddMapping(display, coordinate)
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid map entries: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Lookup returns the explicit label for coordinate, if any.
func (r *Resolver) Lookup(coordinate string) (string, bool) {
	display, ok := r.table[coordinate]
	return display, ok
}

// Resolve returns the label for p: the table entry when present, otherwise
// the template with {X} and {Y} replaced by two-digit coordinates.
func (r *Resolver) Resolve(p core.Point) string {
	if display, ok := r.table[p.String()]; ok {
		return display
	}
	return strings.NewReplacer(
		"{X}", fmt.Sprintf("%02d", p.X),
		"{Y}", fmt.Sprintf("%02d", p.Y),
	).Replace(r.format)
}

// Len returns the number of explicit mappings.
func (r *Resolver) Len() int {
	return len(r.table)
}

// Mappings returns the explicit table sorted by coordinate.
func (r *Resolver) Mappings() []core.HexMapping {
	out := make([]core.HexMapping, 0, len(r.table))
	for coordinate, display := range r.table {
		out = append(out, core.HexMapping{DisplayValue: display, Coordinate: coordinate})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Coordinate < out[j].Coordinate })
	return out
}
