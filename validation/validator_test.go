package validation

import (
	"strings"
	"testing"

	"textmapper/core"
)

func TestDocumentValidator_Options(t *testing.T) {
	tests := []struct {
		name    string
		decl    core.OptionDecl
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid hexflower",
			decl: core.OptionDecl{Key: "hexflower", Letter: "A", Center: "1010"},
		},
		{
			name: "hexflower from value",
			decl: core.OptionDecl{Key: "hexflower", Value: "S center:0505"},
		},
		{
			name:    "bad center",
			decl:    core.OptionDecl{Key: "hexflower", Letter: "A", Center: "10x0"},
			wantErr: true,
			errMsg:  "four digit",
		},
		{
			name:    "missing center",
			decl:    core.OptionDecl{Key: "hexflower", Value: "A"},
			wantErr: true,
			errMsg:  "needs a letter and a center",
		},
		{
			name:    "bad letter",
			decl:    core.OptionDecl{Key: "hexflower", Letter: "Z", Center: "1010"},
			wantErr: true,
			errMsg:  "not a super-hex",
		},
		{
			name: "valid map",
			decl: core.OptionDecl{Key: "map", Value: "A1=0101, A2=0102"},
		},
		{
			name:    "broken map",
			decl:    core.OptionDecl{Key: "map", Value: "A1=0101, A2"},
			wantErr: true,
			errMsg:  "A2",
		},
		{
			name:    "bad direction",
			decl:    core.OptionDecl{Key: "flower-start", Value: "sideways"},
			wantErr: true,
			errMsg:  "flower-start",
		},
		{
			name: "valid flag",
			decl: core.OptionDecl{Key: "swap-even-odd"},
		},
		{
			name:    "unknown option",
			decl:    core.OptionDecl{Key: "colour", Value: "red"},
			wantErr: true,
			errMsg:  "unknown option",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := NewDocumentValidator().Validate(&core.Document{Options: []core.OptionDecl{tt.decl}})
			if tt.wantErr && len(errs) == 0 {
				t.Fatalf("expected a finding, got none")
			}
			if !tt.wantErr && len(errs) > 0 {
				t.Fatalf("unexpected findings: %v", errs)
			}
			if tt.wantErr && !strings.Contains(errs[0].Message, tt.errMsg) {
				t.Errorf("message %q does not contain %q", errs[0].Message, tt.errMsg)
			}
		})
	}
}

func TestDocumentValidator_Severity(t *testing.T) {
	errs := NewDocumentValidator().Validate(&core.Document{Options: []core.OptionDecl{
		{Key: "hexflower", Letter: "Z", Center: "1010"},
	}})
	if len(errs) != 1 || errs[0].Severity != Warning {
		t.Fatalf("unknown letter should be one warning, got %v", errs)
	}
	if HasErrors(errs) {
		t.Error("warnings alone are not errors")
	}
}

func TestDocumentValidator_FlowerNearEdge(t *testing.T) {
	tests := []struct {
		center string
		warn   bool
	}{
		{"1010", false},
		{"0202", false},
		{"9797", false},
		{"0101", true},
		{"0000", true},
		{"5098", true},
	}
	for _, tt := range tests {
		errs := NewDocumentValidator().Validate(&core.Document{Options: []core.OptionDecl{
			{Key: "hexflower", Letter: "A", Center: tt.center},
		}})
		if !tt.warn {
			if len(errs) != 0 {
				t.Errorf("center %s: expected no findings, got %v", tt.center, errs)
			}
			continue
		}
		if len(errs) != 1 || errs[0].Field != "center" || errs[0].Severity != Warning {
			t.Errorf("center %s: expected one center warning, got %v", tt.center, errs)
		}
	}
}

func TestDocumentValidator_CheckBounds(t *testing.T) {
	doc := &core.Document{
		Options: []core.OptionDecl{{Key: "flower-start", Value: "up"}},
		Regions: []core.RegionDecl{
			{X: 1, Y: 1, To: &core.Point{X: 300000, Y: 1}},
			{X: 2, Y: 2},
		},
		Splines: []core.SplineDecl{{Points: []core.Point{{X: 1, Y: 1}, {X: -4, Y: 1}}}},
	}

	errs := NewDocumentValidator().CheckBounds(doc)
	if len(errs) != 2 {
		t.Fatalf("expected 2 findings, got %v", errs)
	}
	if errs[0].Section != "regions" || errs[0].Field != "to" {
		t.Errorf("expected the run end to be flagged, got %v", errs[0])
	}
	if errs[1].Section != "splines" || errs[1].Field != "points" {
		t.Errorf("expected the waypoint to be flagged, got %v", errs[1])
	}
	if !HasErrors(errs) {
		t.Error("out of range positions are errors")
	}
	if errs := NewDocumentValidator().CheckBounds(nil); errs != nil {
		t.Errorf("nil document: got %v", errs)
	}
}

func TestDocumentValidator_Regions(t *testing.T) {
	doc := &core.Document{
		Regions: []core.RegionDecl{
			{X: 1, Y: 1, To: &core.Point{X: 5, Y: 1}},
			{X: 1, Y: 1, To: &core.Point{X: 3, Y: 3}},
			{X: 100, Y: 1},
			{X: 2, Y: 2, Types: []string{"forest", "swamp"}},
		},
		Attributes: map[string]map[string]string{"forest": {"fill": "green"}},
	}

	v := NewDocumentValidator()
	errs := v.Validate(doc)
	if len(errs) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(errs), errs)
	}
	if errs[0].Index != 1 || errs[0].Field != "to" || errs[0].Severity != Warning {
		t.Errorf("diagonal sequence: got %v", errs[0])
	}
	if errs[1].Index != 2 || errs[1].Severity != Error {
		t.Errorf("out of range position: got %v", errs[1])
	}

	v.SetStrictMode(true)
	errs = v.Validate(doc)
	if len(errs) != 3 {
		t.Fatalf("strict mode should add the undefined type, got %v", errs)
	}
	if errs[2].Value != "swamp" {
		t.Errorf("expected swamp to be flagged, got %v", errs[2])
	}
}

func TestDocumentValidator_Splines(t *testing.T) {
	doc := &core.Document{
		Splines: []core.SplineDecl{
			{Points: []core.Point{{X: 1, Y: 1}, {X: 3, Y: 1}}, Types: "river"},
			{Types: "road"},
			{Points: []core.Point{{X: 1, Y: 1}}},
			{Points: []core.Point{{X: 1, Y: 1}}, Types: "river", Side: "up"},
		},
		PathAttributes: map[string]map[string]string{"river": {"stroke": "blue"}},
	}

	errs := NewDocumentValidator().Validate(doc)
	want := map[int]string{1: "points", 2: "types", 3: "side"}
	if len(errs) != len(want) {
		t.Fatalf("expected %d findings, got %v", len(want), errs)
	}
	for _, e := range errs {
		if want[e.Index] != e.Field {
			t.Errorf("spline %d: unexpected finding %v", e.Index, e)
		}
		if e.Severity != Error {
			t.Errorf("spline %d: expected an error, got %v", e.Index, e.Severity)
		}
	}
	if !HasErrors(errs) {
		t.Error("HasErrors should report the errors")
	}
}

func TestDocumentValidator_NilDocument(t *testing.T) {
	errs := NewDocumentValidator().Validate(nil)
	if len(errs) != 1 || !HasErrors(errs) {
		t.Fatalf("nil document should be one error, got %v", errs)
	}
}

func TestValidationError_String(t *testing.T) {
	e := ValidationError{Section: "splines", Index: 2, Field: "side", Value: "up", Severity: Error, Message: "bad side"}
	got := e.String()
	if got != `splines[2] side "up" [error]: bad side` {
		t.Errorf("String() = %s", got)
	}
}
