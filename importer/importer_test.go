package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"textmapper/core"
)

const yamlDoc = `
id: valley
options:
  - key: hexflower
    letter: A
    center: "1010"
  - key: swap-even-odd
regions:
  - {x: 1, y: 1, types: [forest], label: Wood}
  - {x: 2, y: 1, to: {x: 4, y: 1}, types: [hill]}
splines:
  - points: [{x: 1, y: 1}, {x: 4, y: 1}]
    types: river
    side: left
    curveOptions: {depth: 0}
attributes:
  forest: {fill: green}
`

const jsonDoc = `{
  "id": "valley",
  "options": [{"key": "hexflower", "value": "A center:1010"}],
  "regions": [{"x": 1, "y": 1, "types": ["forest"]}],
  "splines": [{"points": [{"x": 1, "y": 1}, {"x": 3, "y": 1}], "types": "road"}]
}`

func TestYAMLImport(t *testing.T) {
	doc, err := NewYAMLImporter().Import([]byte(yamlDoc))
	require.NoError(t, err)

	assert.Equal(t, "valley", doc.ID)
	require.Len(t, doc.Options, 2)
	assert.Equal(t, "A", doc.Options[0].Letter)
	assert.Equal(t, "1010", doc.Options[0].Center)
	require.Len(t, doc.Regions, 2)
	assert.Equal(t, &core.Point{X: 4, Y: 1}, doc.Regions[1].To)
	require.Len(t, doc.Splines, 1)
	require.NotNil(t, doc.Splines[0].Curve)
	require.NotNil(t, doc.Splines[0].Curve.Depth)
	assert.Equal(t, 0.0, *doc.Splines[0].Curve.Depth)
	assert.Nil(t, doc.Splines[0].Curve.Rate)
	assert.Equal(t, "green", doc.Attributes["forest"]["fill"])
}

func TestYAMLRejectsUnknownFields(t *testing.T) {
	_, err := NewYAMLImporter().Import([]byte("regoins: []\n"))
	assert.Error(t, err)

	_, err = NewYAMLImporter().Import(nil)
	assert.Error(t, err)
}

func TestJSONImport(t *testing.T) {
	imp := NewJSONImporter()
	assert.True(t, imp.CanImport([]byte(jsonDoc)))
	assert.False(t, imp.CanImport([]byte("id: x")))

	doc, err := imp.Import([]byte(jsonDoc))
	require.NoError(t, err)
	assert.Equal(t, "A center:1010", doc.Options[0].Value)
	assert.Equal(t, []core.Point{{X: 1, Y: 1}, {X: 3, Y: 1}}, doc.Splines[0].Points)

	_, err = imp.Import([]byte(`{"regoins": []}`))
	assert.Error(t, err)
}

func TestMsgpackImport(t *testing.T) {
	want := &core.Document{
		ID:      "packed",
		Regions: []core.RegionDecl{{X: 2, Y: 3, Types: []string{"sea"}}},
	}
	data, err := msgpack.Marshal(want)
	require.NoError(t, err)

	imp := NewMsgpackImporter()
	assert.True(t, imp.CanImport(data))
	assert.False(t, imp.CanImport([]byte(jsonDoc)))

	got, err := imp.Import(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRegistryDetection(t *testing.T) {
	r := NewImporterRegistry()
	assert.Equal(t, []string{"JSON", "MessagePack", "YAML"}, r.GetAvailableFormats())

	imp, err := r.DetectFormat([]byte(jsonDoc))
	require.NoError(t, err)
	assert.Equal(t, "JSON", imp.GetFormatName())

	imp, err = r.DetectFormat([]byte(yamlDoc))
	require.NoError(t, err)
	assert.Equal(t, "YAML", imp.GetFormatName())

	data, err := msgpack.Marshal(&core.Document{ID: "x"})
	require.NoError(t, err)
	imp, err = r.DetectFormat(data)
	require.NoError(t, err)
	assert.Equal(t, "MessagePack", imp.GetFormatName())

	_, err = r.DetectFormat([]byte("   "))
	assert.Error(t, err)
}

func TestRegistryByName(t *testing.T) {
	r := NewImporterRegistry()
	doc, err := r.ImportWithFormat([]byte(yamlDoc), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "valley", doc.ID)

	_, err = r.ImportWithFormat([]byte(yamlDoc), "toml")
	assert.Error(t, err)
}

func TestRegistryByExtension(t *testing.T) {
	r := NewImporterRegistry()
	imp, ok := r.ForExtension("maps/valley.YML")
	require.True(t, ok)
	assert.Equal(t, "YAML", imp.GetFormatName())

	_, ok = r.ForExtension("maps/valley")
	assert.False(t, ok)

	// A JSON document is also valid YAML, so the extension decides.
	doc, err := r.ImportFile("valley.yaml", []byte(jsonDoc))
	require.NoError(t, err)
	assert.Equal(t, "valley", doc.ID)

	doc, err = r.ImportFile("valley.txt", []byte(yamlDoc))
	require.NoError(t, err)
	assert.Len(t, doc.Regions, 2)
}
