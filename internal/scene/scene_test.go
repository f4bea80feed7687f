package scene

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStage = `{
  "attrs": {"width": 595, "height": 842},
  "className": "Stage",
  "children": [{
    "attrs": {},
    "className": "Layer",
    "children": [
      {"attrs": {"id": "header_bg", "x": 0, "y": 0, "width": 595, "height": 120, "fill": "#2c3e50", "strokeWidth": 0}, "className": "Rect"},
      {"attrs": {"id": "full_name", "x": 40, "y": 30, "text": "{{full_name}}", "fontSize": 28, "fontStyle": "bold", "fill": "#ffffff", "width": 515, "wrap": "none"}, "className": "Text"},
      {"attrs": {"id": "summary", "x": 40, "y": 200, "text": "Hello", "lineHeight": 1.5}, "className": "Text"},
      {"attrs": {"points": [0, 1, 2, 3]}, "className": "Line"}
    ]
  }]
}`

func decodeSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Unmarshal([]byte(sampleStage))
	require.NoError(t, err)
	return doc
}

func TestDecode_Typed(t *testing.T) {
	doc := decodeSample(t)

	assert.Equal(t, 595.0, doc.Width)
	assert.Equal(t, 842.0, doc.Height)
	require.Len(t, doc.Layers, 1)
	require.Len(t, doc.Layers[0].Nodes, 4)

	rect, ok := doc.Layers[0].Nodes[0].(*Rect)
	require.True(t, ok)
	assert.Equal(t, "header_bg", rect.ID)
	assert.Equal(t, 120.0, rect.Height)
	assert.Equal(t, "#2c3e50", rect.Fill)

	name, ok := doc.Layers[0].Nodes[1].(*Text)
	require.True(t, ok)
	assert.True(t, name.Bold())
	assert.Equal(t, 28.0, name.Size())
	wrap, ok := name.Attr("wrap")
	assert.True(t, ok)
	assert.Equal(t, "none", wrap)

	summary := doc.Layers[0].Nodes[2].(*Text)
	assert.Equal(t, DefaultFontSize, summary.Size())
	assert.Equal(t, DefaultTextWidth, summary.WrapWidth())
	assert.Equal(t, 1.5, summary.Leading())
	assert.Equal(t, DefaultFill, summary.Color())

	opaque, ok := doc.Layers[0].Nodes[3].(*Opaque)
	require.True(t, ok)
	assert.Equal(t, "Line", opaque.ClassName)
}

func TestEncode_RoundTrip(t *testing.T) {
	var want any
	require.NoError(t, json.Unmarshal([]byte(sampleStage), &want))

	doc, err := Decode(want)
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var got any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, want, got)
}

func TestEncode_KeepsZeroValuedKeys(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"className":"Stage","children":[{"className":"Layer","children":[
		{"className":"Rect","attrs":{"x":0,"y":0,"width":10,"height":10,"strokeWidth":0,"fill":""}}]}]}`))
	require.NoError(t, err)

	attrs := doc.Encode()["children"].([]any)[0].(map[string]any)["children"].([]any)[0].(map[string]any)["attrs"].(map[string]any)
	assert.Contains(t, attrs, "x")
	assert.Contains(t, attrs, "strokeWidth")
	assert.Contains(t, attrs, "fill")
	assert.NotContains(t, attrs, "stroke")
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{
			name:     "stage not an object",
			input:    `[]`,
			wantPath: "",
		},
		{
			name:     "missing className",
			input:    `{"children":[]}`,
			wantPath: "className",
		},
		{
			name:     "node not an object",
			input:    `{"className":"Stage","children":[{"className":"Layer","children":[1]}]}`,
			wantPath: "children[0].children[0]",
		},
		{
			name:     "non numeric geometry",
			input:    `{"className":"Stage","children":[{"className":"Layer","children":[{"className":"Text","attrs":{"text":"a"}},{"className":"Text","attrs":{"x":"ten"}}]}]}`,
			wantPath: "children[0].children[1].attrs.x",
		},
		{
			name:     "rect without height",
			input:    `{"className":"Stage","children":[{"className":"Layer","children":[{"className":"Rect","attrs":{"width":3}}]}]}`,
			wantPath: "children[0].children[0].attrs.height",
		},
		{
			name:     "non positive stage",
			input:    `{"className":"Stage","attrs":{"width":0,"height":10}}`,
			wantPath: "attrs.width",
		},
		{
			name:     "oversized stage width",
			input:    `{"className":"Stage","attrs":{"width":1e9,"height":10}}`,
			wantPath: "attrs.width",
		},
		{
			name:     "oversized stage height",
			input:    `{"className":"Stage","attrs":{"width":595,"height":14400.5}}`,
			wantPath: "attrs.height",
		},
		{
			name:     "non string text",
			input:    `{"className":"Stage","children":[{"className":"Layer","children":[{"className":"Text","attrs":{"text":5}}]}]}`,
			wantPath: "children[0].children[0].attrs.text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedDocument))

			var me *MalformedError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.wantPath, me.Path)
		})
	}
}

func TestDocument_SizeDefaults(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"className":"Stage"}`))
	require.NoError(t, err)

	w, h := doc.Size()
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
	assert.Empty(t, doc.Layers)
	assert.NotContains(t, doc.Encode()["attrs"], "width")
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := decodeSample(t)
	cp := doc.Clone()

	require.True(t, cp.SetText("summary", "changed"))

	n, _ := doc.FindByID("summary")
	assert.Equal(t, "Hello", n.(*Text).Text)
}

func TestFindByID(t *testing.T) {
	doc := decodeSample(t)

	n, ok := doc.FindByID("full_name")
	require.True(t, ok)
	assert.Equal(t, KindText, n.Kind())

	_, ok = doc.FindByID("missing")
	assert.False(t, ok)

	_, ok = doc.FindByID("")
	assert.False(t, ok)
}

func TestFindByID_DuplicateFirstWins(t *testing.T) {
	doc := New(100, 100)
	l := NewLayer("")
	l.Nodes = []Node{NewText("dup", 0, 0, "first"), NewText("dup", 0, 0, "second")}
	doc.AddLayer(l)

	n, ok := doc.FindByID("dup")
	require.True(t, ok)
	assert.Equal(t, "first", n.(*Text).Text)
}

func TestSetText(t *testing.T) {
	doc := decodeSample(t)

	assert.True(t, doc.SetText("summary", "New summary"))
	assert.False(t, doc.SetText("header_bg", "rect"), "rect is not a text node")
	assert.False(t, doc.SetText("nope", "x"))

	name, _ := doc.FindByID("full_name")
	assert.Equal(t, "{{full_name}}", name.(*Text).Text)
	summary, _ := doc.FindByID("summary")
	assert.Equal(t, "New summary", summary.(*Text).Text)
}

func TestIndex_InvalidatedByStructuralEdits(t *testing.T) {
	doc := decodeSample(t)
	_, ok := doc.FindByID("late")
	require.False(t, ok)

	require.True(t, doc.AppendNode(0, NewText("late", 0, 0, "x")))
	_, ok = doc.FindByID("late")
	assert.True(t, ok)

	require.True(t, doc.RemoveNode("late"))
	_, ok = doc.FindByID("late")
	assert.False(t, ok)

	assert.False(t, doc.AppendNode(5, NewText("x", 0, 0, "")))
}

func TestTextNodes_PaintOrder(t *testing.T) {
	doc := decodeSample(t)

	var ids []string
	for _, n := range doc.TextNodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"full_name", "summary"}, ids)
}

func TestValidateJSON(t *testing.T) {
	_, err := ValidateJSON([]byte(sampleStage))
	require.NoError(t, err)

	_, err = ValidateJSON([]byte(`{"className":"Stage","children":[{"attrs":{}}]}`))
	require.Error(t, err)
	var me *MalformedError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "children[0]", me.Path)
}

func TestValidateJSON_StageSizeBound(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{name: "largest allowed", input: `{"className":"Stage","attrs":{"width":14400,"height":14400}}`},
		{name: "width too large", input: `{"className":"Stage","attrs":{"width":1e9,"height":842}}`, wantPath: "attrs.width"},
		{name: "height too large", input: `{"className":"Stage","attrs":{"width":595,"height":1e9}}`, wantPath: "attrs.height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ValidateJSON([]byte(tt.input))
			if tt.wantPath == "" {
				require.NoError(t, err)
				w, h := doc.Size()
				assert.Equal(t, MaxStageSide, w)
				assert.Equal(t, MaxStageSide, h)
				return
			}
			require.Error(t, err)
			var me *MalformedError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.wantPath, me.Path)
		})
	}
}

func TestSchemaPath(t *testing.T) {
	assert.Equal(t, "children[1].children[4].attrs", schemaPath("children.1.children.4.attrs"))
	assert.Equal(t, "", schemaPath(""))
}
