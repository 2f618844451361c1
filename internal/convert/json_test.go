package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_ValidData(t *testing.T) {
	jsonData := `[
		{"id": "article1", "views": 42, "published": true, "rating": null},
		{"id": "article2", "views": 7.50, "published": false}
	]`

	records, err := ParseJSON(jsonData)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"id", "views", "published", "rating"}, records[0].Keys())

	id, _ := records[0].Get("id")
	assert.Equal(t, KindString, id.Kind())
	assert.Equal(t, "article1", id.String())

	views, _ := records[0].Get("views")
	assert.Equal(t, KindNumber, views.Kind())
	assert.Equal(t, "42", views.String())

	published, _ := records[0].Get("published")
	assert.Equal(t, KindBool, published.Kind())
	assert.Equal(t, "true", published.String())

	rating, ok := records[0].Get("rating")
	assert.True(t, ok)
	assert.Equal(t, KindNull, rating.Kind())

	views2, _ := records[1].Get("views")
	assert.Equal(t, "7.5", views2.String())

	_, ok = records[1].Get("rating")
	assert.False(t, ok, "missing key is absent, not null")
}

func TestParseJSON_PreservesKeyOrder(t *testing.T) {
	records, err := ParseJSON(`[{"zeta":1,"alpha":2,"mid":3}]`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, records[0].Keys())
}

func TestParseJSON_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	records, err := ParseJSON(`[{"a":1,"b":2,"a":3}]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, records[0].Keys())

	a, _ := records[0].Get("a")
	assert.Equal(t, "3", a.String())
}

func TestParseJSON_NestedValues(t *testing.T) {
	records, err := ParseJSON(`[{"id":"1","author":{"id": "auth1", "name": "John"},"tags":[ "go", "test" ]}]`)
	require.NoError(t, err)

	author, _ := records[0].Get("author")
	assert.Equal(t, KindNested, author.Kind())
	assert.Equal(t, `{"id":"auth1","name":"John"}`, author.String())

	tags, _ := records[0].Get("tags")
	assert.Equal(t, `["go","test"]`, tags.String())
}

func TestParseJSON_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"object at top level", `{"a":1}`, "Input must be an array of objects"},
		{"string at top level", `"hello"`, "Input must be an array of objects"},
		{"number at top level", `42`, "Input must be an array of objects"},
		{"null at top level", `null`, "Input must be an array of objects"},
		{"empty array", `[]`, "JSON array cannot be empty"},
		{"empty array with whitespace", ` [ ] `, "JSON array cannot be empty"},
		{"null element", `[{"a":1}, null]`, "All items in the array must be objects"},
		{"number element", `[1]`, "All items in the array must be objects"},
		{"string element", `[{"a":1}, "b"]`, "All items in the array must be objects"},
		{"array element", `[[1,2]]`, "All items in the array must be objects"},
		{"bool element", `[true]`, "All items in the array must be objects"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(tt.input)
			require.Error(t, err)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantErr, fe.Msg)
		})
	}
}

func TestParseJSON_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"garbage", `{invalid json}`},
		{"unterminated array", `[{"a":1}`},
		{"trailing comma", `[{"a":1},]`},
		{"trailing data", `[{"a":1}] extra`},
		{"two documents", `[{"a":1}] [{"b":2}]`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(tt.input)
			require.Error(t, err)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, fe.Msg, "Invalid JSON")
		})
	}
}

func TestSerializeJSON_PrettyPrintsInKeyOrder(t *testing.T) {
	var rec Record
	rec.Set("name", StringValue("<Ana & Bo>"))
	rec.Set("age", StringValue("30"))

	out, err := SerializeJSON([]Record{rec})
	require.NoError(t, err)

	want := "[\n  {\n    \"name\": \"<Ana & Bo>\",\n    \"age\": \"30\"\n  }\n]"
	assert.Equal(t, want, out)
}

func TestSerializeJSON_MixedKinds(t *testing.T) {
	records, err := ParseJSON(`[{"n":1.0,"b":false,"z":null,"o":{"k":[1, 2]}}]`)
	require.NoError(t, err)

	out, err := SerializeJSON(records)
	require.NoError(t, err)

	want := "[\n  {\n    \"n\": 1.0,\n    \"b\": false,\n    \"z\": null,\n    \"o\": {\n      \"k\": [\n        1,\n        2\n      ]\n    }\n  }\n]"
	assert.Equal(t, want, out)
}
