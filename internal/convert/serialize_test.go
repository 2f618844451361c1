package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeCSV_UnionHeaders(t *testing.T) {
	records, err := ParseJSON(`[{"a":1,"b":2},{"a":3,"c":4}]`)
	require.NoError(t, err)

	got := SerializeCSV(records)
	assert.Equal(t, "a,b,c\n1,2,\n3,,4", got)
}

func TestSerializeCSV_NullAndMissingAreEmpty(t *testing.T) {
	records, err := ParseJSON(`[{"a":null,"b":"x"},{"b":"y"}]`)
	require.NoError(t, err)

	assert.Equal(t, "a,b\n,x\n,y", SerializeCSV(records))
}

func TestSerializeCSV_Escaping(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"comma", "Smith, John", `"Smith, John"`},
		{"quote", `say "hi"`, `"say ""hi"""`},
		{"only quote", `"`, `""""`},
		{"newline", "a\nb", "\"a\nb\""},
		{"carriage return", "a\rb", "\"a\rb\""},
		{"leading space kept bare", " x", " x"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			rec.Set("v", StringValue(tt.value))

			got := SerializeCSV([]Record{rec})
			assert.Equal(t, "v\n"+tt.want, got)
		})
	}
}

func TestSerializeCSV_StringifiesBeforeEscaping(t *testing.T) {
	records, err := ParseJSON(`[{"n":1e3,"f":0.10,"b":true,"big":12345678901234567890,"o":{"x":1,"y":2},"l":["a","b"]}]`)
	require.NoError(t, err)

	lines := strings.Split(SerializeCSV(records), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "n,f,b,big,o,l", lines[0])
	// Nested values stringify to JSON containing commas and quotes, so they
	// must come out quoted.
	assert.Equal(t, `1000,0.1,true,12345678901234567890,"{""x"":1,""y"":2}","[""a"",""b""]"`, lines[1])
}

func TestSerializeCSV_HeadersAreEscaped(t *testing.T) {
	records, err := ParseJSON(`[{"last, first":"Doe, Jane"}]`)
	require.NoError(t, err)

	assert.Equal(t, "\"last, first\"\n\"Doe, Jane\"", SerializeCSV(records))
}

func TestSerializeCSV_RoundTrip(t *testing.T) {
	records, err := ParseJSON(`[
		{"id": 1, "name": "Ana", "active": true},
		{"id": 2, "name": "Bo", "active": false}
	]`)
	require.NoError(t, err)

	parsed, err := ParseCSV(SerializeCSV(records))
	require.NoError(t, err)
	require.Len(t, parsed, len(records))

	for i := range records {
		assert.Equal(t, records[i].Keys(), parsed[i].Keys())
		for _, k := range records[i].Keys() {
			want, _ := records[i].Get(k)
			got, _ := parsed[i].Get(k)
			assert.Equal(t, want.String(), got.String(), "record %d field %q", i, k)
		}
	}
}

func TestSerializeCSV_RoundTripWithSpecialCharacters(t *testing.T) {
	var rec Record
	rec.Set("quote", StringValue(`He said "hi"`))
	rec.Set("comma", StringValue("a, b, c"))
	rec.Set("multi", StringValue("line one\nline two"))

	parsed, err := ParseCSV(SerializeCSV([]Record{rec}))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, map[string]string{
		"quote": `He said "hi"`,
		"comma": "a, b, c",
		"multi": "line one\nline two",
	}, recordStrings(parsed[0]))
}

func TestHeaders_FirstSeenOrder(t *testing.T) {
	var r1, r2, r3 Record
	r1.Set("b", StringValue("1"))
	r1.Set("a", StringValue("2"))
	r2.Set("c", StringValue("3"))
	r2.Set("a", StringValue("4"))
	r3.Set("d", StringValue("5"))
	r3.Set("b", StringValue("6"))

	assert.Equal(t, []string{"b", "a", "c", "d"}, Headers([]Record{r1, r2, r3}))
	assert.Nil(t, Headers(nil))
}
