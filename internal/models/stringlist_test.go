package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want StringList
	}{
		{"json array", `["a","b"]`, StringList{"a", "b"}},
		{"comma separated", "a,b,c", StringList{"a", "b", "c"}},
		{"chinese comma and spaces", " 科技， 财经 ,", StringList{"科技", "财经"}},
		{"empty", "", StringList{}},
		{"null literal", "null", StringList{}},
		{"empty array", "[]", StringList{}},
		{"malformed array", `["a", "b"`, StringList{"a", "b"}},
		{"mixed array", `["x", 3, null, ""]`, StringList{"x", "3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseStringList(tc.in)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStringListUnmarshalShapes(t *testing.T) {
	var payload struct {
		A StringList `json:"a"`
		B StringList `json:"b"`
		C StringList `json:"c"`
		D StringList `json:"d"`
		E StringList `json:"e"`
	}
	raw := `{"a":["x","y"],"b":"[\"p\",\"q\"]","c":"m,n","d":null,"e":42}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, StringList{"x", "y"}, payload.A)
	assert.Equal(t, StringList{"p", "q"}, payload.B)
	assert.Equal(t, StringList{"m", "n"}, payload.C)
	assert.Equal(t, StringList{}, payload.D)
	assert.Equal(t, StringList{}, payload.E)
}

func TestStringListMarshalsNilAsEmptyArray(t *testing.T) {
	out, err := json.Marshal(struct {
		Tags StringList `json:"tags"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":[]}`, string(out))
}

func TestJSONListAcceptsEncodedString(t *testing.T) {
	var payload struct {
		Steps JSONList[AnalysisStep] `json:"steps"`
		Bad   JSONList[AnalysisStep] `json:"bad"`
	}
	raw := `{"steps":"[{\"step\":1,\"title\":\"提取\"}]","bad":"not json"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	require.Len(t, payload.Steps, 1)
	assert.Equal(t, "提取", payload.Steps[0].Title)
	assert.Empty(t, payload.Bad)
}
