package shortcode_test

import (
	"encoding/json"
	"testing"

	"vdcode/internal/shortcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSymbol_JSON(t *testing.T) {
	s := sym(t, 'M')

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"M"`, string(data))

	var decoded shortcode.Symbol
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestSymbol_JSONRejectsInvalid(t *testing.T) {
	for _, in := range []string{`"O"`, `"!"`, `"m"`, `"MM"`, `""`, `7`} {
		var s shortcode.Symbol
		assert.Error(t, json.Unmarshal([]byte(in), &s), "input %s", in)
	}
}

func TestCode_JSON(t *testing.T) {
	code := shortcode.MustParse("K2Z7")

	data, err := json.Marshal(code)
	require.NoError(t, err)
	assert.Equal(t, `"K2Z7"`, string(data))

	var decoded shortcode.Code
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, code.Equal(decoded))
}

func TestCode_JSONInStruct(t *testing.T) {
	type payload struct {
		Code shortcode.Code `json:"code"`
	}

	data, err := json.Marshal(payload{Code: shortcode.MustParse("AB29XY")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"AB29XY"}`, string(data))

	var p payload
	err = json.Unmarshal([]byte(`{"code":"ABCO"}`), &p)
	assert.ErrorIs(t, err, shortcode.ErrInvalidCharacter)
}

func TestCode_JSONRejectsInvalid(t *testing.T) {
	for _, in := range []string{`"ABCO"`, `"abc"`, `42`, `["A"]`} {
		var c shortcode.Code
		assert.Error(t, json.Unmarshal([]byte(in), &c), "input %s", in)
	}
}

func TestCode_UnmarshalTextKeepsValueOnError(t *testing.T) {
	code := shortcode.MustParse("ABC")
	err := code.UnmarshalText([]byte("AB0"))
	require.Error(t, err)
	assert.Equal(t, "ABC", code.String())
}

func TestCode_YAML(t *testing.T) {
	type doc struct {
		Code   shortcode.Code   `yaml:"code"`
		Symbol shortcode.Symbol `yaml:"symbol"`
	}

	in := doc{Code: shortcode.MustParse("234MNP"), Symbol: sym(t, '2')}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out doc
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.True(t, in.Code.Equal(out.Code))
	assert.Equal(t, in.Symbol, out.Symbol)
}

func TestCode_YAMLRejectsInvalid(t *testing.T) {
	var out struct {
		Code shortcode.Code `yaml:"code"`
	}

	err := yaml.Unmarshal([]byte("code: HELLO"), &out)
	assert.ErrorIs(t, err, shortcode.ErrInvalidCharacter)

	err = yaml.Unmarshal([]byte("code: [A, B]"), &out)
	assert.ErrorContains(t, err, "must be a scalar")
}

func TestSymbol_YAMLRejectsInvalid(t *testing.T) {
	var out struct {
		Symbol shortcode.Symbol `yaml:"symbol"`
	}

	assert.Error(t, yaml.Unmarshal([]byte("symbol: O"), &out))
	assert.Error(t, yaml.Unmarshal([]byte("symbol: AB"), &out))
	assert.Error(t, yaml.Unmarshal([]byte("symbol: {a: 1}"), &out))
}
