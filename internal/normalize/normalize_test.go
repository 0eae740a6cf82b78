package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceStrictJSON(t *testing.T) {
	res := Coerce(`{"suggested_title":"Better Title","tags":["seo","web"]}`)
	require.True(t, res.Structured())
	assert.Equal(t, map[string]any{
		"suggested_title": "Better Title",
		"tags":            []any{"seo", "web"},
	}, res.Object)
}

func TestCoerceFencedJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json tag", "```json\n{\"suggested_title\":\"T\"}\n```"},
		{"bare fence", "```\n{\"suggested_title\":\"T\"}\n```"},
		{"surrounding whitespace", "  \n```json\n{\"suggested_title\":\"T\"}\n```  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Coerce(tt.raw)
			require.True(t, res.Structured())
			assert.Equal(t, "T", res.Object["suggested_title"])
		})
	}
}

func TestCoerceNaturalLanguage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"heading", "# Analysis\nYour gig needs work."},
		{"bullet", "* first point\n* second point"},
		{"numbered", "1. Do this\n2. Do that"},
		{"bold marker", "Your **title** is weak."},
		{"bullet glyph", "• benefit one\n• benefit two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Coerce(tt.raw)
			require.False(t, res.Structured())
			// identity on the trimmed input, no repair attempted
			assert.Equal(t, tt.raw, res.Text)
		})
	}
}

func TestCoerceSalvageBalancedBraces(t *testing.T) {
	raw := `Sure, here is the JSON you asked for: {"suggested_title":"T","tags":["a","b"],}`
	res := Coerce(raw)
	require.True(t, res.Structured())
	assert.Equal(t, "T", res.Object["suggested_title"])
	assert.Equal(t, []any{"a", "b"}, res.Object["tags"])
}

func TestCoerceSalvageSingleNestedObject(t *testing.T) {
	raw := `prefix {"outer":{"inner":1}} suffix`
	res := Coerce(raw)
	require.True(t, res.Structured())
	assert.Equal(t, map[string]any{"inner": float64(1)}, res.Object["outer"])
}

func TestCoerceFieldExtraction(t *testing.T) {
	// no parseable brace region anywhere: fields are pulled out one by one
	raw := `"suggested_title":"Salvaged Title", "tags":["seo", "web"], "suggested_description":"A fine description"`
	res := Coerce(raw)
	require.True(t, res.Structured())
	assert.Equal(t, "Salvaged Title", res.Object["suggested_title"])
	assert.Equal(t, "A fine description", res.Object["suggested_description"])
	assert.Equal(t, []any{"seo", "web"}, res.Object["tags"])
}

func TestCoerceFieldExtractionFAQs(t *testing.T) {
	// the faq object is malformed (missing comma) so the balanced-brace pass
	// cannot parse it; the pair regex still recovers q and a
	raw := `"suggested_title":"T", "faqs":[{"q":"What do you offer?" "a":"Websites."}]`
	res := Coerce(raw)
	require.True(t, res.Structured())
	faqs, ok := res.Object["faqs"].([]any)
	require.True(t, ok)
	require.Len(t, faqs, 1)
	assert.Equal(t, map[string]any{"q": "What do you offer?", "a": "Websites."}, faqs[0])
}

func TestCoercePlainTextPassthrough(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose", "I think your gig is fine as it is."},
		{"refusal", "I cannot provide this content"},
		{"json array", "[1,2]"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Coerce(tt.raw)
			require.False(t, res.Structured())
			assert.Equal(t, tt.raw, res.Text)
		})
	}
}
