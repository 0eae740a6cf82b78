// Package normalize resolves free-form model output into either a structured
// mapping or a natural-language blob. The model is not guaranteed to honor
// "return JSON only" instructions, so we degrade through structured parse →
// bounded regex salvage → raw-text passthrough instead of failing the request.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Result is exactly one of the two output shapes: Object when the text
// resolved to a JSON object, Text otherwise.
type Result struct {
	Object map[string]any
	Text   string
}

// Structured reports whether the raw text resolved to a JSON object.
func (r Result) Structured() bool { return r.Object != nil }

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("(?i)\\s*```$")

	// markdown heading / bullet / numbered-list line, or bold marker
	naturalLine = regexp.MustCompile(`(?m)^\s*[#*•\d]`)

	// first balanced-brace object, tolerating one level of nested braces.
	// Best effort by design: anything nested deeper is salvaged field-by-field
	// below, or passed through as text.
	jsonObject = regexp.MustCompile(`(?s)\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

	trailingComma = regexp.MustCompile(`,\s*([}\]])`)

	titleField = regexp.MustCompile(`(?i)"suggested_title"\s*:\s*"([^"]+)"`)
	descField  = regexp.MustCompile(`(?is)"suggested_description"\s*:\s*"([^"]+(?:"[^"]*"[^"]*)*)"`)
	tagsField  = regexp.MustCompile(`(?i)"tags"\s*:\s*\[([^\]]+)\]`)
	faqsField  = regexp.MustCompile(`(?is)"faqs"\s*:\s*\[(.*?)\]`)
	quoted     = regexp.MustCompile(`"([^"]+)"`)
	faqPair    = regexp.MustCompile(`(?i)\{[^}]*"q"\s*:\s*"([^"]+)"[^}]*"a"\s*:\s*"([^"]+)"[^}]*\}`)
)

// Coerce classifies and repairs raw model text. It never panics; every parse
// failure falls through to the next, weaker strategy.
func Coerce(raw string) Result {
	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpen.ReplaceAllString(cleaned, "")
	cleaned = fenceClose.ReplaceAllString(cleaned, "")

	if obj, ok := parseObject(cleaned); ok {
		return Result{Object: obj}
	}

	// Headings, bullets or bold markers mean the model answered in prose.
	// Return it verbatim, no repair attempted.
	if naturalLine.MatchString(cleaned) || strings.Contains(cleaned, "**") {
		return Result{Text: cleaned}
	}

	candidate := cleaned
	if m := jsonObject.FindString(candidate); m != "" {
		candidate = m
	}
	candidate = trailingComma.ReplaceAllString(candidate, "$1")
	if obj, ok := parseObject(candidate); ok {
		return Result{Object: obj}
	}

	if obj := salvageFields(raw); len(obj) > 0 {
		return Result{Object: obj}
	}

	return Result{Text: cleaned}
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// salvageFields extracts recognized fields one by one from the original,
// uncleaned text. Fields not found stay absent; defaulting is the consumer's
// job. Single nesting level only — this is a salvage pass, not a JSON parser.
func salvageFields(raw string) map[string]any {
	obj := map[string]any{}

	if m := titleField.FindStringSubmatch(raw); m != nil {
		obj["suggested_title"] = m[1]
	}
	if m := descField.FindStringSubmatch(raw); m != nil {
		obj["suggested_description"] = m[1]
	}
	if m := tagsField.FindStringSubmatch(raw); m != nil {
		var tags []any
		for _, q := range quoted.FindAllStringSubmatch(m[1], -1) {
			tags = append(tags, strings.TrimSpace(q[1]))
		}
		if tags != nil {
			obj["tags"] = tags
		}
	}
	if m := faqsField.FindStringSubmatch(raw); m != nil {
		var faqs []any
		for _, qa := range faqPair.FindAllStringSubmatch(m[1], -1) {
			faqs = append(faqs, map[string]any{"q": qa[1], "a": qa[2]})
		}
		if faqs != nil {
			obj["faqs"] = faqs
		}
	}
	return obj
}
