package gig

// Request carries the gig fields captured from the marketplace edit page.
// Every field is optional; absent fields decode to "".
type Request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Niche       string `json:"niche"`
}

// FAQ is a single question/answer pair suggested for the gig.
type FAQ struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Record is the fully-keyed result of analyzing a gig. After RecordFromMap
// every field is populated (possibly empty); consumers never branch on absence.
type Record struct {
	SuggestedTitle       string         `json:"suggested_title"`
	SuggestedDescription string         `json:"suggested_description"`
	Tags                 []string       `json:"tags"`
	FAQs                 []FAQ          `json:"faqs"`
	StepByStep           []string       `json:"step_by_step"`
	Reasons              []string       `json:"reasons"`
	Checks               map[string]any `json:"checks"`
}

// recognized keys and their empty defaults, in output order.
var textKeys = []string{"suggested_title", "suggested_description"}
var listKeys = []string{"tags", "faqs", "step_by_step", "reasons"}

// EnsureKeys returns a mapping in which all seven recognized keys are present,
// defaulting each one independently. Unrecognized keys are dropped. Idempotent.
func EnsureKeys(m map[string]any) map[string]any {
	out := make(map[string]any, 7)
	for _, k := range textKeys {
		if s, ok := m[k].(string); ok {
			out[k] = s
		} else {
			out[k] = ""
		}
	}
	for _, k := range listKeys {
		if l, ok := m[k].([]any); ok {
			out[k] = l
		} else {
			out[k] = []any{}
		}
	}
	if c, ok := m["checks"].(map[string]any); ok {
		out["checks"] = c
	} else {
		out["checks"] = map[string]any{}
	}
	return out
}

// RecordFromMap converts an arbitrary (possibly partial, possibly nil) mapping
// into a complete Record. It is total: values of the wrong type are treated as
// absent and default to empty.
func RecordFromMap(m map[string]any) Record {
	m = EnsureKeys(m)
	rec := Record{
		SuggestedTitle:       m["suggested_title"].(string),
		SuggestedDescription: m["suggested_description"].(string),
		Tags:                 stringSlice(m["tags"]),
		StepByStep:           stringSlice(m["step_by_step"]),
		Reasons:              stringSlice(m["reasons"]),
		Checks:               m["checks"].(map[string]any),
	}
	for _, v := range m["faqs"].([]any) {
		fm, ok := v.(map[string]any)
		if !ok {
			continue
		}
		q, _ := fm["q"].(string)
		a, _ := fm["a"].(string)
		rec.FAQs = append(rec.FAQs, FAQ{Q: q, A: a})
	}
	if rec.FAQs == nil {
		rec.FAQs = []FAQ{}
	}
	return rec
}

func stringSlice(v any) []string {
	l, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(l))
	for _, e := range l {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// FallbackRecord is substituted when the model refuses the task outright.
func FallbackRecord() Record {
	return Record{
		SuggestedTitle:       "Professional Web Development Services",
		SuggestedDescription: "Transform your online presence with expertly crafted websites.",
		Tags:                 []string{"web development", "professional", "quality"},
		FAQs: []FAQ{
			{Q: "What services do you offer?", A: "Professional web development services."},
		},
		StepByStep: []string{"Update your title", "Improve your description", "Add relevant tags"},
		Reasons:    []string{"Better visibility", "Higher conversions", "Professional appearance"},
		Checks:     map[string]any{},
	}
}
