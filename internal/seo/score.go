// Package seo scores a gig listing against a fixed, deterministic rubric.
// No model call is involved.
package seo

import "strings"

// Input is the listing under evaluation. PrimaryKeyword may be empty, in which
// case the keyword-placement check neither scores nor tips.
type Input struct {
	Title          string
	Description    string
	PrimaryKeyword string
}

// Breakdown is the rubric outcome: a 0-40 score, the counted bullet lines and
// one tip per failed check.
type Breakdown struct {
	Score   int      `json:"score"`
	Bullets int      `json:"bullets"`
	Tips    []string `json:"tips"`
}

// Score applies the four rubric checks, +10 each:
// title length in [50,70], primary keyword within the first 100 characters of
// the description, 3-5 benefit bullets, 120-250 words.
func Score(in Input) Breakdown {
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	kw := strings.ToLower(strings.TrimSpace(in.PrimaryKeyword))

	score := 0
	titleOK := len(title) >= 50 && len(title) <= 70
	if titleOK {
		score += 10
	}

	head := strings.ToLower(firstChars(desc, 100))
	kwOK := kw != "" && strings.Contains(head, kw)
	if kwOK {
		score += 10
	}

	bullets := 0
	for _, ln := range strings.Split(desc, "\n") {
		ln = strings.TrimSpace(ln)
		if strings.HasPrefix(ln, "•") || strings.HasPrefix(ln, "-") {
			bullets++
		}
	}
	if bullets >= 3 && bullets <= 5 {
		score += 10
	}

	words := len(strings.Fields(desc))
	wordsOK := words >= 120 && words <= 250
	if wordsOK {
		score += 10
	}

	tips := []string{}
	if !titleOK {
		tips = append(tips, "Aim 50–70 chars for the title.")
	}
	if kw != "" && !strings.Contains(head, kw) {
		tips = append(tips, "Put the primary keyword in the first 100 chars.")
	}
	if bullets < 3 {
		tips = append(tips, "Add at least 3 benefit bullets (start with •).")
	}
	if bullets > 5 {
		tips = append(tips, "Keep bullets to 3–5 for clarity.")
	}
	if !wordsOK {
		tips = append(tips, "Keep description 120–250 words.")
	}

	return Breakdown{Score: score, Bullets: bullets, Tips: tips}
}

func firstChars(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
