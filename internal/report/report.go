// Package report renders a complete optimization record into the fixed
// natural-language analysis shown by the extension popup. Output is
// deterministic: the same record and request always render byte-identical text.
package report

import (
	"fmt"
	"strings"

	"github.com/yourorg/gig-optimizer-gateway/internal/gig"
)

var impactAdjectives = []string{"professional", "expert", "stunning", "high-quality", "premium"}

var hookWords = []string{"Transform", "Tired", "Looking", "Need", "Want"}

// Weaknesses derives weakness statements from the gig the buyer currently has.
// Title checks run only when a title was captured, description checks only when
// a description was; if nothing triggers, a single generic statement is emitted.
func Weaknesses(req gig.Request) []string {
	var out []string

	if req.Title != "" {
		lower := strings.ToLower(req.Title)
		if len(req.Title) < 30 {
			out = append(out, "Title is too short and lacks impact")
		}
		if strings.Contains(lower, "i will") {
			out = append(out, "Title starts with generic 'I will' instead of focusing on benefits")
		}
		hasAdjective := false
		for _, w := range impactAdjectives {
			if strings.Contains(lower, w) {
				hasAdjective = true
				break
			}
		}
		if !hasAdjective {
			out = append(out, "Title lacks compelling adjectives that attract buyers")
		}
	}

	if req.Description != "" {
		if len(req.Description) < 100 {
			out = append(out, "Description is too short and lacks detail")
		}
		hasHook := false
		for _, w := range hookWords {
			if strings.HasPrefix(req.Description, w) {
				hasHook = true
				break
			}
		}
		if !hasHook {
			out = append(out, "Description lacks a compelling hook in the first line")
		}
		if !strings.Contains(req.Description, "•") {
			out = append(out, "Description lacks benefit bullets that make it scannable")
		}
	}

	if len(out) == 0 {
		out = append(out, "Gig could benefit from more specific benefits and clearer call-to-action")
	}
	return out
}

// Render produces the seven-section analysis. Heading text is load-bearing:
// the extension popup splits on these exact headings, so they must not change.
func Render(rec gig.Record, req gig.Request) string {
	var b strings.Builder

	weaknesses := Weaknesses(req)
	bullets := make([]string, len(weaknesses))
	for i, w := range weaknesses {
		bullets[i] = "• " + w
	}

	fmt.Fprintf(&b, `# 🚀 Fiverr Gig Optimization Analysis

## 1. **Current Weaknesses & Fiverr-Unfriendly Elements**
❌ %s

## 2. **Stronger Title with Keywords**
✅ **%s**
**Why this works:** This title is more benefit-focused, includes relevant keywords, and avoids the generic "I will" format that buyers often ignore.

## 3. **Rewritten Description**
%s

## 4. **SEO Tags**
• %s

## 5. **Relevant FAQs**
`, strings.Join(bullets, "\n"), rec.SuggestedTitle, rec.SuggestedDescription, strings.Join(rec.Tags, " • "))

	for _, faq := range rec.FAQs {
		fmt.Fprintf(&b, "**Q:** %s\n**A:** %s\n\n", faq.Q, faq.A)
	}

	b.WriteString("## 6. **Step-by-Step Implementation Checklist**\n")
	for i, step := range rec.StepByStep {
		fmt.Fprintf(&b, "**Step %d:** %s\n", i+1, step)
	}

	b.WriteString("\n## 7. **Why These Improvements Help**\n")
	for _, reason := range rec.Reasons {
		fmt.Fprintf(&b, "• %s\n", reason)
	}

	b.WriteString("\n**Ready to implement these changes? Start with Step 1 and watch your gig performance improve!** 🚀")

	return b.String()
}
