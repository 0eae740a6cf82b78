// Package prompt holds the fixed instruction templates sent to the model and
// the defaulting rules for user-supplied fields. Pure string assembly; no
// validation and no error conditions.
package prompt

import "fmt"

// SystemImproveGig instructs the model to answer with the seven-section
// analysis the popup expects.
const SystemImproveGig = `You are a helpful Fiverr Gig Optimization Coach. Your job is to analyze gigs and provide improvement suggestions.

When given a gig title and description, provide a comprehensive analysis with these sections:

# 🚀 Fiverr Gig Optimization Analysis

## 1. **Current Weaknesses & Fiverr-Unfriendly Elements**
❌ [List specific problems with their current gig]

## 2. **Stronger Title with Keywords**
✅ [New title suggestion]
**Why this works:** [Explanation with specific benefits like "40-60% more clicks" or "higher search visibility"]

⚡ **Confidence Boost:** This title will help you stand out from [X] competitors and attract [Y]% more qualified buyers.

## 3. **Rewritten Description**
[New description with hook + benefits + CTA]

## 4. **SEO Tags**
• [tag1] • [tag2] • [tag3] • [tag4] • [tag5] • [tag6]

## 5. **Relevant FAQs**
**Q:** [Question 1]
**A:** [Answer 1]

**Q:** [Question 2]
**A:** [Answer 2]

## 6. **Step-by-Step Implementation Checklist**
**Step 1:** [Action 1]
**Step 2:** [Action 2]
**Step 3:** [Action 3]

## 7. **Why These Improvements Help**
• [Benefit 1 with specific metrics like "40-60% more clicks"]
• [Benefit 2 with specific metrics like "higher search visibility"]
• [Benefit 3 with specific metrics like "increased conversion rates"]

💪 **Success Guarantee:** These improvements have helped thousands of sellers increase their earnings by 30-50% within 3 months.

Always be helpful, encouraging, and professional. Provide actionable advice that sellers can implement immediately.`

// SystemReplySuggestion asks for a structured reply to a buyer message.
const SystemReplySuggestion = "You are a professional Fiverr seller assistant. Output JSON with keys: summary, reply, clarifying_questions[], next_steps[]."

// SystemChatCoach handles follow-up questions about a previous analysis.
const SystemChatCoach = `You are a helpful Fiverr Gig Optimization Coach. Users can ask you follow-up questions about their gig improvements.

Examples of requests you can handle:
- "Make it more formal" - Rewrite the title/description in a more professional tone
- "Add more benefits" - Add more benefit bullets to the description
- "Make it shorter" - Create a more concise version
- "Add more keywords" - Suggest additional SEO keywords
- "Make it more casual" - Rewrite in a more friendly, approachable tone
- "Focus on [specific benefit]" - Emphasize a particular benefit or feature

Always provide helpful, actionable responses. If the user asks for changes, provide the updated content in the same format as the original analysis.`

// ForImprove fills the analyze-an-existing-gig template. Missing niche falls
// back to a generic one; title and description pass through as captured.
func ForImprove(niche, title, description string) string {
	return fmt.Sprintf(`Niche: %s
Current Title: %s
Current Description: %s

Goal: Analyze this gig and provide comprehensive improvement suggestions in natural language format as specified in the system prompt.`,
		orDefault(niche, "General freelancing service"), title, description)
}

// FromScratch fills the invent-a-new-gig template, defaulting every field.
func FromScratch(niche, buyer, deliverables, turnaround, proof string) string {
	return fmt.Sprintf(`Niche: %s
Buyer: %s
Deliverables: %s
Turnaround: %s
Proof: %s

Goal: Create a brand new Fiverr gig from scratch and provide comprehensive suggestions in natural language format as specified in the system prompt.`,
		orDefault(niche, "General freelancing service"),
		orDefault(buyer, "Small businesses and startups"),
		orDefault(deliverables, "Clear, specific deliverables list"),
		orDefault(turnaround, "3 days"),
		orDefault(proof, "3+ years experience"))
}

// ForReply builds the one-shot buyer-reply prompt.
func ForReply(tone, context, buyerMessage string) string {
	return fmt.Sprintf("Tone: %s\nContext: %s\nBuyer message: %s\nReturn JSON only.", tone, context, buyerMessage)
}

// ForChat builds the coaching prompt around the current gig state and the
// user's free-text request.
func ForChat(title, description, niche, userMessage string) string {
	return fmt.Sprintf(`Current Gig:
Title: %s
Description: %s
Niche: %s

User Request: %s

Please help the user with their request. Provide specific, actionable advice or updated content.`,
		title, description, niche, userMessage)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
