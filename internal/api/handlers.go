package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yourorg/gig-optimizer-gateway/internal/gig"
	"github.com/yourorg/gig-optimizer-gateway/internal/normalize"
	"github.com/yourorg/gig-optimizer-gateway/internal/ollama"
	"github.com/yourorg/gig-optimizer-gateway/internal/prompt"
	"github.com/yourorg/gig-optimizer-gateway/internal/report"
	"github.com/yourorg/gig-optimizer-gateway/internal/seo"
)

// Handlers are thin: decode, build prompt, call the model, normalize, render.
// They always answer 200 with a JSON body; upstream trouble degrades to
// explanatory content rather than HTTP errors.

const defaultTemperature = 0.5

type textResponse struct {
	Response string `json:"response"`
}

// ImproveGig analyzes the captured gig, or invents one from scratch when the
// page gave us neither a title nor a description.
func ImproveGig(client *ollama.Client, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gig.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		hasAny := strings.TrimSpace(req.Title) != "" || strings.TrimSpace(req.Description) != ""

		var user string
		if hasAny {
			user = prompt.ForImprove(req.Niche, req.Title, req.Description)
		} else {
			// Placeholder values until the popup form feeds real ones through.
			user = prompt.FromScratch(
				orDefault(req.Niche, "Website design"),
				"eCommerce brands",
				"Homepage + product page + about page",
				"3 days",
				"4+ years experience",
			)
		}

		out := client.Chat(r.Context(), "improve_gig", []ollama.Message{
			{Role: "system", Content: prompt.SystemImproveGig},
			{Role: "user", Content: user},
		}, defaultTemperature)

		res := normalize.Coerce(out)

		if res.Structured() {
			rec := gig.RecordFromMap(res.Object)
			writeJSON(w, textResponse{Response: report.Render(rec, req)})
			return
		}

		if isRefusal(res.Text) {
			logger.Debug().Msg("model refused, substituting fallback record")
			writeJSON(w, textResponse{Response: report.Render(gig.FallbackRecord(), req)})
			return
		}

		writeJSON(w, textResponse{Response: res.Text})
	}
}

type replyRequest struct {
	BuyerMessage string `json:"buyer_message"`
	Tone         string `json:"tone"`
	Context      string `json:"context"`
}

// ReplySuggestion drafts an answer to a buyer message. The normalized result
// passes through as-is; no key-defaulting is applied here.
func ReplySuggestion(client *ollama.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req replyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Tone == "" {
			req.Tone = "friendly"
		}

		out := client.Chat(r.Context(), "reply_suggestion", []ollama.Message{
			{Role: "system", Content: prompt.SystemReplySuggestion},
			{Role: "user", Content: prompt.ForReply(req.Tone, req.Context, req.BuyerMessage)},
		}, defaultTemperature)

		res := normalize.Coerce(out)
		if res.Structured() {
			writeJSON(w, res.Object)
			return
		}
		writeJSON(w, res.Text)
	}
}

type chatRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Niche       string `json:"niche"`
	UserMessage string `json:"user_message"`
}

// ChatGig answers follow-up questions about a previous analysis. Stateless:
// the popup resends the gig fields with every turn.
func ChatGig(client *ollama.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		out := client.Chat(r.Context(), "chat_gig", []ollama.Message{
			{Role: "system", Content: prompt.SystemChatCoach},
			{Role: "user", Content: prompt.ForChat(req.Title, req.Description, req.Niche, req.UserMessage)},
		}, defaultTemperature)

		res := normalize.Coerce(out)
		if res.Structured() {
			if s, ok := res.Object["response"].(string); ok {
				writeJSON(w, textResponse{Response: s})
				return
			}
			b, _ := json.Marshal(res.Object)
			writeJSON(w, textResponse{Response: string(b)})
			return
		}
		writeJSON(w, textResponse{Response: res.Text})
	}
}

type seoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PrimaryKW   string `json:"primary_kw"`
}

// SEOScore is a pure local rubric; no model call.
func SEOScore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req seoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		writeJSON(w, seo.Score(seo.Input{
			Title:          req.Title,
			Description:    req.Description,
			PrimaryKeyword: req.PrimaryKW,
		}))
	}
}

func isRefusal(text string) bool {
	low := strings.ToLower(text)
	return strings.Contains(low, "cannot fulfill") || strings.Contains(low, "cannot provide")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
