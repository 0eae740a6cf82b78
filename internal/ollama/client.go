// Package ollama talks to a locally hosted Ollama server.
//
// The API surface differs across Ollama builds: newer servers expose /api/chat,
// older ones only /api/generate, and very old builds stream NDJSON even when
// asked not to. Chat degrades through all three protocols rather than failing
// hard on an old server.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourorg/gig-optimizer-gateway/internal/config"
)

// Message is one turn of the conversation sent upstream.
type Message struct {
	Role    string `json:"role"` // system|user
	Content string `json:"content"`
}

// CallEvent describes one completed upstream call, for the optional usage
// ledger. It carries metadata only, never prompt or response text.
type CallEvent struct {
	Endpoint string // api handler that triggered the call
	Model    string
	Protocol string // chat | generate | generate_stream | probe
	Duration time.Duration
	OK       bool
}

// Sink receives call events. Implementations must not block the request path
// on failure; recording is best-effort.
type Sink interface {
	Record(ctx context.Context, ev CallEvent)
}

type Client struct {
	baseURL string
	model   string
	log     zerolog.Logger
	usage   Sink

	genClient   *http.Client // generation calls
	probeClient *http.Client // version/tags probes
}

func New(cfg config.Config, log zerolog.Logger, usage Sink) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.OllamaURL, "/"),
		model:       cfg.Model,
		log:         log,
		usage:       usage,
		genClient:   &http.Client{Timeout: 120 * time.Second},
		probeClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Chat sends the message list upstream and returns the model's raw text. It
// never returns an error: any terminal failure is encoded as a JSON
// {"error": ...} string so downstream code treats failure uniformly as text.
//
// Attempt order is fixed: /api/chat, then /api/generate with stream=false,
// then /api/generate with stream=true reading NDJSON.
func (c *Client) Chat(ctx context.Context, endpoint string, messages []Message, temperature float64) string {
	start := time.Now()

	if out, ok := c.tryChat(ctx, messages, temperature); ok {
		c.record(ctx, endpoint, "chat", start, true)
		return out
	}

	prompt := Flatten(messages)

	out, retryAsStream, err := c.tryGenerate(ctx, prompt, temperature)
	if err != nil {
		c.record(ctx, endpoint, "generate", start, false)
		return jsonError(fmt.Sprintf("Ollama request failed: %v", err))
	}
	if !retryAsStream {
		c.record(ctx, endpoint, "generate", start, true)
		return out
	}

	// Old builds ignore stream=false and answer NDJSON; ask for the stream
	// explicitly and concatenate it.
	out, err = c.generateStream(ctx, prompt, temperature)
	if err != nil {
		c.record(ctx, endpoint, "generate_stream", start, false)
		return jsonError(fmt.Sprintf("Ollama streaming failed: %v", err))
	}
	c.record(ctx, endpoint, "generate_stream", start, true)
	return out
}

// tryChat posts to /api/chat. A non-200 status or transport error is not
// surfaced; it only means "fall back".
func (c *Client) tryChat(ctx context.Context, messages []Message, temperature float64) (string, bool) {
	body, _ := json.Marshal(map[string]any{
		"model":    c.model,
		"messages": messages,
		"options":  map[string]any{"temperature": temperature},
		"stream":   false,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.genClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("chat endpoint unreachable, falling back to generate")
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Debug().Int("status", resp.StatusCode).Msg("chat endpoint refused, falling back to generate")
		return "", false
	}

	var payload struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false
	}
	return payload.Message.Content, true
}

// tryGenerate posts to /api/generate with stream=false. retryAsStream is set
// when the server answered with a non-JSON content type, which old builds do
// when they stream NDJSON regardless of the request.
func (c *Client) tryGenerate(ctx context.Context, prompt string, temperature float64) (out string, retryAsStream bool, err error) {
	body, _ := json.Marshal(map[string]any{
		"model":   c.model,
		"prompt":  prompt,
		"options": map[string]any{"temperature": temperature},
		"stream":  false,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.genClient.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	ctype := strings.ToLower(resp.Header.Get("Content-Type"))
	if resp.StatusCode == http.StatusOK && strings.Contains(ctype, "application/json") {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", false, err
		}
		var payload struct {
			Response string `json:"response"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			// JSON content type but unparseable body; hand it back as-is
			return string(raw), false, nil
		}
		return payload.Response, false, nil
	}
	return "", true, nil
}

// generateStream posts to /api/generate with stream=true and concatenates the
// NDJSON "response" chunks until an object signals done.
func (c *Client) generateStream(ctx context.Context, prompt string, temperature float64) (string, error) {
	body, _ := json.Marshal(map[string]any{
		"model":   c.model,
		"prompt":  prompt,
		"options": map[string]any{"temperature": temperature},
		"stream":  true,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.genClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama stream error: %s", resp.Status)
	}

	var b strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		ln := strings.TrimSpace(scanner.Text())
		if ln == "" {
			continue
		}
		var chunk struct {
			Response string `json:"response"`
			Done     bool   `json:"done"`
		}
		if err := json.Unmarshal([]byte(ln), &chunk); err != nil {
			continue
		}
		b.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Flatten collapses a message list into a single legacy completion prompt:
// system contents first, then a User/Assistant frame. Without system content
// the prompt is just the user text.
func Flatten(messages []Message) string {
	var sys, user []string
	for _, m := range messages {
		switch m.Role {
		case "system":
			sys = append(sys, m.Content)
		case "user":
			user = append(user, m.Content)
		}
	}
	sysTxt := strings.TrimSpace(strings.Join(sys, "\n"))
	userTxt := strings.TrimSpace(strings.Join(user, "\n"))
	if sysTxt == "" {
		return userTxt
	}
	return fmt.Sprintf("%s\n\nUser:\n%s\n\nAssistant:", sysTxt, userTxt)
}

func (c *Client) record(ctx context.Context, endpoint, protocol string, start time.Time, ok bool) {
	if c.usage == nil {
		return
	}
	c.usage.Record(ctx, CallEvent{
		Endpoint: endpoint,
		Model:    c.model,
		Protocol: protocol,
		Duration: time.Since(start),
		OK:       ok,
	})
}

func jsonError(msg string) string {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return string(b)
}
