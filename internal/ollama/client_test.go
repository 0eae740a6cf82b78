package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/gig-optimizer-gateway/internal/config"
)

func testClient(t *testing.T, url string, usage Sink) *Client {
	t.Helper()
	return New(config.Config{Model: "llama3.1", OllamaURL: url}, zerolog.Nop(), usage)
}

type memSink struct {
	mu     sync.Mutex
	events []CallEvent
}

func (s *memSink) Record(_ context.Context, ev CallEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestChatPrimaryEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		var req struct {
			Model    string    `json:"model"`
			Messages []Message `json:"messages"`
			Stream   bool      `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.1", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"hello"}}`)
	}))
	defer srv.Close()

	sink := &memSink{}
	c := testClient(t, srv.URL, sink)
	out := c.Chat(context.Background(), "improve_gig", []Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "usr"},
	}, 0.5)

	assert.Equal(t, "hello", out)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "chat", sink.events[0].Protocol)
	assert.True(t, sink.events[0].OK)
}

func TestChatFallsBackToGenerateOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			http.NotFound(w, r)
		case "/api/generate":
			var req struct {
				Prompt string `json:"prompt"`
				Stream bool   `json:"stream"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.False(t, req.Stream)
			assert.Equal(t, "sys\n\nUser:\nusr\n\nAssistant:", req.Prompt)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"response":"from generate","done":true}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	sink := &memSink{}
	c := testClient(t, srv.URL, sink)
	out := c.Chat(context.Background(), "improve_gig", []Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "usr"},
	}, 0.5)

	assert.Equal(t, "from generate", out)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "generate", sink.events[0].Protocol)
}

func TestChatStreamingFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			http.NotFound(w, r)
		case "/api/generate":
			var req struct {
				Stream bool `json:"stream"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			// an old build streams NDJSON no matter what was asked
			w.Header().Set("Content-Type", "application/x-ndjson")
			if !req.Stream {
				fmt.Fprintln(w, `{"response":"ignored"}`)
				return
			}
			fmt.Fprintln(w, `{"response":"Hello"}`)
			fmt.Fprintln(w, `{"response":" world"}`)
			fmt.Fprintln(w, `{"response":"!","done":true}`)
			fmt.Fprintln(w, `{"response":"after done, never read"}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	sink := &memSink{}
	c := testClient(t, srv.URL, sink)
	out := c.Chat(context.Background(), "chat_gig", []Message{{Role: "user", Content: "hi"}}, 0.2)

	assert.Equal(t, "Hello world!", out)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "generate_stream", sink.events[0].Protocol)
}

func TestChatUpstreamUnreachable(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1", nil)
	out := c.Chat(context.Background(), "improve_gig", []Message{{Role: "user", Content: "hi"}}, 0.5)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Contains(t, parsed["error"], "Ollama request failed")
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
		want     string
	}{
		{
			name: "system and user",
			messages: []Message{
				{Role: "system", Content: "be helpful"},
				{Role: "user", Content: "improve my gig"},
			},
			want: "be helpful\n\nUser:\nimprove my gig\n\nAssistant:",
		},
		{
			name:     "user only",
			messages: []Message{{Role: "user", Content: "improve my gig"}},
			want:     "improve my gig",
		},
		{
			name: "multiple user turns joined",
			messages: []Message{
				{Role: "user", Content: "a"},
				{Role: "user", Content: "b"},
			},
			want: "a\nb",
		},
		{name: "empty", messages: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.messages))
		})
	}
}

func TestProbes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/version":
			fmt.Fprint(w, `{"version":"0.5.1"}`)
		case "/api/tags":
			fmt.Fprint(w, `{"models":[{"name":"llama3.1:8b"},{"name":"qwen2.5:7b-instruct"},{"name":""}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)

	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.5.1", v["version"])

	tags, err := c.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.1:8b", "qwen2.5:7b-instruct"}, tags)
}

func TestProbesUnreachable(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1", nil)

	_, err := c.Version(context.Background())
	assert.Error(t, err)

	_, err = c.Tags(context.Background())
	assert.Error(t, err)
}
