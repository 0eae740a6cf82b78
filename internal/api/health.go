package api

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yourorg/gig-optimizer-gateway/internal/ollama"
)

type healthResponse struct {
	OK            bool           `json:"ok"`
	Model         string         `json:"model"`
	OllamaURL     string         `json:"ollama_url"`
	OllamaVersion map[string]any `json:"ollama_version"`
	Models        []string       `json:"models"`
	ModelPresent  *bool          `json:"model_present"`
	Error         *string        `json:"error"`
}

// Health enriches the liveness report with the Ollama version and whether the
// configured model is installed. Both probes are best-effort and independent:
// one failing does not mask the other's result.
func Health(client *ollama.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			version    map[string]any
			models     []string
			versionErr error
			tagsErr    error
		)

		var g errgroup.Group
		g.Go(func() error {
			version, versionErr = client.Version(r.Context())
			return nil
		})
		g.Go(func() error {
			models, tagsErr = client.Tags(r.Context())
			return nil
		})
		_ = g.Wait()

		resp := healthResponse{
			OK:            version != nil,
			Model:         client.Model(),
			OllamaURL:     client.BaseURL(),
			OllamaVersion: version,
			Models:        []string{},
		}

		if tagsErr == nil {
			resp.Models = models
			present := false
			for _, m := range models {
				if m == client.Model() || strings.HasPrefix(m, client.Model()) {
					present = true
					break
				}
			}
			resp.ModelPresent = &present
		}

		var parts []string
		if versionErr != nil {
			parts = append(parts, fmt.Sprintf("version: %v", versionErr))
		}
		if tagsErr != nil {
			parts = append(parts, fmt.Sprintf("tags: %v", tagsErr))
		}
		if len(parts) > 0 {
			msg := strings.Join(parts, "; ")
			resp.Error = &msg
		}

		writeJSON(w, resp)
	}
}
