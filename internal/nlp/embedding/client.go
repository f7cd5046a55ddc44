// Package embedding calls an OpenAI-compatible /embeddings endpoint (for
// example a text-embeddings-inference server hosting all-MiniLM-L6-v2).
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	http     *http.Client
	endpoint string
	model    string
	apiKey   string
}

func New(cfg Config) *Client {
	h := &http.Client{}
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{
		http:     h,
		endpoint: strings.TrimSuffix(cfg.BaseURL, "/") + "/embeddings",
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
	}
}

type embedRequest struct {
	Model string   `json:"model,omitempty"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed returns one vector per input text, in input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, errors.New("embedding: no input")
	}
	b, err := json.Marshal(embedRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("embedding request: %s", res.Status)
	}
	var body embedResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("embedding decode: %w", err)
	}
	if len(body.Data) != len(texts) {
		return nil, fmt.Errorf("embedding: got %d vectors for %d inputs", len(body.Data), len(texts))
	}
	sort.SliceStable(body.Data, func(i, j int) bool { return body.Data[i].Index < body.Data[j].Index })
	out := make([][]float64, len(body.Data))
	for i, d := range body.Data {
		out[i] = d.Embedding
	}
	return out, nil
}
