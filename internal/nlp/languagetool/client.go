package languagetool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mind-engage/introscore/internal/scoring"
)

// Client talks to a LanguageTool server's /v2/check endpoint.
type Client struct {
	http     *http.Client
	endpoint string
	language string
}

type Config struct {
	BaseURL  string // e.g. http://localhost:8081
	Language string // defaults to en-US
	Timeout  time.Duration
}

func New(cfg Config) *Client {
	lang := cfg.Language
	if lang == "" {
		lang = "en-US"
	}
	h := &http.Client{}
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{
		http:     h,
		endpoint: strings.TrimSuffix(cfg.BaseURL, "/") + "/v2/check",
		language: lang,
	}
}

type checkResponse struct {
	Matches []struct {
		Message string `json:"message"`
		Rule    struct {
			ID        string `json:"id"`
			IssueType string `json:"issueType"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check returns every match LanguageTool reports for text.
func (c *Client) Check(ctx context.Context, text string) ([]scoring.GrammarIssue, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool check: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("languagetool check: %s", res.Status)
	}
	var body checkResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("languagetool decode: %w", err)
	}
	out := make([]scoring.GrammarIssue, 0, len(body.Matches))
	for _, m := range body.Matches {
		issueType := m.Rule.IssueType
		if issueType == "" {
			issueType = "other"
		}
		out = append(out, scoring.GrammarIssue{RuleID: m.Rule.ID, IssueType: issueType, Message: m.Message})
	}
	return out, nil
}
