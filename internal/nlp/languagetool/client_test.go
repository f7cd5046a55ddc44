package languagetool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/check", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "en-US", r.PostForm.Get("language"))
		assert.Equal(t, "I has a apple.", r.PostForm.Get("text"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches":[
			{"message":"agreement","rule":{"id":"HAVE_PART_AGREEMENT","issueType":"grammar"}},
			{"message":"article","rule":{"id":"EN_A_VS_AN","issueType":"misspelling"}},
			{"message":"space","rule":{"id":"WHITESPACE_RULE","issueType":"whitespace"}},
			{"message":"untyped","rule":{"id":"X"}}
		]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/"})
	issues, err := c.Check(context.Background(), "I has a apple.")
	require.NoError(t, err)
	require.Len(t, issues, 4)
	require.Equal(t, "HAVE_PART_AGREEMENT", issues[0].RuleID)
	require.Equal(t, "whitespace", issues[2].IssueType)
	require.Equal(t, "other", issues[3].IssueType)
}

func TestClient_CheckServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Check(context.Background(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}
