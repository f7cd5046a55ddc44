package nlp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/introscore/internal/scoring"
)

func quietLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func TestProvider_Unconfigured(t *testing.T) {
	p := NewProvider(Config{}, quietLogger())

	_, err := p.Check(context.Background(), "hello")
	require.ErrorIs(t, err, scoring.ErrGrammarUnavailable)

	_, err = p.Embed(context.Background(), []string{"x"})
	require.ErrorIs(t, err, ErrNoEmbedder)
	require.False(t, p.HasEmbedder())

	pol := p.Polarity("I love my school")
	require.Greater(t, pol.Positive, 0.0)
}

func TestProvider_SentimentBuiltOnce(t *testing.T) {
	p := NewProvider(Config{}, quietLogger())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Polarity("Thank you, I am thrilled to be here.")
		}()
	}
	wg.Wait()
	require.Same(t, p.analyzer(), p.analyzer())

	// less common words still carry valence
	pol := p.Polarity("I am absolutely thrilled and overjoyed, this is marvelous and splendid.")
	require.GreaterOrEqual(t, pol.Positive, 0.5)
}

func TestProvider_GrammarBuiltOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		_, _ = w.Write([]byte(`{"matches":[]}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{LanguageToolURL: srv.URL}, quietLogger())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.Check(context.Background(), "text")
		}()
	}
	wg.Wait()

	first := p.grammarClient()
	require.Same(t, first, p.grammarClient())
	require.Equal(t, 8, calls)
}

func TestProvider_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[1,2,3]}]}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{EmbeddingURL: srv.URL, EmbeddingModel: "m"}, quietLogger())
	require.True(t, p.HasEmbedder())
	v, err := p.Embed(context.Background(), []string{"one"})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2, 3}}, v)
}
