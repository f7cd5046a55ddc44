package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arjun = "Hello everyone, my name is Arjun. I am 13 years old studying in class 8 at Riverdale School. " +
	"I love playing cricket and my dream is to become a data scientist. " +
	"A fun fact about me is that I collect old coins. Thank you."

type fakeSentiment struct{ pos float64 }

func (f fakeSentiment) Polarity(string) Polarity { return Polarity{Positive: f.pos, Neutral: 1 - f.pos} }

func steppingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

func newTestEvaluator(opts ...Option) (*Evaluator, *test.Hook) {
	log, hook := test.NewNullLogger()
	base := []Option{
		WithGrammar(fakeChecker{}),
		WithSentiment(fakeSentiment{pos: 0.4}),
		WithLogger(log),
		WithClock(steppingClock(15 * time.Millisecond)),
	}
	return NewEvaluator(append(base, opts...)...), hook
}

func TestValidate(t *testing.T) {
	_, err := Validate("")
	require.ErrorIs(t, err, ErrEmptyTranscript)
	assert.Equal(t, "Transcript is empty.", err.Error())

	_, err = Validate("   \n\t ")
	require.ErrorIs(t, err, ErrEmptyTranscript)

	_, err = Validate("one two three four five")
	require.ErrorIs(t, err, ErrTranscriptTooShort)
	assert.Equal(t, "Transcript too short for meaningful scoring (>=10 words required).", err.Error())

	txt, err := Validate("  one two three four five six seven eight nine ten  ")
	require.NoError(t, err)
	assert.Equal(t, "one two three four five six seven eight nine ten", txt)
}

func TestEvaluate_Arjun(t *testing.T) {
	e, hook := newTestEvaluator()
	resp, err := e.Evaluate(context.Background(), arjun, ptr(50.0))
	require.NoError(t, err)

	require.NotNil(t, resp.Extracted.Name)
	require.NotNil(t, resp.Extracted.Age)
	assert.Equal(t, "Arjun", *resp.Extracted.Name)
	assert.Equal(t, 13, *resp.Extracted.Age)
	require.NotNil(t, resp.Metric("concept"))
	assert.LessOrEqual(t, resp.TotalScore, resp.MaxTotal)

	assert.Equal(t, 44, resp.WordCount)
	assert.Equal(t, 5, resp.SentenceCount)
	require.NotNil(t, resp.WPM)
	assert.Equal(t, 52.8, *resp.WPM)
	assert.Equal(t, int64(15), resp.PerformanceMS)
	assert.Equal(t, arjun, resp.TranscriptPreview)

	var ids []string
	for _, m := range resp.Metrics {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"salutation", "keywords", "flow", "speech_rate", "grammar", "vocabulary", "clarity", "engagement", "concept"}, ids)

	assert.Equal(t, "good", resp.Metric("salutation").Details.(SalutationDetails).Level)
	kw := resp.Metric("keywords").Details.(KeywordDetails)
	assert.Equal(t, []string{"family", "interest"}, kw.MustMissing)
	assert.Equal(t, 30.0, resp.Metric("keywords").RawScore)
	assert.True(t, resp.Metric("flow").Details.(FlowDetails).OrderFollowed)
	assert.Equal(t, "too slow", resp.Metric("speech_rate").Details.(SpeechRateDetails).Band)
	assert.Equal(t, 15.0, resp.Metric("clarity").RawScore)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "transcript evaluated", hook.LastEntry().Message)
}

func TestEvaluate_SemanticToggle(t *testing.T) {
	lite, _ := newTestEvaluator()
	assert.Equal(t, 100.0, lite.MaxTotal())
	resp, err := lite.Evaluate(context.Background(), arjun, nil)
	require.NoError(t, err)
	assert.Equal(t, "2.1.1-lite", resp.Version)
	assert.Equal(t, "Semantic disabled", resp.Notes)
	assert.Zero(t, resp.Metric("concept").RawScore)
	assert.Equal(t, "Semantic coverage disabled.", resp.Metric("concept").Feedback)
	assert.Nil(t, resp.WPM)

	full, _ := newTestEvaluator(WithCoverage(NewSemanticCoverage(fakeEmbedder{}, nil)))
	assert.Equal(t, 110.0, full.MaxTotal())
	resp, err = full.Evaluate(context.Background(), arjun, nil)
	require.NoError(t, err)
	assert.Equal(t, "2.1.1", resp.Version)
	assert.Equal(t, "Full metric set", resp.Notes)
	assert.Equal(t, 10.0, resp.Metric("concept").RawScore)

	broken, _ := newTestEvaluator(WithCoverage(NewSemanticCoverage(fakeEmbedder{err: errors.New("down")}, nil)))
	resp, err = broken.Evaluate(context.Background(), arjun, nil)
	require.NoError(t, err)
	assert.Equal(t, 110.0, resp.MaxTotal)
	assert.Zero(t, resp.Metric("concept").RawScore)
}

func TestEvaluate_GrammarDegraded(t *testing.T) {
	e, hook := newTestEvaluator(WithGrammar(fakeChecker{err: errors.New("dial tcp: connection refused")}))
	resp, err := e.Evaluate(context.Background(), arjun, ptr(20.0))
	require.NoError(t, err)
	g := resp.Metric("grammar")
	assert.Equal(t, 10.0, g.RawScore)
	assert.Equal(t, "LanguageTool unavailable; default high score.", g.Details.(GrammarDetails).Note)
	assert.Equal(t, "Grammar band >0.9 with 0 errors.", g.Feedback)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "grammar checker degraded, using fallback score" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestEvaluate_ScoresWithinBounds(t *testing.T) {
	transcripts := []string{
		arjun,
		"um uh um uh um uh um uh um uh like like like so so so well well well",
		"I am excited to be here. My name is Kavya. I am 15 years old and I really enjoy painting. Thank you so much.",
		"Thank you. Goodbye. Hello. My goal. My name. Hi hi hi hi hi.",
	}
	e, _ := newTestEvaluator(
		WithGrammar(fakeChecker{issues: make([]GrammarIssue, 40)}),
		WithSentiment(fakeSentiment{pos: 1}),
		WithCoverage(NewSemanticCoverage(fakeEmbedder{}, nil)),
	)
	for _, text := range transcripts {
		for _, dur := range []*float64{nil, ptr(1.0), ptr(60.0), ptr(600.0)} {
			resp, err := e.Evaluate(context.Background(), text, dur)
			require.NoError(t, err)
			sum := 0.0
			for _, m := range resp.Metrics {
				assert.GreaterOrEqual(t, m.RawScore, 0.0, m.ID)
				assert.LessOrEqual(t, m.RawScore, m.MaxScore, m.ID)
				assert.NotEmpty(t, m.Feedback, m.ID)
				sum += m.RawScore
			}
			assert.InDelta(t, sum, resp.TotalScore, 0.01)
			assert.LessOrEqual(t, resp.TotalScore, resp.MaxTotal)
		}
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	e, _ := newTestEvaluator(WithCoverage(NewSemanticCoverage(fakeEmbedder{}, nil)))
	want, err := e.Evaluate(context.Background(), arjun, ptr(50.0))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Evaluate(context.Background(), arjun, ptr(50.0))
			if assert.NoError(t, err) {
				assert.Equal(t, want.TotalScore, got.TotalScore)
			}
		}()
	}
	wg.Wait()
}

func TestEvaluate_Cancelled(t *testing.T) {
	e, _ := newTestEvaluator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Evaluate(ctx, arjun, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate_Muskan(t *testing.T) {
	text := "Hello everyone, myself Muskan, studying in class 8th B section from Christ Public School. " +
		"I am 13 years old. I live with my family. There are 3 people in my family, me, my mother and my father. " +
		"One special thing about my family is that they are very kind hearted to everyone and soft spoken. " +
		"One thing I really enjoy is play, playing cricket and taking wickets. " +
		"A fun fact about me is that I see in mirror and talk by myself. " +
		"My favorite subject is science because it is very interesting. Thank you for listening."
	e, _ := newTestEvaluator()
	resp, err := e.Evaluate(context.Background(), text, ptr(52.0))
	require.NoError(t, err)
	assert.LessOrEqual(t, resp.TotalScore, 100.0)
	assert.Positive(t, resp.WordCount)
	require.NotNil(t, resp.Metric("salutation"))
	require.NotNil(t, resp.Extracted.Name)
	assert.Equal(t, "Muskan", *resp.Extracted.Name)
	require.NotNil(t, resp.Extracted.SchoolClass)
	assert.Equal(t, "Christ Public School, Class 8th", *resp.Extracted.SchoolClass)
	assert.Empty(t, resp.Metric("keywords").Details.(KeywordDetails).MustMissing)
}
