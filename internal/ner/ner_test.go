package ner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRecognizer struct {
	names []string
}

func (f fixedRecognizer) FindPersons(_ context.Context, _ string) ([]string, error) {
	return f.names, nil
}

func TestLazy_LoadsOnceUnderConcurrency(t *testing.T) {
	var calls atomic.Int32
	lazy := NewLazy("test", func() (Recognizer, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return fixedRecognizer{names: []string{"Jane Doe"}}, nil
	})

	const workers = 32
	var wg sync.WaitGroup
	results := make([]Recognizer, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := lazy.Recognizer()
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int64(1), lazy.loadCount())
	assert.True(t, lazy.isLoaded())
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestLazy_FailedLoadIsRetried(t *testing.T) {
	var calls int
	lazy := NewLazy("flaky", func() (Recognizer, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("model missing")
		}
		return fixedRecognizer{}, nil
	})

	_, err := lazy.Recognizer()
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "flaky", loadErr.Provider)
	assert.Contains(t, err.Error(), "model missing")
	assert.False(t, lazy.isLoaded())

	r, err := lazy.Recognizer()
	require.NoError(t, err)
	assert.NotNil(t, r)
	assert.Equal(t, 2, calls)
}

func TestLazy_PanickingLoader(t *testing.T) {
	lazy := NewLazy("boom", func() (Recognizer, error) {
		panic("corrupt model")
	})

	_, err := lazy.Recognizer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt model")
}

func TestLazy_NilRecognizer(t *testing.T) {
	lazy := NewLazy("nil", func() (Recognizer, error) { return nil, nil })
	_, err := lazy.Recognizer()
	require.Error(t, err)
	assert.False(t, lazy.isLoaded())
}

func TestStatic(t *testing.T) {
	want := fixedRecognizer{names: []string{"A B"}}
	r, err := Static(want).Recognizer()
	require.NoError(t, err)
	assert.Equal(t, want, r)
}

func TestHeuristic_FindPersons(t *testing.T) {
	names, err := Heuristic{}.FindPersons(context.Background(), "John Smith\njohn@example.com\nSenior Engineer at Acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "Senior Engineer"}, names)
}

func TestHeuristic_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Heuristic{}.FindPersons(ctx, "John Smith")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBreaker_TripsAfterRepeatedFailures(t *testing.T) {
	var calls int
	failing := RecognizerFunc(func(_ context.Context, _ string) ([]string, error) {
		calls++
		return nil, errors.New("crashed")
	})
	b := NewBreaker("test", failing, BreakerSettings{MinRequests: 3, FailureThreshold: 0.5, Timeout: time.Hour}, nil)

	for i := 0; i < 3; i++ {
		_, err := b.FindPersons(context.Background(), "x")
		require.Error(t, err)
	}
	assert.False(t, b.closed())

	_, err := b.FindPersons(context.Background(), "x")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, calls)
}

func TestBreaker_ConvertsPanicToError(t *testing.T) {
	panicking := RecognizerFunc(func(_ context.Context, _ string) ([]string, error) {
		panic("segfault in model")
	})
	b := NewBreaker("panic", panicking, DefaultBreakerSettings(), nil)

	names, err := b.FindPersons(context.Background(), "x")
	require.Error(t, err)
	assert.Nil(t, names)
	assert.Contains(t, err.Error(), "segfault in model")
}

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	b := NewBreaker("ok", fixedRecognizer{names: []string{"Ada Lovelace"}}, DefaultBreakerSettings(), nil)
	names, err := b.FindPersons(context.Background(), "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada Lovelace"}, names)
	assert.True(t, b.closed())
}

func TestWithBreaker_PropagatesLoadError(t *testing.T) {
	inner := NewLazy("prose", func() (Recognizer, error) { return nil, errors.New("no model") })
	p := WithBreaker("prose", inner, DefaultBreakerSettings(), nil)

	_, err := p.Recognizer()
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "prose", loadErr.Provider)
	assert.Contains(t, err.Error(), "no model")
}

func TestWithBreaker_SharesOneBreaker(t *testing.T) {
	p := WithBreaker("static", Static(fixedRecognizer{}), DefaultBreakerSettings(), nil)
	r1, err := p.Recognizer()
	require.NoError(t, err)
	r2, err := p.Recognizer()
	require.NoError(t, err)
	assert.Same(t, r1, r2)
}

func TestProseLoader_MissingModelDirectory(t *testing.T) {
	_, err := NewProseLoader("/nonexistent/model/dir")()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat model directory")
}

func TestProseRecognizer_BundledModel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping prose model load in short mode")
	}

	r, err := NewProseLoader("")()
	require.NoError(t, err)

	pr, ok := r.(*ProseRecognizer)
	require.True(t, ok)
	require.NotNil(t, pr.model, "bundled model must be kept after loading")
	model := pr.model

	_, err = r.FindPersons(context.Background(), "Maria Garcia\nmaria@example.com\nBackend engineer")
	require.NoError(t, err)
	assert.Same(t, model, pr.model)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(KindNone, "", nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewProvider(KindHeuristic, "", nil)
	require.NoError(t, err)
	r, err := p.Recognizer()
	require.NoError(t, err)
	names, err := r.FindPersons(context.Background(), "Resume of Maria Garcia")
	require.NoError(t, err)
	assert.Equal(t, []string{"Maria Garcia"}, names)

	p, err = NewProvider(KindProse, t.TempDir()+"/missing", nil)
	require.NoError(t, err)
	_, err = p.Recognizer()
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindProse, le.Provider)

	_, err = NewProvider("spacy", "", nil)
	assert.ErrorContains(t, err, `unknown recognizer provider "spacy"`)
}
