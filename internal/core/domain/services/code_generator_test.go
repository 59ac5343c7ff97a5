package services_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"sync"
	"testing"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type setRegistry struct {
	mu     sync.Mutex
	issued map[string]struct{}
	calls  int
}

func newSetRegistry() *setRegistry {
	return &setRegistry{issued: make(map[string]struct{})}
}

func (r *setRegistry) Reserve(_ context.Context, code kernel.OrderCode) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if _, ok := r.issued[code.String()]; ok {
		return false, nil
	}
	r.issued[code.String()] = struct{}{}
	return true, nil
}

type fullRegistry struct{ calls int }

func (r *fullRegistry) Reserve(context.Context, kernel.OrderCode) (bool, error) {
	r.calls++
	return false, nil
}

type failingRegistry struct{}

func (failingRegistry) Reserve(context.Context, kernel.OrderCode) (bool, error) {
	return false, errors.New("connection refused")
}

type attemptsRecorder struct{ observed []int }

func (r *attemptsRecorder) CodeAttempts(n int) {
	r.observed = append(r.observed, n)
}

var codeFormat = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

func TestCodeGenerator_Generate(t *testing.T) {
	t.Run("should produce well formed unique codes", func(t *testing.T) {
		gen := services.NewCodeGenerator(newSetRegistry())
		seen := make(map[string]struct{})

		for range 2000 {
			code, err := gen.Generate(t.Context())

			require.NoError(t, err)
			assert.Regexp(t, codeFormat, code.String())
			_, dup := seen[code.String()]
			require.False(t, dup, "code %s issued twice", code)
			seen[code.String()] = struct{}{}
		}
	})

	t.Run("should be deterministic for a fixed source", func(t *testing.T) {
		a := services.NewCodeGenerator(newSetRegistry(), services.WithRand(rand.New(rand.NewPCG(1, 2))))
		b := services.NewCodeGenerator(newSetRegistry(), services.WithRand(rand.New(rand.NewPCG(1, 2))))

		for range 10 {
			ca, err := a.Generate(t.Context())
			require.NoError(t, err)
			cb, err := b.Generate(t.Context())
			require.NoError(t, err)
			assert.Equal(t, ca, cb)
		}
	})

	t.Run("should retry on collision", func(t *testing.T) {
		registry := newSetRegistry()
		first := services.NewCodeGenerator(registry, services.WithRand(rand.New(rand.NewPCG(7, 7))))
		code, err := first.Generate(t.Context())
		require.NoError(t, err)

		// Same seed draws the same first candidate, which is now taken.
		second := services.NewCodeGenerator(registry, services.WithRand(rand.New(rand.NewPCG(7, 7))))
		other, err := second.Generate(t.Context())

		require.NoError(t, err)
		assert.NotEqual(t, code, other)
		assert.Equal(t, 3, registry.calls)
	})

	t.Run("should give up after max attempts", func(t *testing.T) {
		registry := &fullRegistry{}
		gen := services.NewCodeGenerator(registry)

		_, err := gen.Generate(t.Context())

		require.ErrorIs(t, err, services.ErrCodeGenerationExhausted)
		assert.Equal(t, services.DefaultMaxAttempts, registry.calls)
	})

	t.Run("should honour custom max attempts", func(t *testing.T) {
		registry := &fullRegistry{}
		gen := services.NewCodeGenerator(registry, services.WithMaxAttempts(5))

		_, err := gen.Generate(t.Context())

		require.ErrorIs(t, err, services.ErrCodeGenerationExhausted)
		assert.Equal(t, 5, registry.calls)
	})

	t.Run("should report attempts to the observer", func(t *testing.T) {
		obs := &attemptsRecorder{}
		gen := services.NewCodeGenerator(newSetRegistry(), services.WithAttemptsObserver(obs))
		_, err := gen.Generate(t.Context())
		require.NoError(t, err)

		full := services.NewCodeGenerator(&fullRegistry{},
			services.WithMaxAttempts(4), services.WithAttemptsObserver(obs))
		_, err = full.Generate(t.Context())
		require.ErrorIs(t, err, services.ErrCodeGenerationExhausted)

		assert.Equal(t, []int{1, 4}, obs.observed)
	})

	t.Run("should propagate registry errors", func(t *testing.T) {
		gen := services.NewCodeGenerator(failingRegistry{})

		_, err := gen.Generate(t.Context())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NotErrorIs(t, err, services.ErrCodeGenerationExhausted)
	})

	t.Run("should stop on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := services.NewCodeGenerator(newSetRegistry()).Generate(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCodeGenerator_Concurrent(t *testing.T) {
	const workers, perWorker = 16, 200

	gen := services.NewCodeGenerator(newSetRegistry())
	codes := make([][]string, workers)

	g, ctx := errgroup.WithContext(t.Context())
	for w := range workers {
		g.Go(func() error {
			for range perWorker {
				code, err := gen.Generate(ctx)
				if err != nil {
					return err
				}
				codes[w] = append(codes[w], code.String())
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]struct{}, workers*perWorker)
	for _, batch := range codes {
		for _, c := range batch {
			_, dup := seen[c]
			require.False(t, dup, "code %s issued twice", c)
			seen[c] = struct{}{}
		}
	}
	assert.Len(t, seen, workers*perWorker)
}
