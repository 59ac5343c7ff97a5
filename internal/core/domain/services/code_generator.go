package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"
)

// DefaultMaxAttempts bounds the number of consecutive collisions Generate
// tolerates before giving up.
const DefaultMaxAttempts = 1000

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits  = "0123456789"
)

// ErrCodeGenerationExhausted is returned when every attempt produced an
// already issued code.
var ErrCodeGenerationExhausted = errors.New("order code generation exhausted")

// CodeGenerator issues order codes of three uppercase letters followed by
// three digits. Candidates are drawn uniformly at random and reserved in a
// CodeRegistry, so a code is never issued twice even across restarts when
// the registry is persistent.
//
// Example:
//
//	gen := services.NewCodeGenerator(registry)
//	code, err := gen.Generate(ctx)
//	if errors.Is(err, services.ErrCodeGenerationExhausted) {
//	    // the code space is (nearly) full
//	}
//
// CodeGenerator is safe for concurrent use.
type CodeGenerator struct {
	registry    ports.CodeRegistry
	maxAttempts int
	observer    ports.CodeAttemptsObserver

	mu  sync.Mutex
	rnd *rand.Rand
}

// GeneratorOption configures a CodeGenerator.
type GeneratorOption func(*CodeGenerator)

// WithRand replaces the random source, mainly for deterministic tests.
func WithRand(rnd *rand.Rand) GeneratorOption {
	return func(g *CodeGenerator) {
		g.rnd = rnd
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts. Non-positive values are ignored.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *CodeGenerator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithAttemptsObserver reports the attempts of every Generate call to obs.
func WithAttemptsObserver(obs ports.CodeAttemptsObserver) GeneratorOption {
	return func(g *CodeGenerator) {
		g.observer = obs
	}
}

// NewCodeGenerator creates a generator backed by registry.
func NewCodeGenerator(registry ports.CodeRegistry, opts ...GeneratorOption) *CodeGenerator {
	seed := uint64(time.Now().UnixNano())
	g := &CodeGenerator{
		registry:    registry,
		maxAttempts: DefaultMaxAttempts,
		rnd:         rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a code that has never been issued before and records it
// as issued. The reservation survives even if the caller's transaction is
// later rolled back.
func (g *CodeGenerator) Generate(ctx context.Context) (kernel.OrderCode, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return kernel.OrderCode{}, err
		}

		code, err := kernel.NewOrderCode(g.candidate())
		if err != nil {
			return kernel.OrderCode{}, err
		}

		reserved, err := g.registry.Reserve(ctx, code)
		if err != nil {
			return kernel.OrderCode{}, fmt.Errorf("reserve order code: %w", err)
		}
		if reserved {
			g.observe(attempt)
			return code, nil
		}
	}

	g.observe(g.maxAttempts)
	return kernel.OrderCode{}, ErrCodeGenerationExhausted
}

func (g *CodeGenerator) observe(attempts int) {
	if g.observer != nil {
		g.observer.CodeAttempts(attempts)
	}
}

func (g *CodeGenerator) candidate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, 0, kernel.OrderCodeLength)
	for range 3 {
		b = append(b, codeLetters[g.rnd.IntN(len(codeLetters))])
	}
	for range 3 {
		b = append(b, codeDigits[g.rnd.IntN(len(codeDigits))])
	}
	return string(b)
}
