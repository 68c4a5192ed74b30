package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	SourceNanoID = "nanoid"
	SourceMath   = "math"
)

// Source draws n symbols from alphabet, independently and uniformly with
// replacement.
type Source interface {
	Draw(alphabet string, n int) (string, error)
}

// NewSource returns the source registered under name. seed is only used by
// the math source; 0 means seed from the runtime.
func NewSource(name string, seed uint64) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SourceNanoID, "":
		return NewNanoIDSource(), nil
	case SourceMath:
		return NewMathSource(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}

func checkDraw(alphabet string, n int) error {
	if alphabet == "" {
		return ErrInvalidAlphabet
	}
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	return nil
}

// NanoIDSource draws through go-nanoid, which masks and rejects bytes from
// crypto/rand so every symbol is equally likely.
type NanoIDSource struct{}

// NewNanoIDSource creates a new NanoIDSource.
func NewNanoIDSource() *NanoIDSource {
	return &NanoIDSource{}
}

func (s *NanoIDSource) Draw(alphabet string, n int) (string, error) {
	if err := checkDraw(alphabet, n); err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	// A single symbol needs no randomness.
	if len(alphabet) == 1 {
		return strings.Repeat(alphabet, n), nil
	}
	out, err := gonanoid.Generate(alphabet, n)
	if err != nil {
		return "", fmt.Errorf("failed to draw from nanoid: %w", err)
	}
	return out, nil
}

// MathSource draws from a PCG generator. alphabet must be ASCII.
type MathSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMathSource creates a MathSource. A zero seed picks a random one.
func NewMathSource(seed uint64) *MathSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &MathSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *MathSource) Draw(alphabet string, n int) (string, error) {
	if err := checkDraw(alphabet, n); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[s.rnd.IntN(len(alphabet))]
	}
	return string(buf), nil
}
