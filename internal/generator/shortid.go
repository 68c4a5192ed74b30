package generator

import (
	"fmt"
)

const (
	DigitAlphabet  = "0123456789"
	LetterAlphabet = "abcdefghijklmnopqrstuvwxyz"

	DigitCount  = 3
	LetterCount = 4
	Separator   = '-'

	// IDLength is DigitCount + separator + LetterCount.
	IDLength = DigitCount + 1 + LetterCount

	DefaultMaxBatch = 1000
)

// ShortIDGenerator generates identifiers of the form DDD-llll, e.g. "482-qzkt".
// Each position is drawn independently; nothing is remembered between calls,
// so repeats are possible.
type ShortIDGenerator struct {
	source   Source
	maxBatch int
}

// NewShortIDGenerator creates a new ShortIDGenerator.
// maxBatch must be at least 1.
func NewShortIDGenerator(source Source, maxBatch int) (*ShortIDGenerator, error) {
	if source == nil {
		return nil, fmt.Errorf("short id source must not be nil")
	}
	if maxBatch < 1 {
		return nil, fmt.Errorf("%w: max batch must be at least 1, got %d", ErrInvalidCount, maxBatch)
	}
	return &ShortIDGenerator{
		source:   source,
		maxBatch: maxBatch,
	}, nil
}

// MaxBatch returns the largest count GenerateBatch accepts.
func (g *ShortIDGenerator) MaxBatch() int {
	return g.maxBatch
}

func (g *ShortIDGenerator) Generate() (string, error) {
	digits, err := g.source.Draw(DigitAlphabet, DigitCount)
	if err != nil {
		return "", fmt.Errorf("failed to draw digits: %w", err)
	}
	letters, err := g.source.Draw(LetterAlphabet, LetterCount)
	if err != nil {
		return "", fmt.Errorf("failed to draw letters: %w", err)
	}
	return digits + string(Separator) + letters, nil
}

func (g *ShortIDGenerator) GenerateBatch(count int) ([]string, error) {
	if count < 1 || count > g.maxBatch {
		return nil, fmt.Errorf("%w: count must be between 1 and %d, got %d", ErrInvalidCount, g.maxBatch, count)
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := g.Generate()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *ShortIDGenerator) Validate(id string) (bool, string) {
	return validate(id)
}

func (g *ShortIDGenerator) Parse(id string) (*ParseResult, error) {
	valid, reason := g.Validate(id)
	if !valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, reason)
	}

	return &ParseResult{
		Digits:   id[:DigitCount],
		Letters:  id[DigitCount+1:],
		IDLength: int32(len(id)),
	}, nil
}

// validate reports the first violation of the DDD-llll shape.
func validate(id string) (bool, string) {
	if len(id) != IDLength {
		return false, fmt.Sprintf("expected length %d, got %d", IDLength, len(id))
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case i < DigitCount:
			if c < '0' || c > '9' {
				return false, fmt.Sprintf("character %q at position %d is not a digit", c, i)
			}
		case i == DigitCount:
			if c != Separator {
				return false, fmt.Sprintf("expected %q at position %d, got %q", Separator, i, c)
			}
		default:
			if c < 'a' || c > 'z' {
				return false, fmt.Sprintf("character %q at position %d is not a lowercase letter", c, i)
			}
		}
	}
	return true, ""
}
