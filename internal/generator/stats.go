package generator

import (
	"fmt"
	"math"
	"strings"
)

// PositionStats describes how often each symbol showed up at one position.
type PositionStats struct {
	Position  int     `json:"position"`
	Alphabet  string  `json:"alphabet"`
	Counts    []int   `json:"counts"`
	Total     int     `json:"total"`
	ChiSquare float64 `json:"chi_square"`

	// DegreesOfFreedom is len(Alphabet) - 1.
	DegreesOfFreedom int `json:"degrees_of_freedom"`
}

// Tally accumulates per-position symbol counts over many identifiers.
// It is not safe for concurrent use.
type Tally struct {
	counts [IDLength - 1][]int
	total  int
}

// NewTally creates an empty Tally.
func NewTally() *Tally {
	t := &Tally{}
	for pos := range t.counts {
		t.counts[pos] = make([]int, len(positionAlphabet(pos)))
	}
	return t
}

// Add records id. Invalid ids are rejected and leave the tally unchanged.
func (t *Tally) Add(id string) error {
	if valid, reason := validate(id); !valid {
		return fmt.Errorf("%w: %s", ErrInvalidID, reason)
	}
	for pos := range t.counts {
		c := id[symbolIndex(pos)]
		t.counts[pos][strings.IndexByte(positionAlphabet(pos), c)]++
	}
	t.total++
	return nil
}

// Total returns the number of identifiers recorded.
func (t *Tally) Total() int {
	return t.total
}

// Stats returns one entry per symbol position, digits first.
func (t *Tally) Stats() []PositionStats {
	out := make([]PositionStats, 0, len(t.counts))
	for pos, counts := range t.counts {
		alphabet := positionAlphabet(pos)
		out = append(out, PositionStats{
			Position:         symbolIndex(pos),
			Alphabet:         alphabet,
			Counts:           append([]int(nil), counts...),
			Total:            t.total,
			ChiSquare:        ChiSquare(counts),
			DegreesOfFreedom: len(alphabet) - 1,
		})
	}
	return out
}

// Uniform reports whether every position's chi-square statistic stays below
// df + k*sqrt(2*df), i.e. k standard deviations above the chi-square mean.
func (t *Tally) Uniform(k float64) bool {
	if t.total == 0 {
		return false
	}
	for _, s := range t.Stats() {
		df := float64(s.DegreesOfFreedom)
		if s.ChiSquare > df+k*math.Sqrt(2*df) {
			return false
		}
	}
	return true
}

// ChiSquare computes Pearson's statistic of counts against a uniform
// expectation. It returns 0 for empty input.
func ChiSquare(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	expected := float64(total) / float64(len(counts))
	var stat float64
	for _, c := range counts {
		d := float64(c) - expected
		stat += d * d / expected
	}
	return stat
}

// symbolIndex maps a symbol position (0..6) to its byte offset in the id,
// skipping the separator.
func symbolIndex(pos int) int {
	if pos < DigitCount {
		return pos
	}
	return pos + 1
}

func positionAlphabet(pos int) string {
	if pos < DigitCount {
		return DigitAlphabet
	}
	return LetterAlphabet
}
