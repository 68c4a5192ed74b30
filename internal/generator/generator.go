package generator

import "errors"

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidCount    = errors.New("invalid count")
	ErrInvalidAlphabet = errors.New("invalid alphabet")
	ErrUnknownSource   = errors.New("unknown random source")
)

// Generator defines the interface for ID generation, validation, and parsing.
type Generator interface {
	Generate() (string, error)
	GenerateBatch(count int) ([]string, error)
	Validate(id string) (bool, string) // (valid, reason)
	Parse(id string) (*ParseResult, error)
}

// ParseResult holds the parsed fields from an ID.
type ParseResult struct {
	Digits   string `json:"digits"`
	Letters  string `json:"letters"`
	IDLength int32  `json:"id_length"`
}
