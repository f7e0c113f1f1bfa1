package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid engine config")

const (
	// DefaultDepth is the fallback search horizon in plies.
	DefaultDepth = 2
	MaxDepth     = 64
)

type Config struct {
	// Depth is the alpha-beta horizon in plies, used when no mate in two exists.
	Depth int
	Table TableMode
	// NodeLimit caps visited search nodes; 0 means no cap.
	NodeLimit uint64
	// MoveTime caps wall-clock search time; 0 means no cap.
	MoveTime time.Duration
	// MaxEntries caps the number of table keys; 0 means no cap.
	MaxEntries int
	// LenientMates counts a stalemating first move as a mate in two.
	LenientMates bool
	Logger       zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Depth:  DefaultDepth,
		Table:  TaggedTable,
		Logger: zerolog.Nop(),
	}
}

func (c Config) Validate() error {
	if c.Depth < 1 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d outside [1, %d]", ErrInvalidConfig, c.Depth, MaxDepth)
	}
	if c.Table != TaggedTable && c.Table != LegacyTable {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Table)
	}
	if c.MoveTime < 0 {
		return fmt.Errorf("%w: negative move time %v", ErrInvalidConfig, c.MoveTime)
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("%w: negative table cap %d", ErrInvalidConfig, c.MaxEntries)
	}
	return nil
}
