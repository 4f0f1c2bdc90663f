package core

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out entity ids. Implementations must never repeat an id within a process.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.New().String() }

// SequenceGenerator yields Prefix1, Prefix2, ...
type SequenceGenerator struct {
	Prefix string
	n      uint64
}

func (g *SequenceGenerator) NewID() string {
	return g.Prefix + strconv.FormatUint(atomic.AddUint64(&g.n, 1), 10)
}

// NewIDGenerator returns the generator for a configured ids.scheme.
func NewIDGenerator(scheme string) IDGenerator {
	if scheme == IDSchemeSequence {
		return &SequenceGenerator{}
	}
	return UUIDGenerator{}
}
