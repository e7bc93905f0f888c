// Package ordernum genera números de pedido de 8 dígitos.
package ordernum

import (
	"math/rand/v2"
	"strconv"
	"sync"
)

const (
	Min = 10000000
	Max = 99999999
)

// Source fuente de aleatoriedad inyectable. IntN devuelve un valor en [0, n).
type Source interface {
	IntN(n int) int
}

// Generator produce números en [Min, Max] a partir de una Source.
type Generator struct {
	mu  sync.Mutex
	src Source
}

// NewGenerator crea un generador. Si src es nil usa math/rand/v2.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// Next devuelve el siguiente número como cadena decimal de 8 dígitos.
func (g *Generator) Next() string {
	g.mu.Lock()
	n := g.src.IntN(Max - Min + 1)
	g.mu.Unlock()
	return strconv.Itoa(Min + n)
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Sequence fuente determinista: devuelve los valores en orden y luego repite el último.
// Los valores se acotan a [0, n).
type Sequence struct {
	mu     sync.Mutex
	values []int
	pos    int
}

func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos]
	if s.pos < len(s.values)-1 {
		s.pos++
	}
	if v < 0 {
		v = -v
	}
	return v % n
}
