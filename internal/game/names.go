package game

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// ErrNoNames is returned when a name pool runs dry
var ErrNoNames = errors.New("name pool exhausted")

// DefaultNames seeds the computer players' names
var DefaultNames = []string{"Obi", "Toby", "Adanna", "Nneoma", "Kamsi"}

// NamePool hands out unique computer player names.
type NamePool struct {
	names []string
	rng   *rand.Rand
}

// NewNamePool creates a pool from names. A nil rng hands names out in order.
func NewNamePool(names []string, rng *rand.Rand) *NamePool {
	pool := &NamePool{rng: rng}
	for _, n := range names {
		if !slices.Contains(pool.names, n) {
			pool.names = append(pool.names, n)
		}
	}
	return pool
}

// Reserve removes a name from the pool, e.g. one taken by the human
func (p *NamePool) Reserve(name string) {
	p.names = slices.DeleteFunc(p.names, func(n string) bool { return n == name })
}

// Take removes and returns a name from the pool
func (p *NamePool) Take() (string, error) {
	if len(p.names) == 0 {
		return "", ErrNoNames
	}
	i := 0
	if p.rng != nil {
		i = p.rng.IntN(len(p.names))
	}
	name := p.names[i]
	p.names = slices.Delete(p.names, i, i+1)
	return name, nil
}

// Len returns the number of names left
func (p *NamePool) Len() int { return len(p.names) }
