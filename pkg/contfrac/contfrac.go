package contfrac

import (
	"fmt"
	"math/big"
)

// Convergent is one rational approximation num/den of an expanded value.
// The two integers are coprime and owned by the caller.
type Convergent struct {
	Num *big.Int
	Den *big.Int
}

// Rat returns the convergent as a rational number.
func (c Convergent) Rat() *big.Rat {
	return new(big.Rat).SetFrac(c.Num, c.Den)
}

// Float64 returns the nearest float64 to num/den.
func (c Convergent) Float64() float64 {
	f, _ := c.Rat().Float64()
	return f
}

func (c Convergent) String() string {
	return fmt.Sprintf("%s/%s", c.Num, c.Den)
}

// Domain is the set of operations the expansion needs from a numeric type.
// Implementations must not mutate their arguments.
type Domain[T any] interface {
	// Floor returns the partial quotient extracted from x.
	Floor(x T) *big.Int
	// Reciprocal returns 1/x. It is only called when IsZero(x) is false.
	Reciprocal(x T) T
	// Embed converts an integer into the domain.
	Embed(n *big.Int) T
	// Sub returns x - y.
	Sub(x, y T) T
	// IsZero reports whether the expansion has nothing left to extract.
	IsZero(x T) bool
}

// Expansion is a lazy, pull-based sequence of convergents. It is not safe for
// concurrent use and cannot be rewound; build a new one to start over.
type Expansion[T any] struct {
	dom Domain[T]
	x   T

	prevNum, prevDen *big.Int
	num, den         *big.Int

	started bool
	done    bool
}

// New starts the continued fraction expansion of x over dom.
func New[T any](dom Domain[T], x T) *Expansion[T] {
	return &Expansion[T]{
		dom:     dom,
		x:       x,
		prevNum: big.NewInt(1),
		prevDen: big.NewInt(0),
	}
}

// Next computes the next convergent. It returns false once the expansion is
// exhausted, and keeps returning false after that.
func (e *Expansion[T]) Next() (Convergent, bool) {
	if e.done {
		return Convergent{}, false
	}

	if !e.started {
		e.started = true
		a := e.dom.Floor(e.x)
		if a == nil {
			e.done = true
			return Convergent{}, false
		}
		e.x = e.dom.Sub(e.x, e.dom.Embed(a))
		e.num = a
		e.den = big.NewInt(1)
		return e.current(), true
	}

	if e.dom.IsZero(e.x) {
		e.done = true
		return Convergent{}, false
	}

	e.x = e.dom.Reciprocal(e.x)
	a := e.dom.Floor(e.x)
	if a == nil {
		e.done = true
		return Convergent{}, false
	}
	e.x = e.dom.Sub(e.x, e.dom.Embed(a))

	num := new(big.Int).Mul(a, e.num)
	num.Add(num, e.prevNum)
	den := new(big.Int).Mul(a, e.den)
	den.Add(den, e.prevDen)

	e.prevNum, e.num = e.num, num
	e.prevDen, e.den = e.den, den

	return e.current(), true
}

// Take returns up to n further convergents.
func (e *Expansion[T]) Take(n int) []Convergent {
	out := make([]Convergent, 0, n)
	for len(out) < n {
		c, ok := e.Next()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}

// All drains the expansion. Only use it on values known to have a finite
// expansion, such as rationals.
func (e *Expansion[T]) All() []Convergent {
	var out []Convergent
	for c, ok := e.Next(); ok; c, ok = e.Next() {
		out = append(out, c)
	}
	return out
}

func (e *Expansion[T]) current() Convergent {
	return Convergent{
		Num: new(big.Int).Set(e.num),
		Den: new(big.Int).Set(e.den),
	}
}
