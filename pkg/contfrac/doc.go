// Package contfrac expands numbers into continued fractions and yields their
// convergents one at a time.
//
// The expansion is written once against the Domain interface and instantiated
// for two numeric domains:
//
//	// Exact rationals: the sequence is finite and ends on the input itself.
//	exp := contfrac.RationalOf(big.NewInt(4090249588), big.NewInt(2899386061))
//	for c, ok := exp.Next(); ok; c, ok = exp.Next() {
//	    fmt.Println(c) // 1/1, 3/2, 7/5, ...
//	}
//
//	// float64: unbounded in practice, so pull only what you need.
//	pi := contfrac.Float(math.Pi).Take(5) // 3/1 22/7 333/106 355/113 103993/33102
//
// Successive convergents p_n/q_n follow the recurrence
//
//	p_{-1} = 1, q_{-1} = 0
//	p_0 = a_0,  q_0 = 1
//	p_n = a_n*p_{n-1} + p_{n-2},  q_n = a_n*q_{n-1} + q_{n-2}
//
// where a_n is the n-th partial quotient.
package contfrac
