// Package wiener recovers RSA private exponents that are too small, using
// Wiener's continued fraction attack.
//
// If d < N^(1/4)/3, then k/d (with ed = 1 + k*phi(N)) appears among the
// convergents of e/N. For each convergent the attack guesses phi(N), derives
// p+q from it, and solves the quadratic x^2 - (p+q)x + N for the factors. The
// first guess that factors N exactly yields p, q and d.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/rsa-wiener/pkg/wiener"
//
//	result, err := wiener.Attack(n, e)
//	if errors.Is(err, wiener.ErrAttackFailed) {
//	    // d was not small enough
//	}
//	fmt.Printf("d = %s, p = %s, q = %s\n", result.D, result.P, result.Q)
//
// # Keys from files
//
// A Client reads public keys through a KeyParser (JSON, CSV or PEM) and runs a
// Strategy against each one:
//
//	client := wiener.NewClient().WithParser(&wiener.PEMParser{})
//	result, err := client.RecoverKey(ctx, "key.pem")
//
// The search can be bounded and made chattier:
//
//	strategy := wiener.NewContinuedFractionStrategy().
//	    WithSearchConfig(wiener.SearchConfig{
//	        MaxConvergents:   500,
//	        ProgressInterval: 50,
//	    })
//	client := wiener.NewClient().WithStrategy(strategy)
//
// Failure to find d is reported as ErrAttackFailed. It means the key does not
// satisfy the small exponent bound, not that anything went wrong.
package wiener
