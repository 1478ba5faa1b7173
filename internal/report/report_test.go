package report

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/rsa-wiener/pkg/contfrac"
	"github.com/mahdiidarabi/rsa-wiener/pkg/wiener"
)

func toyKey() *wiener.PublicKey {
	return &wiener.PublicKey{Name: "toy", N: big.NewInt(659017), E: big.NewInt(469543)}
}

func TestResult(t *testing.T) {
	key := toyKey()
	result, err := wiener.Attack(key.N, key.E)
	require.NoError(t, err)

	var buf bytes.Buffer
	Result(&buf, key, result)

	out := buf.String()
	for _, want := range []string{"toy", "659017", "997", "661", "657360", "ContinuedFraction"} {
		assert.Contains(t, out, want)
	}
	assert.Regexp(t, `\|\s*d\s*\|\s*7\s*\|`, out)
}

func TestOutcomes(t *testing.T) {
	key := toyKey()
	result, err := wiener.Attack(key.N, key.E)
	require.NoError(t, err)

	outcomes := []wiener.KeyOutcome{
		{Key: key, Result: result},
		{Key: &wiener.PublicKey{Name: "hard", N: big.NewInt(659017), E: big.NewInt(328681)},
			Err: errors.Wrap(wiener.ErrAttackFailed, "10 convergents examined")},
		{Key: &wiener.PublicKey{Name: "broken", N: big.NewInt(15), E: big.NewInt(3)},
			Err: errors.New("parse failure")},
	}

	var buf bytes.Buffer
	recovered := Outcomes(&buf, outcomes)

	assert.Equal(t, 1, recovered)
	out := buf.String()
	assert.Contains(t, out, "recovered")
	assert.Contains(t, out, "not vulnerable")
	assert.Contains(t, out, "error: parse failure")
	assert.Contains(t, out, "1/3 recovered")
}

func TestConvergents(t *testing.T) {
	convs := contfrac.Rational(big.NewRat(355, 113)).All()
	require.Len(t, convs, 3)

	var buf bytes.Buffer
	Convergents(&buf, convs, big.NewRat(355, 113))

	out := buf.String()
	assert.Contains(t, out, "Numerator")
	assert.Contains(t, out, "3.000000000000")
	assert.Contains(t, out, "3.142857142857")
	assert.Contains(t, out, "3.141592920354")
	assert.Contains(t, out, "0.000e+00")
}
