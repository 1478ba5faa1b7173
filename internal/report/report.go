// Package report renders attack results and convergent lists as text tables.
package report

import (
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/rsa-wiener/pkg/contfrac"
	"github.com/mahdiidarabi/rsa-wiener/pkg/wiener"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// Result writes the fields of a successful recovery, one per row.
func Result(w io.Writer, key *wiener.PublicKey, result *wiener.RecoveryResult) {
	table := newTable(w, "Field", "Value")
	if key.Name != "" {
		table.Append([]string{"key", key.Name})
	}
	table.AppendBulk([][]string{
		{"N", key.N.String()},
		{"e", key.E.String()},
		{"p", result.P.String()},
		{"q", result.Q.String()},
		{"phi", result.Phi.String()},
		{"d", result.D.String()},
		{"k", result.K.String()},
		{"convergent", strconv.Itoa(result.ConvergentIndex)},
		{"strategy", result.Strategy},
	})
	table.Render()
}

// Outcomes writes a summary row per attacked key and returns how many were
// recovered.
func Outcomes(w io.Writer, outcomes []wiener.KeyOutcome) int {
	table := newTable(w, "Key", "Bits", "Status", "d", "Convergent")

	recovered := 0
	for _, o := range outcomes {
		row := []string{o.Key.Name, strconv.Itoa(o.Key.N.BitLen())}
		switch {
		case o.Err == nil:
			recovered++
			row = append(row, "recovered", o.Result.D.String(), strconv.Itoa(o.Result.ConvergentIndex))
		case errors.Is(o.Err, wiener.ErrAttackFailed):
			row = append(row, "not vulnerable", "-", "-")
		default:
			row = append(row, "error: "+o.Err.Error(), "-", "-")
		}
		table.Append(row)
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d/%d recovered", recovered, len(outcomes)), "", ""})
	table.Render()
	return recovered
}

// Convergents writes each convergent with its index, decimal value and
// distance from target.
func Convergents(w io.Writer, convs []contfrac.Convergent, target *big.Rat) {
	table := newTable(w, "#", "Numerator", "Denominator", "Value", "Error")
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, c := range convs {
		r := c.Rat()
		diff := new(big.Rat).Sub(target, r)
		errf, _ := diff.Abs(diff).Float64()
		table.Append([]string{
			strconv.Itoa(i),
			c.Num.String(),
			c.Den.String(),
			r.FloatString(12),
			strconv.FormatFloat(errf, 'e', 3, 64),
		})
	}
	table.Render()
}
