// Command wiener runs Wiener's small private exponent attack against RSA
// public keys, and exposes the continued fraction and primality helpers it
// is built on.
package main

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/mahdiidarabi/rsa-wiener/internal/logutil"
	"github.com/mahdiidarabi/rsa-wiener/internal/report"
	"github.com/mahdiidarabi/rsa-wiener/pkg/contfrac"
	"github.com/mahdiidarabi/rsa-wiener/pkg/numtheory"
	"github.com/mahdiidarabi/rsa-wiener/pkg/wiener"
)

var (
	app = cli.NewApp()

	modulusFlag = cli.StringFlag{
		Name:  "n",
		Usage: "RSA modulus (decimal or 0x-prefixed hex)",
	}
	exponentFlag = cli.StringFlag{
		Name:  "e",
		Usage: "RSA public exponent (decimal or 0x-prefixed hex)",
	}
	keysFlag = cli.StringFlag{
		Name:  "keys",
		Usage: "File with public keys to attack",
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "Key file format (json, csv or pem)",
		Value: "json",
	}
	maxConvergentsFlag = cli.IntFlag{
		Name:  "max-convergents",
		Usage: "Stop after this many convergents (0 = all)",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "Keys attacked in parallel with --keys (0 = auto-detect based on CPU cores)",
		Value: 1,
	}

	numFlag = cli.StringFlag{
		Name:  "num",
		Usage: "Numerator of the rational to expand",
	}
	denFlag = cli.StringFlag{
		Name:  "den",
		Usage: "Denominator of the rational to expand",
	}
	floatFlag = cli.Float64Flag{
		Name:  "float",
		Usage: "Floating point value to expand",
	}
	limitFlag = cli.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of convergents to print (0 = all, rationals only)",
		Value: 20,
	}

	bitsFlag = cli.UintFlag{
		Name:  "bits",
		Usage: "Search starts uniformly in [2^bits, 2^(bits+1))",
		Value: 512,
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "Random seed (0 = seed from the clock)",
	}
	roundsFlag = cli.IntFlag{
		Name:  "rounds",
		Usage: "Miller-Rabin rounds (overrides the config file)",
	}

	attackCommand = cli.Command{
		Action:    attack,
		Name:      "attack",
		Usage:     "Recover the private exponent of one or more RSA public keys",
		ArgsUsage: "",
		Flags:     []cli.Flag{modulusFlag, exponentFlag, keysFlag, formatFlag, maxConvergentsFlag, workersFlag},
		Description: `
Attack a single key given with --n and --e, or every key in the file given
with --keys. A key is recovered only if its private exponent is below
N^(1/4)/3; other keys are reported as not vulnerable.`,
	}
	convergentsCommand = cli.Command{
		Action:    convergents,
		Name:      "convergents",
		Usage:     "Print the continued fraction convergents of a number",
		ArgsUsage: "",
		Flags:     []cli.Flag{numFlag, denFlag, floatFlag, limitFlag},
	}
	primeCommand = cli.Command{
		Action:    prime,
		Name:      "prime",
		Usage:     "Generate a probable prime",
		ArgsUsage: "",
		Flags:     []cli.Flag{bitsFlag, seedFlag, roundsFlag},
	}
	isPrimeCommand = cli.Command{
		Action:    isPrime,
		Name:      "isprime",
		Usage:     "Run the Miller-Rabin test on a number",
		ArgsUsage: "<number>",
		Flags:     []cli.Flag{seedFlag, roundsFlag},
	}
)

func init() {
	app.Name = "wiener"
	app.Usage = "Wiener's attack on RSA keys with small private exponents"
	app.HideVersion = true
	app.Commands = []cli.Command{
		attackCommand,
		convergentsCommand,
		primeCommand,
		isPrimeCommand,
		dumpConfigCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = []cli.Flag{configFileFlag, verbosityFlag}

	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		return logutil.Setup(cfg.Log.Verbosity, nil)
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func attack(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet(maxConvergentsFlag.Name) {
		cfg.Search.MaxConvergents = ctx.Int(maxConvergentsFlag.Name)
	}

	strategy := wiener.NewContinuedFractionStrategy().WithSearchConfig(cfg.Search)
	client := wiener.NewClient().WithStrategy(strategy)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if file := ctx.String(keysFlag.Name); file != "" {
		parser, err := parserFor(ctx.String(formatFlag.Name))
		if err != nil {
			return err
		}
		fmt.Printf("Loading keys from %s...\n", file)

		client = client.WithParser(parser).WithWorkers(ctx.Int(workersFlag.Name))
		outcomes, err := client.RecoverKeys(runCtx, file)
		if err != nil {
			return err
		}
		if report.Outcomes(os.Stdout, outcomes) == 0 {
			return errors.New("no key recovered")
		}
		return nil
	}

	if !ctx.IsSet(modulusFlag.Name) || !ctx.IsSet(exponentFlag.Name) {
		cli.ShowCommandHelp(ctx, ctx.Command.Name)
		return errors.New("must specify --keys, or both --n and --e")
	}
	key, err := keyFromFlags(ctx.String(modulusFlag.Name), ctx.String(exponentFlag.Name))
	if err != nil {
		return err
	}

	result, err := client.RecoverKeyFromPublicKey(runCtx, key)
	if errors.Is(err, wiener.ErrAttackFailed) {
		fmt.Println("[-] Key is not vulnerable to Wiener's attack")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Println("[+] Successfully recovered private key!")
	report.Result(os.Stdout, key, result)
	return nil
}

func parserFor(format string) (wiener.KeyParser, error) {
	switch strings.ToLower(format) {
	case "json":
		return &wiener.JSONParser{}, nil
	case "csv":
		return &wiener.CSVParser{}, nil
	case "pem":
		return &wiener.PEMParser{}, nil
	default:
		return nil, errors.Errorf("unknown key format %q", format)
	}
}

func keyFromFlags(n, e string) (*wiener.PublicKey, error) {
	nInt, err := parseInteger(n)
	if err != nil {
		return nil, errors.Wrap(err, "--n")
	}
	eInt, err := parseInteger(e)
	if err != nil {
		return nil, errors.Wrap(err, "--e")
	}
	key := &wiener.PublicKey{Name: "cli", N: nInt, E: eInt}
	return key, key.Validate()
}

// parseInteger accepts decimal or 0x-prefixed hex.
func parseInteger(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	z, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, errors.Errorf("invalid integer %q", s)
	}
	return z, nil
}

func convergents(ctx *cli.Context) error {
	limit := ctx.Int(limitFlag.Name)

	var (
		convs  []contfrac.Convergent
		target *big.Rat
	)
	switch {
	case ctx.IsSet(floatFlag.Name):
		x := ctx.Float64(floatFlag.Name)
		target = new(big.Rat)
		if target.SetFloat64(x) == nil {
			return errors.Errorf("cannot expand %v", x)
		}
		// Float expansions of irrationals never run out.
		if limit <= 0 {
			return errors.New("--limit must be positive with --float")
		}
		convs = contfrac.Float(x).Take(limit)

	case ctx.IsSet(numFlag.Name) && ctx.IsSet(denFlag.Name):
		num, err := parseInteger(ctx.String(numFlag.Name))
		if err != nil {
			return err
		}
		den, err := parseInteger(ctx.String(denFlag.Name))
		if err != nil {
			return err
		}
		if den.Sign() == 0 {
			return errors.New("denominator must not be zero")
		}
		target = new(big.Rat).SetFrac(num, den)
		convs = take(contfrac.RationalOf(num, den), limit)

	default:
		cli.ShowCommandHelp(ctx, ctx.Command.Name)
		return errors.New("must specify --float, or both --num and --den")
	}

	report.Convergents(os.Stdout, convs, target)
	return nil
}

func take[T any](exp *contfrac.Expansion[T], limit int) []contfrac.Convergent {
	if limit <= 0 {
		return exp.All()
	}
	return exp.Take(limit)
}

func primalityFlags(ctx *cli.Context) (numtheory.PrimalityConfig, *rand.Rand, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return numtheory.PrimalityConfig{}, nil, err
	}
	if ctx.IsSet(roundsFlag.Name) {
		cfg.Primality.Rounds = ctx.Int(roundsFlag.Name)
		if err := cfg.Primality.Validate(); err != nil {
			return numtheory.PrimalityConfig{}, nil, errors.Wrap(err, "--rounds")
		}
	}

	var rnd *rand.Rand
	if seed := ctx.Int64(seedFlag.Name); seed != 0 {
		rnd = rand.New(rand.NewSource(seed))
	}
	return cfg.Primality, rnd, nil
}

func prime(ctx *cli.Context) error {
	pcfg, rnd, err := primalityFlags(ctx)
	if err != nil {
		return err
	}

	p, err := pcfg.GeneratePrime(rnd, ctx.Uint(bitsFlag.Name))
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", p)
	fmt.Fprintf(os.Stderr, "(%d bits)\n", p.BitLen())
	return nil
}

func isPrime(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		cli.ShowCommandHelp(ctx, ctx.Command.Name)
		return errors.New("expected exactly one number")
	}
	n, err := parseInteger(ctx.Args().First())
	if err != nil {
		return err
	}

	pcfg, rnd, err := primalityFlags(ctx)
	if err != nil {
		return err
	}

	ok, err := pcfg.IsProbablePrime(rnd, n)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("%s is probably prime (%d rounds)\n", n, pcfg.Rounds)
	} else {
		fmt.Printf("%s is composite\n", n)
	}
	return nil
}
