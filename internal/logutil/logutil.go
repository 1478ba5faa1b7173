// Package logutil configures the root logger for the command line tools.
package logutil

import (
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Setup installs a terminal handler on the root logger that drops records
// below verbosity. Verbosity is a level name ("crit", "error", "warn",
// "info", "debug", "trace") or a number from 0 to 5. When w is nil the
// handler writes to stderr, with colors if stderr is a terminal.
func Setup(verbosity string, w io.Writer) error {
	lvl, err := ParseLevel(verbosity)
	if err != nil {
		return err
	}

	usecolor := false
	if w == nil {
		fd := os.Stderr.Fd()
		usecolor = (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
		w = os.Stderr
		if usecolor {
			w = colorable.NewColorableStderr()
		}
	}

	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(w, log.TerminalFormat(usecolor))))
	return nil
}

// ParseLevel accepts a level name or its numeric value.
func ParseLevel(verbosity string) (log.Lvl, error) {
	v := strings.ToLower(strings.TrimSpace(verbosity))
	if v == "" {
		return log.LvlInfo, nil
	}
	if len(v) == 1 && v[0] >= '0' && v[0] <= '5' {
		return log.Lvl(v[0] - '0'), nil
	}
	lvl, err := log.LvlFromString(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid verbosity %q", verbosity)
	}
	return lvl, nil
}

// Discard silences the root logger.
func Discard() {
	log.Root().SetHandler(log.DiscardHandler())
}
