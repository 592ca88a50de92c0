package flags

import (
	"errors"
	"flag"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli"
)

// TinybarsInHbar is the number of tinybars in one hbar.
const TinybarsInHbar = 100_000_000

const hbarDecimals = 8

// Hbar is an amount of native coins given in hbars and stored in tinybars.
type Hbar struct {
	Tinybars int64
}

// HbarFlag is a flag with type Hbar.
type HbarFlag struct {
	Name  string
	Usage string
	Value Hbar
}

var (
	_ flag.Value = (*Hbar)(nil)
	_ cli.Flag   = HbarFlag{}
)

// FormatHbar returns the tinybar amount as a decimal hbar string.
func FormatHbar(tinybars int64) string {
	return decimal.New(tinybars, -hbarDecimals).String()
}

// ParseHbar parses a decimal hbar amount into tinybars.
func ParseHbar(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	tb := d.Shift(hbarDecimals)
	if !tb.IsInteger() {
		return 0, fmt.Errorf("too many decimal places in %s", s)
	}
	if !tb.BigInt().IsInt64() {
		return 0, errors.New("amount is out of range")
	}
	return tb.IntPart(), nil
}

// String implements the fmt.Stringer interface.
func (h Hbar) String() string {
	return FormatHbar(h.Tinybars)
}

// Set implements the flag.Value interface.
func (h *Hbar) Set(s string) error {
	tb, err := ParseHbar(s)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	h.Tinybars = tb
	return nil
}

// String returns a readable representation of this value
// (for usage defaults).
func (f HbarFlag) String() string {
	return flagString(f.Name, f.Usage)
}

// GetName returns the name of the flag.
func (f HbarFlag) GetName() string {
	return f.Name
}

// Apply populates the flag given the flag set and environment.
// Ignores errors.
func (f HbarFlag) Apply(set *flag.FlagSet) {
	eachName(f.Name, func(name string) {
		set.Var(&f.Value, name, f.Usage)
	})
}

// TinybarsFromContext returns the parsed amount in tinybars provided flag
// name.
func TinybarsFromContext(ctx *cli.Context, name string) int64 {
	return ctx.Generic(name).(*Hbar).Tinybars
}
