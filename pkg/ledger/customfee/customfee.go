/*
Package customfee describes per-token custom fee schedules and the fees
assessed from them.
*/
package customfee

import (
	"errors"
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
)

// ErrInvalidFee is returned for fees that can't be charged.
var ErrInvalidFee = errors.New("invalid custom fee")

// FixedFee collects a fixed number of units, either in native coin or in
// the denominating token.
type FixedFee struct {
	Units int64 `json:"units" yaml:"Units"`
	// Denomination is ledger.NoToken for native coin fees.
	Denomination ledger.TokenID `json:"denomination" yaml:"Denomination,omitempty"`
}

// FractionalFee collects a fraction of the transferred units in the
// transferred token itself.
type FractionalFee struct {
	Numerator   int64 `json:"numerator" yaml:"Numerator"`
	Denominator int64 `json:"denominator" yaml:"Denominator"`
	Minimum     int64 `json:"minimum" yaml:"Minimum"`
	// Maximum is not enforced if not positive.
	Maximum int64 `json:"maximum,omitempty" yaml:"Maximum,omitempty"`
}

// Fee is a single custom fee, exactly one of Fixed or Fractional is set.
type Fee struct {
	Collector  ledger.AccountID `json:"collector" yaml:"Collector"`
	Fixed      *FixedFee        `json:"fixed,omitempty" yaml:"Fixed,omitempty"`
	Fractional *FractionalFee   `json:"fractional,omitempty" yaml:"Fractional,omitempty"`
}

// AssessedFee is a custom fee actually charged by a transfer, it's a part
// of the transaction record.
type AssessedFee struct {
	Collector ledger.AccountID `json:"collector"`
	// Token is ledger.NoToken for native coin fees.
	Token ledger.TokenID `json:"token"`
	Units int64          `json:"units"`
}

// Schedules looks up the custom fee schedule of a token. Tokens without
// custom fees have an empty schedule.
type Schedules interface {
	Lookup(token ledger.TokenID) ([]Fee, error)
}

// FixedHbarFee returns a fixed fee collected in native coin.
func FixedHbarFee(units int64, collector ledger.AccountID) Fee {
	return Fee{Collector: collector, Fixed: &FixedFee{Units: units}}
}

// FixedTokenFee returns a fixed fee collected in the denominating token.
func FixedTokenFee(units int64, denom ledger.TokenID, collector ledger.AccountID) Fee {
	return Fee{Collector: collector, Fixed: &FixedFee{Units: units, Denomination: denom}}
}

// FractionalTokenFee returns a fractional fee.
func FractionalTokenFee(numerator, denominator, minimum, maximum int64, collector ledger.AccountID) Fee {
	return Fee{Collector: collector, Fractional: &FractionalFee{
		Numerator:   numerator,
		Denominator: denominator,
		Minimum:     minimum,
		Maximum:     maximum,
	}}
}

// Equal reports whether two fees are the same.
func (f Fee) Equal(o Fee) bool {
	if f.Collector != o.Collector {
		return false
	}
	if (f.Fixed == nil) != (o.Fixed == nil) || (f.Fractional == nil) != (o.Fractional == nil) {
		return false
	}
	return (f.Fixed == nil || *f.Fixed == *o.Fixed) &&
		(f.Fractional == nil || *f.Fractional == *o.Fractional)
}

// Validate checks that exactly one fee kind is set and that the fee always
// moves a non-negative amount from the payer to the collector.
func (f Fee) Validate() error {
	if !f.Collector.IsSet() {
		return errors.New("custom fee without collector")
	}
	if (f.Fixed == nil) == (f.Fractional == nil) {
		return fmt.Errorf("custom fee for %s must be either fixed or fractional", f.Collector)
	}
	if f.Fixed != nil {
		if f.Fixed.Units <= 0 {
			return fmt.Errorf("%w: fixed fee of %d units", ErrInvalidFee, f.Fixed.Units)
		}
		return nil
	}
	frac := f.Fractional
	switch {
	case frac.Denominator <= 0:
		return fmt.Errorf("%w: fraction denominator %d", ErrInvalidFee, frac.Denominator)
	case frac.Numerator <= 0:
		return fmt.Errorf("%w: fraction numerator %d", ErrInvalidFee, frac.Numerator)
	case frac.Minimum < 0 || frac.Maximum < 0:
		return fmt.Errorf("%w: negative fractional fee bounds", ErrInvalidFee)
	case frac.Maximum > 0 && frac.Maximum < frac.Minimum:
		return fmt.Errorf("%w: maximum %d is less than minimum %d", ErrInvalidFee, frac.Maximum, frac.Minimum)
	}
	return nil
}

// SchedulesEqual reports whether two schedules contain the same fees in
// the same order.
func SchedulesEqual(a, b []Fee) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
