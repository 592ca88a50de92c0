/*
Package marshal expands a requested transfer into the full list of balance
changes it implies, custom fees included.
*/
package marshal

import (
	"errors"
	"fmt"
	"math"

	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/customfee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/validation"
	"github.com/jankotek/hedera-services-sub001/pkg/util/bigmath"
)

// ErrFeeOutOfRange is returned when a custom fee or an adjustment it is
// merged into can't be computed within int64.
var ErrFeeOutOfRange = errors.New("custom fee outside numeric range")

// TokenFees is the custom fee schedule consulted for a token.
type TokenFees struct {
	Token ledger.TokenID  `json:"token"`
	Fees  []customfee.Fee `json:"fees"`
}

// Meta describes the inputs ImpliedTransfers were derived from.
type Meta struct {
	Props     validation.Props `json:"-"`
	Code      status.Code      `json:"status"`
	TokenFees []TokenFees      `json:"tokenFees,omitempty"`
}

// ImpliedTransfers is the outcome of Unmarshal. If Meta.Code is not
// status.Success the transfer is invalid and carries no changes.
type ImpliedTransfers struct {
	Meta         Meta                    `json:"meta"`
	Changes      []ledger.BalanceChange  `json:"changes,omitempty"`
	AssessedFees []customfee.AssessedFee `json:"assessedCustomFees,omitempty"`
}

// Marshal turns transfers into implied balance changes.
type Marshal struct {
	props     validation.Props
	schedules customfee.Schedules
}

type changeKey struct {
	account ledger.AccountID
	token   ledger.TokenID
}

// changeIndex is an ordered list of changes with fungible and native coin
// changes indexed by (account, token). It's owned by a single Unmarshal
// call.
type changeIndex struct {
	changes []ledger.BalanceChange
	pos     map[changeKey]int
}

// New creates a Marshal validating against props and assessing fees from
// schedules.
func New(props validation.Props, schedules customfee.Schedules) *Marshal {
	return &Marshal{props: props, schedules: schedules}
}

// Props returns the limits transfers are validated against.
func (m *Marshal) Props() validation.Props {
	return m.props
}

// Valid reports whether the transfer passed validation and fee assessment.
func (t ImpliedTransfers) Valid() bool {
	return t.Meta.Code == status.Success
}

// WasDerivedFrom reports whether implied transfers computed with this meta
// are still up to date for the given props and current schedules.
func (m Meta) WasDerivedFrom(props validation.Props, schedules customfee.Schedules) bool {
	if m.Props != props {
		return false
	}
	for _, tf := range m.TokenFees {
		current, err := schedules.Lookup(tf.Token)
		if err != nil || !customfee.SchedulesEqual(current, tf.Fees) {
			return false
		}
	}
	return true
}

// Unmarshal validates op and computes the balance changes it implies when
// paid by payer. The error is only returned if a fee schedule can't be
// looked up; business failures are reported via Meta.Code.
func (m *Marshal) Unmarshal(op ledger.CryptoTransfer, payer ledger.AccountID) (ImpliedTransfers, error) {
	meta := Meta{Props: m.props}
	meta.Code = validation.FullPureValidation(m.props, op.HbarTransfers, op.TokenTransfers)
	if meta.Code != status.Success {
		return ImpliedTransfers{Meta: meta}, nil
	}

	var (
		idx      = newChangeIndex(len(op.HbarTransfers) + ledger.NumFungibleTransfers(op.TokenTransfers))
		assessed []customfee.AssessedFee
	)
	for _, aa := range op.HbarTransfers {
		idx.add(ledger.ChangingHbar(aa))
	}
	for _, scoped := range op.TokenTransfers {
		var amount int64
		for _, aa := range scoped.Transfers {
			idx.add(ledger.ChangingFtUnits(scoped.Token, aa))
			if aa.Amount > 0 {
				if bigmath.AddOverflows(amount, aa.Amount) {
					meta.Code = status.CustomFeeOutsideNumericRange
					return ImpliedTransfers{Meta: meta}, nil
				}
				amount += aa.Amount
			}
		}
		for _, nft := range scoped.NftTransfers {
			idx.addUnindexed(ledger.ChangingNftOwnership(scoped.Token, nft))
		}

		schedule, err := m.schedules.Lookup(scoped.Token)
		if err != nil {
			return ImpliedTransfers{}, fmt.Errorf("custom fees of %s: %w", scoped.Token, err)
		}
		meta.TokenFees = append(meta.TokenFees, TokenFees{Token: scoped.Token, Fees: schedule})

		fees, err := assessCustomFees(idx, scoped.Token, payer, amount, schedule)
		if err != nil {
			meta.Code = status.CustomFeeOutsideNumericRange
			return ImpliedTransfers{Meta: meta}, nil
		}
		assessed = append(assessed, fees...)
	}
	return ImpliedTransfers{
		Meta:         meta,
		Changes:      idx.changes,
		AssessedFees: assessed,
	}, nil
}

// Rationalize returns it if it's still valid for the current props and
// schedules and recomputes it otherwise.
func (m *Marshal) Rationalize(it ImpliedTransfers, op ledger.CryptoTransfer, payer ledger.AccountID) (ImpliedTransfers, error) {
	if it.Meta.WasDerivedFrom(m.props, m.schedules) {
		return it, nil
	}
	return m.Unmarshal(op, payer)
}

// assessCustomFees merges the changes of all the fees in the schedule into
// idx in schedule order.
func assessCustomFees(idx *changeIndex, token ledger.TokenID, payer ledger.AccountID, amount int64, schedule []customfee.Fee) ([]customfee.AssessedFee, error) {
	var assessed []customfee.AssessedFee
	for _, f := range schedule {
		switch {
		case f.Fixed != nil:
			af, err := addFixedFeeChanges(idx, f.Collector, *f.Fixed, payer)
			if err != nil {
				return nil, err
			}
			assessed = append(assessed, af)
		case f.Fractional != nil:
			af, err := addFractionalFeeChanges(idx, f.Collector, *f.Fractional, payer, token, amount)
			if err != nil {
				return nil, err
			}
			assessed = append(assessed, af)
		}
	}
	return assessed, nil
}

func addFixedFeeChanges(idx *changeIndex, collector ledger.AccountID, ff customfee.FixedFee, payer ledger.AccountID) (customfee.AssessedFee, error) {
	units := ff.Units
	credit, debit := ledger.HbarAdjust(collector, units), ledger.HbarAdjust(payer, -units)
	if ff.Denomination.IsSet() {
		credit, debit = ledger.TokenAdjust(collector, ff.Denomination, units), ledger.TokenAdjust(payer, ff.Denomination, -units)
	}
	if err := idx.mergeFee(credit, debit); err != nil {
		return customfee.AssessedFee{}, err
	}
	return customfee.AssessedFee{Collector: collector, Token: ff.Denomination, Units: units}, nil
}

func addFractionalFeeChanges(idx *changeIndex, collector ledger.AccountID, ff customfee.FractionalFee,
	payer ledger.AccountID, token ledger.TokenID, amount int64) (customfee.AssessedFee, error) {
	nominal, err := SafeFractionMultiply(ff.Numerator, ff.Denominator, amount)
	if err != nil {
		return customfee.AssessedFee{}, err
	}
	effective := max(nominal, ff.Minimum)
	if ff.Maximum > 0 {
		effective = min(effective, ff.Maximum)
	}
	if err := idx.mergeFee(ledger.TokenAdjust(collector, token, effective), ledger.TokenAdjust(payer, token, -effective)); err != nil {
		return customfee.AssessedFee{}, err
	}
	return customfee.AssessedFee{Collector: collector, Token: token, Units: effective}, nil
}

// SafeFractionMultiply returns n*v/d truncated toward zero. The product is
// computed in 256 bits if it doesn't fit into int64, the result must.
func SafeFractionMultiply(n, d, v int64) (int64, error) {
	if d == 0 {
		return 0, fmt.Errorf("%w: zero denominator", ErrFeeOutOfRange)
	}
	if bigmath.MulOverflows(n, v) || (d == -1 && n*v == math.MinInt64) {
		res, err := bigmath.MulDiv(v, n, d)
		if err != nil {
			return 0, fmt.Errorf("%w: %d*%d/%d", ErrFeeOutOfRange, n, v, d)
		}
		return res, nil
	}
	return n * v / d, nil
}

func newChangeIndex(capacity int) *changeIndex {
	return &changeIndex{
		changes: make([]ledger.BalanceChange, 0, capacity),
		pos:     make(map[changeKey]int, capacity),
	}
}

func (x *changeIndex) add(c ledger.BalanceChange) {
	x.pos[changeKey{c.Account, c.Token}] = len(x.changes)
	x.changes = append(x.changes, c)
}

func (x *changeIndex) addUnindexed(c ledger.BalanceChange) {
	x.changes = append(x.changes, c)
}

// mergeFee merges the collector credit and the payer debit of a single
// assessed fee.
func (x *changeIndex) mergeFee(credit, debit ledger.BalanceChange) error {
	if err := x.merge(credit, false); err != nil {
		return err
	}
	return x.merge(debit, true)
}

// merge adjusts the units of an existing change with the same key or adds
// c as a new change. Payer-side changes are marked to report a custom fee
// specific insufficiency. The merged units must fit into int64.
func (x *changeIndex) merge(c ledger.BalanceChange, isPayer bool) error {
	if isPayer {
		c.InsufficientBalance = status.InsufficientPayerBalanceForCustomFee
	}
	if i, ok := x.pos[changeKey{c.Account, c.Token}]; ok {
		if bigmath.AddOverflows(x.changes[i].Units, c.Units) {
			return fmt.Errorf("%w: %s adjustment of %s", ErrFeeOutOfRange, c.Token, c.Account)
		}
		x.changes[i].Units += c.Units
		if isPayer {
			x.changes[i].InsufficientBalance = c.InsufficientBalance
		}
		return nil
	}
	x.add(c)
	return nil
}
