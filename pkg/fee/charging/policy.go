package charging

import (
	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
)

// DefaultExemptAccounts are the system accounts never charged any fees.
var DefaultExemptAccounts = []ledger.AccountID{ledger.NewAccountID(2), ledger.NewAccountID(50)}

// ExemptAccounts is a fixed set of fee-exempt accounts.
type ExemptAccounts map[ledger.AccountID]struct{}

// NewExemptAccounts returns a set of the given accounts.
func NewExemptAccounts(accounts ...ledger.AccountID) ExemptAccounts {
	s := make(ExemptAccounts, len(accounts))
	for _, a := range accounts {
		s[a] = struct{}{}
	}
	return s
}

// IsExempt implements the Exemptions interface.
func (s ExemptAccounts) IsExempt(id ledger.AccountID) bool {
	_, ok := s[id]
	return ok
}

// Policy decides which fees to charge based on the payer's solvency and
// willingness to pay.
type Policy struct {
	charging *NarratedCharging
}

// NewPolicy creates a Policy charging via c.
func NewPolicy(c *NarratedCharging) *Policy {
	return &Policy{charging: c}
}

// Apply charges fees for a transaction that passed node due diligence. If the
// payer can't cover the network fee, the submitting node is charged instead.
// The returned status is not status.Success if the transaction must not be
// executed.
func (p *Policy) Apply(fees fee.Object) (status.Code, error) {
	p.charging.SetFees(fees)
	return p.chargePendingSolvency()
}

// ApplyForDuplicate charges a transaction that duplicates one submitted by
// another node. The service fee is waived and the status is always
// DUPLICATE_TRANSACTION, whatever the payer could cover.
func (p *Policy) ApplyForDuplicate(fees fee.Object) (status.Code, error) {
	fees.ServiceFee = 0
	p.charging.SetFees(fees)
	_, err := p.chargePendingSolvency()
	return status.DuplicateTransaction, err
}

// ApplyForIgnoredDueDiligence charges the submitting node up to the network
// fee for a transaction it shouldn't have submitted.
func (p *Policy) ApplyForIgnoredDueDiligence(fees fee.Object) error {
	p.charging.SetFees(fees)
	return p.charging.ChargeSubmittingNodeUpToNetworkFee()
}

func (p *Policy) chargePendingSolvency() (status.Code, error) {
	c := p.charging
	if !c.IsPayerWillingToCoverNetworkFee() {
		return status.InsufficientTxFee, c.ChargeSubmittingNodeUpToNetworkFee()
	}
	if !c.CanPayerAffordNetworkFee() {
		return status.InsufficientPayerBalance, c.ChargeSubmittingNodeUpToNetworkFee()
	}
	if !c.IsPayerWillingToCoverAllFees() {
		return status.InsufficientTxFee, c.ChargePayerNetworkAndUpToNodeFee()
	}
	if !c.CanPayerAffordAllFees() {
		return status.InsufficientPayerBalance, c.ChargePayerNetworkAndUpToNodeFee()
	}
	return status.Success, c.ChargePayerAllFees()
}
