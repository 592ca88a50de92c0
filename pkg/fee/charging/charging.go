/*
Package charging moves computed fees between the payer, the submitting node
and the funding account of a transaction.
*/
package charging

import (
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/util/bigmath"
)

// Accessor exposes the parts of a transaction relevant for charging.
type Accessor interface {
	Payer() ledger.AccountID
	// OfferedFee is the maximum fee the payer agreed to pay.
	OfferedFee() int64
}

// Accounts provides current native coin balances.
type Accounts interface {
	Balance(ledger.AccountID) (int64, error)
}

// Ledger adjusts native coin balances.
type Ledger interface {
	AdjustBalance(ledger.AccountID, int64) error
}

// Exemptions tells whether an account pays no fees.
type Exemptions interface {
	IsExempt(ledger.AccountID) bool
}

// NodeInfo maps node numbers to their fee collecting accounts.
type NodeInfo interface {
	AccountOf(node uint32) (ledger.AccountID, bool)
}

// NarratedCharging charges the fees of a single transaction at a time. It
// must be reset with ResetForTxn and given fees with SetFees before any
// query, calling it otherwise is a programming error and panics. It's not
// safe for concurrent use.
type NarratedCharging struct {
	accounts   Accounts
	ledger     Ledger
	exemptions Exemptions
	nodes      NodeInfo
	funding    ledger.AccountID

	prepared   bool
	feesSet    bool
	payer      ledger.AccountID
	node       ledger.AccountID
	offeredFee int64
	exempt     bool
	fees       fee.Object

	balanceLoaded bool
	payerBalance  int64
	// nodeFee, networkFee and serviceFee are the charges made for the current
	// transaction; their sum is reported by TotalFeesChargedToPayer.
	nodeFee    int64
	networkFee int64
	serviceFee int64
}

// NewNarratedCharging creates a NarratedCharging crediting network and
// service fees to funding.
func NewNarratedCharging(accounts Accounts, l Ledger, exemptions Exemptions, nodes NodeInfo, funding ledger.AccountID) *NarratedCharging {
	return &NarratedCharging{
		accounts:   accounts,
		ledger:     l,
		exemptions: exemptions,
		nodes:      nodes,
		funding:    funding,
	}
}

// ResetForTxn prepares charging of the transaction submitted by the given
// node. Fees set for the previous transaction are cleared.
func (c *NarratedCharging) ResetForTxn(accessor Accessor, submittingNode uint32) {
	node, ok := c.nodes.AccountOf(submittingNode)
	if !ok {
		panic(fmt.Sprintf("unknown submitting node %d", submittingNode))
	}
	c.prepared = true
	c.feesSet = false
	c.payer = accessor.Payer()
	c.node = node
	c.offeredFee = accessor.OfferedFee()
	c.exempt = c.exemptions.IsExempt(c.payer)
	c.fees = fee.Object{}
	c.balanceLoaded = false
	c.payerBalance = 0
	c.nodeFee, c.networkFee, c.serviceFee = 0, 0, 0
}

// SetFees attaches the fee split of the current transaction.
func (c *NarratedCharging) SetFees(fees fee.Object) {
	if !c.prepared {
		panic("fees set before ResetForTxn")
	}
	c.fees = fees
	c.feesSet = true
}

// Fees returns the fee split of the current transaction.
func (c *NarratedCharging) Fees() fee.Object {
	return c.fees
}

// Payer returns the payer of the current transaction.
func (c *NarratedCharging) Payer() ledger.AccountID {
	return c.payer
}

// TotalFeesChargedToPayer returns the sum of all fees the payer of the
// current transaction was charged.
func (c *NarratedCharging) TotalFeesChargedToPayer() int64 {
	return c.nodeFee + c.networkFee + c.serviceFee
}

// ChargedFees returns the split of the fees actually charged to the payer.
func (c *NarratedCharging) ChargedFees() fee.Object {
	return fee.Object{NodeFee: c.nodeFee, NetworkFee: c.networkFee, ServiceFee: c.serviceFee}
}

// CanPayerAffordAllFees reports whether the payer balance covers all fees.
func (c *NarratedCharging) CanPayerAffordAllFees() bool {
	return c.canPayerAfford(c.fees.NodeFee, c.fees.NetworkFee, c.fees.ServiceFee)
}

// CanPayerAffordNetworkFee reports whether the payer balance covers the
// network fee.
func (c *NarratedCharging) CanPayerAffordNetworkFee() bool {
	return c.canPayerAfford(c.fees.NetworkFee)
}

// CanPayerAffordServiceFee reports whether the payer balance covers the
// service fee.
func (c *NarratedCharging) CanPayerAffordServiceFee() bool {
	return c.canPayerAfford(c.fees.ServiceFee)
}

// IsPayerWillingToCoverAllFees reports whether the offered fee covers all
// fees.
func (c *NarratedCharging) IsPayerWillingToCoverAllFees() bool {
	return c.isPayerWillingToCover(c.fees.NodeFee, c.fees.NetworkFee, c.fees.ServiceFee)
}

// IsPayerWillingToCoverNetworkFee reports whether the offered fee covers the
// network fee.
func (c *NarratedCharging) IsPayerWillingToCoverNetworkFee() bool {
	return c.isPayerWillingToCover(c.fees.NetworkFee)
}

// IsPayerWillingToCoverServiceFee reports whether the offered fee covers the
// service fee.
func (c *NarratedCharging) IsPayerWillingToCoverServiceFee() bool {
	return c.isPayerWillingToCover(c.fees.ServiceFee)
}

// ChargePayerAllFees credits the node fee to the submitting node and the
// rest to the funding account.
func (c *NarratedCharging) ChargePayerAllFees() error {
	c.mustBeReady()
	if c.exempt {
		return nil
	}
	err := c.transfer(c.fees.NodeFee, c.fees.NetworkFee+c.fees.ServiceFee)
	if err != nil {
		return err
	}
	c.nodeFee += c.fees.NodeFee
	c.networkFee += c.fees.NetworkFee
	c.serviceFee += c.fees.ServiceFee
	return nil
}

// ChargePayerServiceFee credits the service fee to the funding account.
func (c *NarratedCharging) ChargePayerServiceFee() error {
	c.mustBeReady()
	if c.exempt {
		return nil
	}
	if err := c.transfer(0, c.fees.ServiceFee); err != nil {
		return err
	}
	c.serviceFee += c.fees.ServiceFee
	return nil
}

// ChargePayerNetworkAndUpToNodeFee charges the network fee in full and as
// much of the node fee as the payer balance still covers.
func (c *NarratedCharging) ChargePayerNetworkAndUpToNodeFee() error {
	c.mustBeReady()
	if c.exempt {
		return nil
	}
	balance, err := c.loadPayerBalance()
	if err != nil {
		return err
	}
	nodeFee := max(min(c.fees.NodeFee, balance-c.fees.NetworkFee), 0)
	if err := c.transfer(nodeFee, c.fees.NetworkFee); err != nil {
		return err
	}
	c.nodeFee += nodeFee
	c.networkFee += c.fees.NetworkFee
	return nil
}

// ChargeSubmittingNodeUpToNetworkFee charges the submitting node instead of
// the payer, as much of the network fee as the node balance covers. Payer
// exemptions don't apply.
func (c *NarratedCharging) ChargeSubmittingNodeUpToNetworkFee() error {
	c.mustBeReady()
	balance, err := c.accounts.Balance(c.node)
	if err != nil {
		return fmt.Errorf("balance of node %s: %w", c.node, err)
	}
	amount := max(min(c.fees.NetworkFee, balance), 0)
	if amount == 0 {
		return nil
	}
	if err := c.ledger.AdjustBalance(c.node, -amount); err != nil {
		return err
	}
	return c.ledger.AdjustBalance(c.funding, amount)
}

// transfer debits the payer with the sum of both fees, crediting the first
// one to the node account.
func (c *NarratedCharging) transfer(toNode, toFunding int64) error {
	if toNode != 0 {
		if err := c.ledger.AdjustBalance(c.node, toNode); err != nil {
			return err
		}
	}
	if toFunding != 0 {
		if err := c.ledger.AdjustBalance(c.funding, toFunding); err != nil {
			return err
		}
	}
	total := toNode + toFunding
	if total == 0 {
		return nil
	}
	if err := c.ledger.AdjustBalance(c.payer, -total); err != nil {
		return err
	}
	if c.balanceLoaded {
		c.payerBalance -= total
	}
	return nil
}

func (c *NarratedCharging) canPayerAfford(fees ...int64) bool {
	c.mustBeReady()
	if c.exempt {
		return true
	}
	balance, err := c.loadPayerBalance()
	if err != nil {
		panic(fmt.Sprintf("payer %s balance: %v", c.payer, err))
	}
	sum, ok := feeSum(fees...)
	return ok && balance >= sum
}

func (c *NarratedCharging) isPayerWillingToCover(fees ...int64) bool {
	c.mustBeReady()
	if c.exempt {
		return true
	}
	sum, ok := feeSum(fees...)
	return ok && c.offeredFee >= sum
}

func (c *NarratedCharging) loadPayerBalance() (int64, error) {
	if !c.balanceLoaded {
		balance, err := c.accounts.Balance(c.payer)
		if err != nil {
			return 0, err
		}
		c.payerBalance = balance
		c.balanceLoaded = true
	}
	return c.payerBalance, nil
}

func (c *NarratedCharging) mustBeReady() {
	if !c.prepared {
		panic("charging used before ResetForTxn")
	}
	if !c.feesSet {
		panic("charging used before SetFees")
	}
}

func feeSum(fees ...int64) (int64, bool) {
	var sum int64
	for _, f := range fees {
		if bigmath.AddOverflows(sum, f) {
			return 0, false
		}
		sum += f
	}
	return sum, true
}
