package config

import (
	"errors"
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/validation"
)

// Protocol defaults.
const (
	DefaultMaxTransferListSize          = 10
	DefaultMaxTokenTransferListSize     = 10
	DefaultMaxNftTransfersLen           = 10
	DefaultTokenTransferUsageMultiplier = 380
)

// ProtocolConfiguration represents the settlement rules every node must
// agree on.
type ProtocolConfiguration struct {
	// FundingAccount collects network and service fees.
	FundingAccount ledger.AccountID `yaml:"FundingAccount"`
	// NodeAccounts are the fee collecting accounts of nodes, indexed by
	// node number.
	NodeAccounts []ledger.AccountID `yaml:"NodeAccounts"`
	// FeeExemptAccounts never pay fees, the system accounts 0.0.2 and 0.0.50
	// are used if empty.
	FeeExemptAccounts []ledger.AccountID `yaml:"FeeExemptAccounts"`

	MaxTransferListSize      int `yaml:"MaxTransferListSize"`
	MaxTokenTransferListSize int `yaml:"MaxTokenTransferListSize"`
	MaxNftTransfersLen       int `yaml:"MaxNftTransfersLen"`
	// TokenTransferUsageMultiplier weights token transfers in usage
	// estimates.
	TokenTransferUsageMultiplier int `yaml:"TokenTransferUsageMultiplier"`

	ExchangeRate         fee.ExchangeRate `yaml:"ExchangeRate"`
	CongestionMultiplier int64            `yaml:"CongestionMultiplier"`
	FeeSchedule          fee.Data         `yaml:"FeeSchedule"`

	Genesis Genesis `yaml:"Genesis"`
}

// TransferProps returns the limits transfers are validated against.
func (p *ProtocolConfiguration) TransferProps() validation.Props {
	return validation.Props{
		MaxHbarAdjusts:      p.MaxTransferListSize,
		MaxTokenAdjusts:     p.MaxTokenTransferListSize,
		MaxOwnershipChanges: p.MaxNftTransfersLen,
	}
}

// AccountOf returns the fee collecting account of the node.
func (p *ProtocolConfiguration) AccountOf(node uint32) (ledger.AccountID, bool) {
	if int(node) >= len(p.NodeAccounts) {
		return ledger.AccountID{}, false
	}
	return p.NodeAccounts[node], true
}

// Validate checks ProtocolConfiguration for internal consistency and returns
// an error if any invalid settings are found.
func (p *ProtocolConfiguration) Validate() error {
	if !p.FundingAccount.IsSet() {
		return errors.New("FundingAccount is not set")
	}
	if len(p.NodeAccounts) == 0 {
		return errors.New("no NodeAccounts")
	}
	for i, acc := range p.NodeAccounts {
		if !acc.IsSet() {
			return fmt.Errorf("node %d account is not set", i)
		}
	}
	for _, lim := range []struct {
		name  string
		value int
	}{
		{"MaxTransferListSize", p.MaxTransferListSize},
		{"MaxTokenTransferListSize", p.MaxTokenTransferListSize},
		{"MaxNftTransfersLen", p.MaxNftTransfersLen},
		{"TokenTransferUsageMultiplier", p.TokenTransferUsageMultiplier},
	} {
		if lim.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", lim.name, lim.value)
		}
	}
	if p.ExchangeRate.HbarEquiv <= 0 || p.ExchangeRate.CentEquiv <= 0 {
		return fmt.Errorf("invalid ExchangeRate %d/%d", p.ExchangeRate.HbarEquiv, p.ExchangeRate.CentEquiv)
	}
	if p.CongestionMultiplier <= 0 {
		return fmt.Errorf("CongestionMultiplier must be positive, got %d", p.CongestionMultiplier)
	}
	return p.Genesis.validate(p)
}
