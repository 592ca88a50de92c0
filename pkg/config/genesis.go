package config

import (
	"errors"
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/customfee"
	"github.com/jankotek/hedera-services-sub001/pkg/util/bigmath"
)

// Token kinds accepted in GenesisToken.Type.
const (
	TokenTypeFungible = "fungible"
	TokenTypeUnique   = "unique"
)

type (
	// Genesis describes the state an empty DB is seeded with.
	Genesis struct {
		Accounts []GenesisAccount `yaml:"Accounts"`
		Tokens   []GenesisToken   `yaml:"Tokens"`
	}

	// GenesisAccount is an account with the initial native coin balance.
	GenesisAccount struct {
		ID      ledger.AccountID `yaml:"ID"`
		Balance int64            `yaml:"Balance"`
	}

	// GenesisToken is a token created at genesis. Its whole Supply is held
	// by the treasury, for unique tokens Supply is the number of serials
	// minted (starting from 1).
	GenesisToken struct {
		ID         ledger.TokenID   `yaml:"ID"`
		Type       string           `yaml:"Type"`
		Symbol     string           `yaml:"Symbol"`
		Treasury   ledger.AccountID `yaml:"Treasury"`
		Supply     int64            `yaml:"Supply"`
		CustomFees []customfee.Fee  `yaml:"CustomFees"`
		// Associations are the accounts getting a zero balance of the token.
		Associations []ledger.AccountID `yaml:"Associations"`
	}
)

func (g *Genesis) validate(p *ProtocolConfiguration) error {
	var (
		accounts = make(map[ledger.AccountID]struct{}, len(g.Accounts))
		total    int64
	)
	for _, acc := range g.Accounts {
		if !acc.ID.IsSet() {
			return errors.New("genesis account without ID")
		}
		if _, ok := accounts[acc.ID]; ok {
			return fmt.Errorf("genesis account %s is repeated", acc.ID)
		}
		if acc.Balance < 0 {
			return fmt.Errorf("genesis account %s has negative balance", acc.ID)
		}
		// The total bounds every balance reachable by transfers.
		if bigmath.AddOverflows(total, acc.Balance) {
			return errors.New("total genesis balance overflows int64")
		}
		total += acc.Balance
		accounts[acc.ID] = struct{}{}
	}
	if len(g.Accounts) == 0 {
		return nil
	}
	if _, ok := accounts[p.FundingAccount]; !ok {
		return fmt.Errorf("funding account %s is missing from genesis", p.FundingAccount)
	}
	for _, node := range p.NodeAccounts {
		if _, ok := accounts[node]; !ok {
			return fmt.Errorf("node account %s is missing from genesis", node)
		}
	}
	tokens := make(map[ledger.TokenID]struct{}, len(g.Tokens))
	for _, tok := range g.Tokens {
		if !tok.ID.IsSet() {
			return errors.New("genesis token without ID")
		}
		if _, ok := tokens[tok.ID]; ok {
			return fmt.Errorf("genesis token %s is repeated", tok.ID)
		}
		tokens[tok.ID] = struct{}{}
		if tok.Type != TokenTypeFungible && tok.Type != TokenTypeUnique {
			return fmt.Errorf("token %s: unknown type %q", tok.ID, tok.Type)
		}
		if tok.Symbol == "" {
			return fmt.Errorf("token %s: empty symbol", tok.ID)
		}
		if _, ok := accounts[tok.Treasury]; !ok {
			return fmt.Errorf("token %s: treasury %s is missing from genesis", tok.ID, tok.Treasury)
		}
		if tok.Supply < 0 {
			return fmt.Errorf("token %s: negative supply", tok.ID)
		}
		for _, acc := range tok.Associations {
			if _, ok := accounts[acc]; !ok {
				return fmt.Errorf("token %s: associated account %s is missing from genesis", tok.ID, acc)
			}
		}
		for i, f := range tok.CustomFees {
			if err := f.Validate(); err != nil {
				return fmt.Errorf("token %s: custom fee #%d: %w", tok.ID, i, err)
			}
			if tok.Type == TokenTypeUnique && f.Fractional != nil {
				return fmt.Errorf("token %s: fractional fee for a unique token", tok.ID)
			}
		}
	}
	return nil
}
