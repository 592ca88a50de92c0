package settlement

import (
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/config"
	"github.com/jankotek/hedera-services-sub001/pkg/core/dao"
	"github.com/jankotek/hedera-services-sub001/pkg/core/state"
)

// seedGenesis puts the genesis accounts and tokens into d. Fungible token
// supply goes to the treasury, unique tokens get serials 1 to Supply owned
// by the treasury.
func seedGenesis(d *dao.Simple, g config.Genesis) error {
	for _, acc := range g.Accounts {
		if err := d.PutAccount(acc.ID, &state.Account{Balance: acc.Balance}); err != nil {
			return err
		}
	}
	for _, gt := range g.Tokens {
		tok := &state.Token{
			Type:       state.FungibleCommon,
			Symbol:     gt.Symbol,
			Treasury:   gt.Treasury,
			CustomFees: gt.CustomFees,
		}
		if gt.Type == config.TokenTypeUnique {
			tok.Type = state.NonFungibleUnique
		}
		if err := tok.Validate(); err != nil {
			return fmt.Errorf("token %s: %w", gt.ID, err)
		}
		if err := d.PutToken(gt.ID, tok); err != nil {
			return err
		}
		for _, acc := range gt.Associations {
			if err := d.PutTokenBalance(acc, gt.ID, 0); err != nil {
				return err
			}
		}
		if tok.Type == state.FungibleCommon {
			if err := d.PutTokenBalance(gt.Treasury, gt.ID, gt.Supply); err != nil {
				return err
			}
			continue
		}
		for serial := int64(1); serial <= gt.Supply; serial++ {
			if err := d.PutNFT(gt.ID, serial, &state.NFT{Owner: gt.Treasury}); err != nil {
				return err
			}
		}
	}
	return nil
}
