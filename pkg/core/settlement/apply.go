package settlement

import (
	"errors"

	"github.com/jankotek/hedera-services-sub001/pkg/core/dao"
	"github.com/jankotek/hedera-services-sub001/pkg/core/state"
	"github.com/jankotek/hedera-services-sub001/pkg/core/storage"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/marshal"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
	"github.com/jankotek/hedera-services-sub001/pkg/util/bigmath"
)

// execute applies implied transfers to d atomically: either all of the
// changes are applied or none of them. A balance that would overflow fails
// the transaction with INVALID_ACCOUNT_AMOUNTS.
func (p *Processor) execute(d *dao.Simple, it marshal.ImpliedTransfers) (status.Code, error) {
	if !it.Valid() {
		return it.Meta.Code, nil
	}
	applyDAO := d.GetWrapped()
	for _, c := range it.Changes {
		code, err := applyChange(applyDAO, c)
		if err != nil || code != status.Success {
			return code, err
		}
	}
	_, err := applyDAO.Persist()
	return status.Success, err
}

func applyChange(d *dao.Simple, c ledger.BalanceChange) (status.Code, error) {
	switch {
	case c.IsForHbar():
		return applyHbarChange(d, c)
	case c.IsForNft():
		return applyOwnershipChange(d, c)
	default:
		return applyTokenChange(d, c)
	}
}

func applyHbarChange(d *dao.Simple, c ledger.BalanceChange) (status.Code, error) {
	acc, err := d.GetAccount(c.Account)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return status.InvalidAccountID, nil
		}
		return 0, err
	}
	if bigmath.AddOverflows(acc.Balance, c.Units) {
		return status.InvalidAccountAmounts, nil
	}
	acc.Balance += c.Units
	if acc.Balance < 0 {
		return c.InsufficientBalance, nil
	}
	return status.Success, d.PutAccount(c.Account, acc)
}

func applyTokenChange(d *dao.Simple, c ledger.BalanceChange) (status.Code, error) {
	code, err := checkToken(d, c.Token, state.FungibleCommon)
	if err != nil || code != status.Success {
		return code, err
	}
	ok, err := d.HasAccount(c.Account)
	if err != nil {
		return 0, err
	}
	if !ok {
		return status.InvalidAccountID, nil
	}
	// Missing relationships are created automatically with zero balance.
	balance, _, err := d.GetTokenBalance(c.Account, c.Token)
	if err != nil {
		return 0, err
	}
	if bigmath.AddOverflows(balance, c.Units) {
		return status.InvalidAccountAmounts, nil
	}
	balance += c.Units
	if balance < 0 {
		return c.InsufficientBalance, nil
	}
	return status.Success, d.PutTokenBalance(c.Account, c.Token, balance)
}

func applyOwnershipChange(d *dao.Simple, c ledger.BalanceChange) (status.Code, error) {
	code, err := checkToken(d, c.Token, state.NonFungibleUnique)
	if err != nil || code != status.Success {
		return code, err
	}
	ok, err := d.HasAccount(c.Counterparty)
	if err != nil {
		return 0, err
	}
	if !ok {
		return status.InvalidAccountID, nil
	}
	nft, err := d.GetNFT(c.Token, c.SerialNo())
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return status.InvalidNftID, nil
		}
		return 0, err
	}
	if nft.Owner != c.Account {
		return c.InsufficientBalance, nil
	}
	nft.Owner = c.Counterparty
	return status.Success, d.PutNFT(c.Token, c.SerialNo(), nft)
}

func checkToken(d *dao.Simple, id ledger.TokenID, typ state.TokenType) (status.Code, error) {
	tok, err := d.GetToken(id)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return status.InvalidTokenID, nil
		}
		return 0, err
	}
	if tok.Type != typ {
		return status.InvalidTokenID, nil
	}
	return status.Success, nil
}
