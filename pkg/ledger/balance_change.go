package ledger

import (
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
)

// BalanceChange is a single adjustment implied by a transfer. For NFT
// ownership changes Units holds the serial number and Counterparty the
// receiver. BalanceChange is a comparable value, two changes are equal iff
// all their fields are.
type BalanceChange struct {
	Account AccountID `json:"account"`
	// Token is NoToken for native coin adjustments.
	Token        TokenID   `json:"token"`
	Units        int64     `json:"units"`
	Counterparty AccountID `json:"counterparty"`
	// InsufficientBalance is the status reported if applying this change
	// would make a balance negative.
	InsufficientBalance status.Code `json:"insufficientBalance"`
}

// ChangingHbar returns a native coin change for the adjustment.
func ChangingHbar(aa AccountAmount) BalanceChange {
	return HbarAdjust(aa.Account, aa.Amount)
}

// HbarAdjust returns a native coin change of the account.
func HbarAdjust(account AccountID, amount int64) BalanceChange {
	return BalanceChange{
		Account:             account,
		Units:               amount,
		InsufficientBalance: status.InsufficientAccountBalance,
	}
}

// ChangingFtUnits returns a fungible token change for the adjustment.
func ChangingFtUnits(token TokenID, aa AccountAmount) BalanceChange {
	return TokenAdjust(aa.Account, token, aa.Amount)
}

// TokenAdjust returns a fungible token change of the account.
func TokenAdjust(account AccountID, token TokenID, amount int64) BalanceChange {
	return BalanceChange{
		Account:             account,
		Token:               token,
		Units:               amount,
		InsufficientBalance: status.InsufficientTokenBalance,
	}
}

// ChangingNftOwnership returns an ownership change for the NFT transfer.
func ChangingNftOwnership(token TokenID, nft NftTransfer) BalanceChange {
	return BalanceChange{
		Account:             nft.Sender,
		Token:               token,
		Units:               nft.Serial,
		Counterparty:        nft.Receiver,
		InsufficientBalance: status.SenderDoesNotOwnNftSerialNo,
	}
}

// IsForHbar reports whether the change adjusts a native coin balance.
func (c BalanceChange) IsForHbar() bool {
	return !c.Token.IsSet()
}

// IsForNft reports whether the change moves an NFT.
func (c BalanceChange) IsForNft() bool {
	return c.Token.IsSet() && c.Counterparty.IsSet()
}

// SerialNo returns the serial number of the moved NFT.
func (c BalanceChange) SerialNo() int64 {
	return c.Units
}

// String implements the fmt.Stringer interface.
func (c BalanceChange) String() string {
	if c.IsForNft() {
		return fmt.Sprintf("nft %s #%d %s -> %s", c.Token, c.Units, c.Account, c.Counterparty)
	}
	return fmt.Sprintf("%s %s %+d", c.Token, c.Account, c.Units)
}
