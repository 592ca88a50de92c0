/*
Package validation implements pure structural checks of a requested
transfer. Checks have no side effects and consult no state, the first
failing check determines the returned status.
*/
package validation

import (
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
	"github.com/jankotek/hedera-services-sub001/pkg/util/bigmath"
)

// Props are the configurable limits a transfer is validated against.
type Props struct {
	MaxHbarAdjusts      int `yaml:"MaxHbarAdjusts"`
	MaxTokenAdjusts     int `yaml:"MaxTokenAdjusts"`
	MaxOwnershipChanges int `yaml:"MaxOwnershipChanges"`
}

// FullPureValidation checks native coin adjustments first and then the
// token transfer lists.
func FullPureValidation(props Props, hbarAdjusts []ledger.AccountAmount, tokenLists []ledger.TokenTransferList) status.Code {
	if HasRepeatedAccount(hbarAdjusts) {
		return status.AccountRepeatedInAccountAmounts
	}
	if !IsNetZeroAdjustment(hbarAdjusts) {
		return status.InvalidAccountAmounts
	}
	if len(hbarAdjusts) > props.MaxHbarAdjusts {
		return status.TransferListSizeLimitExceeded
	}
	if code := ValidateTokenTransferSizes(tokenLists, props.MaxTokenAdjusts, props.MaxOwnershipChanges); code != status.Success {
		return code
	}
	return ValidateTokenTransferSemantics(tokenLists)
}

// ValidateTokenTransferSizes checks the number of scoped lists, cumulative
// fungible adjustments and NFT ownership changes against the limits.
func ValidateTokenTransferSizes(lists []ledger.TokenTransferList, maxListLen int, maxOwnershipChanges int) status.Code {
	if len(lists) == 0 {
		return status.Success
	}
	if len(lists) > maxListLen {
		return status.TokenTransferListSizeLimitExceeded
	}
	var count, ownershipChanges int
	for i := range lists {
		var (
			transfers = len(lists[i].Transfers)
			nfts      = len(lists[i].NftTransfers)
		)
		if transfers == 0 && nfts == 0 {
			return status.EmptyTokenTransferAccountAmounts
		}
		count += transfers
		ownershipChanges += nfts
		if count > maxListLen {
			return status.TokenTransferListSizeLimitExceeded
		}
		if ownershipChanges > maxOwnershipChanges {
			return status.BatchSizeLimitExceeded
		}
	}
	return status.Success
}

// ValidateTokenTransferSemantics checks every scoped list and then that no
// token is listed twice.
func ValidateTokenTransferSemantics(lists []ledger.TokenTransferList) status.Code {
	if len(lists) == 0 {
		return status.Success
	}
	unique := make(map[ledger.TokenID]struct{}, len(lists))
	for i := range lists {
		if code := validateScopedTransferSemantics(unique, &lists[i]); code != status.Success {
			return code
		}
	}
	if len(unique) < len(lists) {
		return status.TokenIDRepeatedInTokenList
	}
	return status.Success
}

func validateScopedTransferSemantics(unique map[ledger.TokenID]struct{}, list *ledger.TokenTransferList) status.Code {
	if !list.Token.IsSet() {
		return status.InvalidTokenID
	}
	unique[list.Token] = struct{}{}
	for _, adjust := range list.Transfers {
		if !adjust.Account.IsSet() {
			return status.InvalidAccountID
		}
		if adjust.Amount == 0 {
			return status.InvalidAccountAmounts
		}
	}
	if HasRepeatedAccount(list.Transfers) {
		return status.AccountRepeatedInAccountAmounts
	}
	if !IsNetZeroAdjustment(list.Transfers) {
		return status.TransfersNotZeroSumForToken
	}
	for _, nft := range list.NftTransfers {
		if !nft.Sender.IsSet() || !nft.Receiver.IsSet() {
			return status.InvalidAccountID
		}
		if nft.Sender == nft.Receiver {
			return status.AccountRepeatedInAccountAmounts
		}
		if nft.Serial <= 0 {
			return status.InvalidNftID
		}
	}
	return status.Success
}

// HasRepeatedAccount reports whether any account is adjusted twice. Lists
// are bounded by configuration, so a pairwise scan is fine.
func HasRepeatedAccount(adjusts []ledger.AccountAmount) bool {
	for i := 0; i < len(adjusts)-1; i++ {
		for j := i + 1; j < len(adjusts); j++ {
			if adjusts[i].Account == adjusts[j].Account {
				return true
			}
		}
	}
	return false
}

// IsNetZeroAdjustment reports whether the adjustments sum to exactly zero.
func IsNetZeroAdjustment(adjusts []ledger.AccountAmount) bool {
	amounts := make([]int64, len(adjusts))
	for i := range adjusts {
		amounts[i] = adjusts[i].Amount
	}
	return bigmath.IsZeroSum(amounts...)
}
