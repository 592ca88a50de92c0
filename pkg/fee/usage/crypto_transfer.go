package usage

import "github.com/jankotek/hedera-services-sub001/pkg/fee"

// CryptoTransferMeta describes the token part of a transfer.
type CryptoTransferMeta struct {
	// TokenMultiplier scales the token part of the usage, it's never
	// less than 1.
	TokenMultiplier        int
	NumTokensInvolved      int
	NumFungibleTransfers   int
	NumNftOwnershipChanges int
	NumAssessedCustomFees  int
}

// CryptoTransferUsage estimates the usage of a crypto transfer into acc.
func CryptoTransferUsage(sigUsage SigUsage, xferMeta CryptoTransferMeta, baseMeta BaseTransactionMeta, acc *Accumulator) {
	acc.ResetForTransaction(baseMeta, sigUsage)

	multiplier := int64(xferMeta.TokenMultiplier)
	if multiplier < 1 {
		multiplier = 1
	}
	weightedTokens := multiplier * int64(xferMeta.NumTokensInvolved)
	weightedFungible := multiplier * int64(xferMeta.NumFungibleTransfers)
	nftChanges := int64(xferMeta.NumNftOwnershipChanges)
	hbarTransfers := int64(baseMeta.NumExplicitTransfers)

	bpt := weightedTokens * fee.BasicEntityIDSize
	bpt += (weightedFungible + hbarTransfers) * fee.BasicAccountAmtSize
	bpt += nftChanges * fee.NftTransferSize
	acc.AddBpt(bpt)

	rb := hbarTransfers * fee.BasicAccountAmtSize
	rb += weightedTokens*fee.BasicEntityIDSize + weightedFungible*fee.BasicAccountAmtSize + nftChanges*fee.NftTransferSize
	rb += int64(xferMeta.NumAssessedCustomFees) * fee.AssessedCustomFeeSize
	acc.AddRbs(rb * fee.ReceiptStorageTimeSec)
}
