package ledger

// AccountAmount is a signed adjustment of a single account.
type AccountAmount struct {
	Account AccountID `json:"account"`
	Amount  int64     `json:"amount"`
}

// NftTransfer moves one serial number of a non-fungible token.
type NftTransfer struct {
	Sender   AccountID `json:"sender"`
	Receiver AccountID `json:"receiver"`
	Serial   int64     `json:"serial"`
}

// TokenTransferList is a set of adjustments scoped to one token.
type TokenTransferList struct {
	Token        TokenID         `json:"token"`
	Transfers    []AccountAmount `json:"transfers,omitempty"`
	NftTransfers []NftTransfer   `json:"nftTransfers,omitempty"`
}

// CryptoTransfer is a requested value transfer.
type CryptoTransfer struct {
	HbarTransfers  []AccountAmount     `json:"transfers,omitempty"`
	TokenTransfers []TokenTransferList `json:"tokenTransfers,omitempty"`
}

// NumOwnershipChanges returns the number of NFT transfers in all the lists.
func NumOwnershipChanges(lists []TokenTransferList) int {
	var n int
	for i := range lists {
		n += len(lists[i].NftTransfers)
	}
	return n
}

// NumFungibleTransfers returns the number of fungible adjustments in all the
// lists.
func NumFungibleTransfers(lists []TokenTransferList) int {
	var n int
	for i := range lists {
		n += len(lists[i].Transfers)
	}
	return n
}
