/*
Package status defines the outcome codes of settlement operations.
*/
package status

import (
	"fmt"
)

// Code is a transaction-level outcome. Codes are business results, not
// errors; anything but Success rejects the transaction.
type Code uint16

// Outcome codes.
const (
	Success Code = iota
	InvalidAccountID
	InvalidTokenID
	InvalidAccountAmounts
	AccountRepeatedInAccountAmounts
	TransferListSizeLimitExceeded
	TokenTransferListSizeLimitExceeded
	EmptyTokenTransferAccountAmounts
	TransfersNotZeroSumForToken
	TokenIDRepeatedInTokenList
	BatchSizeLimitExceeded
	CustomFeeOutsideNumericRange
	InsufficientAccountBalance
	InsufficientTokenBalance
	InsufficientPayerBalanceForCustomFee
	SenderDoesNotOwnNftSerialNo
	InsufficientTxFee
	InsufficientPayerBalance
	DuplicateTransaction
	PayerAccountNotFound
	InvalidNodeAccount
	FailFee
	InvalidNftID
)

var names = map[Code]string{
	Success:                              "SUCCESS",
	InvalidAccountID:                     "INVALID_ACCOUNT_ID",
	InvalidTokenID:                       "INVALID_TOKEN_ID",
	InvalidAccountAmounts:                "INVALID_ACCOUNT_AMOUNTS",
	AccountRepeatedInAccountAmounts:      "ACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS",
	TransferListSizeLimitExceeded:        "TRANSFER_LIST_SIZE_LIMIT_EXCEEDED",
	TokenTransferListSizeLimitExceeded:   "TOKEN_TRANSFER_LIST_SIZE_LIMIT_EXCEEDED",
	EmptyTokenTransferAccountAmounts:     "EMPTY_TOKEN_TRANSFER_ACCOUNT_AMOUNTS",
	TransfersNotZeroSumForToken:          "TRANSFERS_NOT_ZERO_SUM_FOR_TOKEN",
	TokenIDRepeatedInTokenList:           "TOKEN_ID_REPEATED_IN_TOKEN_LIST",
	BatchSizeLimitExceeded:               "BATCH_SIZE_LIMIT_EXCEEDED",
	CustomFeeOutsideNumericRange:         "CUSTOM_FEE_OUTSIDE_NUMERIC_RANGE",
	InsufficientAccountBalance:           "INSUFFICIENT_ACCOUNT_BALANCE",
	InsufficientTokenBalance:             "INSUFFICIENT_TOKEN_BALANCE",
	InsufficientPayerBalanceForCustomFee: "INSUFFICIENT_PAYER_BALANCE_FOR_CUSTOM_FEE",
	SenderDoesNotOwnNftSerialNo:          "SENDER_DOES_NOT_OWN_NFT_SERIAL_NO",
	InsufficientTxFee:                    "INSUFFICIENT_TX_FEE",
	InsufficientPayerBalance:             "INSUFFICIENT_PAYER_BALANCE",
	DuplicateTransaction:                 "DUPLICATE_TRANSACTION",
	PayerAccountNotFound:                 "PAYER_ACCOUNT_NOT_FOUND",
	InvalidNodeAccount:                   "INVALID_NODE_ACCOUNT",
	FailFee:                              "FAIL_FEE",
	InvalidNftID:                         "INVALID_NFT_ID",
}

// String implements the fmt.Stringer interface.
func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN_STATUS(%d)", uint16(c))
}

// MarshalText implements the encoding.TextMarshaler interface.
func (c Code) MarshalText() ([]byte, error) {
	if _, ok := names[c]; !ok {
		return nil, fmt.Errorf("unknown status code %d", uint16(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (c *Code) UnmarshalText(text []byte) error {
	s := string(text)
	for k, v := range names {
		if v == s {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", s)
}
