/*
Package ledger contains the entities transfers are expressed in and the
BalanceChange produced from them.
*/
package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidEntityID is returned when a "shard.realm.num" string can't be
// parsed.
var ErrInvalidEntityID = errors.New("invalid entity ID")

// AccountID identifies an account. The zero value is an unset account.
type AccountID struct {
	Shard int64
	Realm int64
	Num   int64
}

// TokenID identifies a token. The zero value stands for the native coin
// (hbar) wherever a token is optional.
type TokenID struct {
	Shard int64
	Realm int64
	Num   int64
}

// NoToken is the token of native coin adjustments.
var NoToken = TokenID{}

// NewAccountID returns account 0.0.num.
func NewAccountID(num int64) AccountID {
	return AccountID{Num: num}
}

// NewTokenID returns token 0.0.num.
func NewTokenID(num int64) TokenID {
	return TokenID{Num: num}
}

// IsSet reports whether the account is not the zero value.
func (a AccountID) IsSet() bool {
	return a != AccountID{}
}

// String implements the fmt.Stringer interface.
func (a AccountID) String() string {
	return formatID(a.Shard, a.Realm, a.Num)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (a *AccountID) UnmarshalText(text []byte) error {
	id, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// ParseAccountID parses "shard.realm.num" or a bare "num".
func ParseAccountID(s string) (AccountID, error) {
	shard, realm, num, err := parseID(s)
	return AccountID{Shard: shard, Realm: realm, Num: num}, err
}

// IsSet reports whether the token is not the zero value (native coin).
func (t TokenID) IsSet() bool {
	return t != NoToken
}

// String implements the fmt.Stringer interface.
func (t TokenID) String() string {
	if !t.IsSet() {
		return "ℏ"
	}
	return formatID(t.Shard, t.Realm, t.Num)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (t TokenID) MarshalText() ([]byte, error) {
	if !t.IsSet() {
		return []byte{}, nil
	}
	return []byte(formatID(t.Shard, t.Realm, t.Num)), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. An empty
// string is the native coin.
func (t *TokenID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = NoToken
		return nil
	}
	id, err := ParseTokenID(string(text))
	if err != nil {
		return err
	}
	*t = id
	return nil
}

// ParseTokenID parses "shard.realm.num" or a bare "num".
func ParseTokenID(s string) (TokenID, error) {
	shard, realm, num, err := parseID(s)
	return TokenID{Shard: shard, Realm: realm, Num: num}, err
}

func formatID(shard, realm, num int64) string {
	return strconv.FormatInt(shard, 10) + "." + strconv.FormatInt(realm, 10) + "." + strconv.FormatInt(num, 10)
}

func parseID(s string) (int64, int64, int64, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 1 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidEntityID, s)
	}
	var res [3]int64
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil || v < 0 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidEntityID, s)
		}
		res[3-len(parts)+i] = v
	}
	return res[0], res[1], res[2], nil
}
