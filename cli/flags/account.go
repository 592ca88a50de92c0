package flags

import (
	"flag"

	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/urfave/cli"
)

// Account is a wrapper for an ledger.AccountID with flag.Value methods.
type Account struct {
	IsSet bool
	Value ledger.AccountID
}

// AccountFlag is a flag with type ledger.AccountID.
type AccountFlag struct {
	Name  string
	Usage string
	Value Account
}

var (
	_ flag.Value = (*Account)(nil)
	_ cli.Flag   = AccountFlag{}
)

// String implements the fmt.Stringer interface.
func (a Account) String() string {
	return a.Value.String()
}

// Set implements the flag.Value interface.
func (a *Account) Set(s string) error {
	id, err := ledger.ParseAccountID(s)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	a.IsSet = true
	a.Value = id
	return nil
}

// AccountID returns the account, it panics if the flag wasn't set.
func (a *Account) AccountID() ledger.AccountID {
	if !a.IsSet {
		// It is a programmer error to call this method without
		// checking if the value was provided.
		panic("account was not set")
	}
	return a.Value
}

// String returns a readable representation of this value
// (for usage defaults).
func (f AccountFlag) String() string {
	return flagString(f.Name, f.Usage)
}

// GetName returns the name of the flag.
func (f AccountFlag) GetName() string {
	return f.Name
}

// Apply populates the flag given the flag set and environment.
// Ignores errors.
func (f AccountFlag) Apply(set *flag.FlagSet) {
	eachName(f.Name, func(name string) {
		set.Var(&f.Value, name, f.Usage)
	})
}

// AccountFromContext returns the parsed account provided flag name.
func AccountFromContext(ctx *cli.Context, name string) Account {
	return *ctx.Generic(name).(*Account)
}
