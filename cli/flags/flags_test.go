package flags

import (
	"flag"
	"testing"

	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func TestAccount_Set(t *testing.T) {
	a := Account{}
	require.Panics(t, func() { a.AccountID() })
	require.Error(t, a.Set("0.0"))
	require.False(t, a.IsSet)

	require.NoError(t, a.Set("0.0.1001"))
	require.True(t, a.IsSet)
	require.Equal(t, ledger.NewAccountID(1001), a.AccountID())
	require.Equal(t, "0.0.1001", a.String())
}

func TestAccountFlag(t *testing.T) {
	f := AccountFlag{Name: "payer, p", Usage: "payer account"}
	require.Equal(t, "--payer value, -p value\tpayer account", f.String())
	require.Equal(t, "payer, p", f.GetName())

	set := flag.NewFlagSet("flagSet", flag.ContinueOnError)
	f.Apply(set)
	require.NoError(t, set.Parse([]string{"-p", "1.2.3"}))
	ctx := cli.NewContext(cli.NewApp(), set, nil)
	acc := AccountFromContext(ctx, "payer")
	require.True(t, acc.IsSet)
	require.Equal(t, ledger.AccountID{Shard: 1, Realm: 2, Num: 3}, acc.Value)
}

func TestParseHbar(t *testing.T) {
	for s, expected := range map[string]int64{
		"1":          TinybarsInHbar,
		"0.00000001": 1,
		"-2.5":       -250_000_000,
		"0":          0,
	} {
		tb, err := ParseHbar(s)
		require.NoError(t, err, s)
		require.Equal(t, expected, tb, s)
	}
	for _, s := range []string{"0.000000001", "one", "100000000000000"} {
		_, err := ParseHbar(s)
		require.Error(t, err, s)
	}
}

func TestFormatHbar(t *testing.T) {
	require.Equal(t, "1", FormatHbar(TinybarsInHbar))
	require.Equal(t, "0.00000111", FormatHbar(111))
	require.Equal(t, "-1.5", FormatHbar(-150_000_000))
}

func TestHbarFlag(t *testing.T) {
	f := HbarFlag{Name: "max-fee", Usage: "fee limit"}
	set := flag.NewFlagSet("flagSet", flag.ContinueOnError)
	f.Apply(set)
	require.NoError(t, set.Parse([]string{"--max-fee", "0.5"}))
	ctx := cli.NewContext(cli.NewApp(), set, nil)
	require.EqualValues(t, 50_000_000, TinybarsFromContext(ctx, "max-fee"))
	require.Error(t, set.Parse([]string{"--max-fee", "x"}))
}
