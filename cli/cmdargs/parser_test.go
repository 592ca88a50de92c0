package cmdargs

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

type sample struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

func TestEnsureNone(t *testing.T) {
	set := flag.NewFlagSet("flagSet", flag.ContinueOnError)
	require.NoError(t, set.Parse([]string{}))
	require.Nil(t, EnsureNone(cli.NewContext(cli.NewApp(), set, nil)))

	require.NoError(t, set.Parse([]string{"extra"}))
	require.NotNil(t, EnsureNone(cli.NewContext(cli.NewApp(), set, nil)))
}

func TestReadJSON(t *testing.T) {
	d := t.TempDir()
	good := filepath.Join(d, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name": "a", "value": 7}`), 0644))
	var s sample
	require.NoError(t, ReadJSON(good, &s))
	require.Equal(t, sample{Name: "a", Value: 7}, s)

	bad := filepath.Join(d, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name": 1}`), 0644))
	require.Error(t, ReadJSON(bad, &s))

	require.Error(t, ReadJSON(filepath.Join(d, "missing.json"), &s))
}

func TestWriteJSON(t *testing.T) {
	app := cli.NewApp()
	buf := bytes.NewBuffer(nil)
	app.Writer = buf
	ctx := cli.NewContext(app, flag.NewFlagSet("flagSet", flag.ContinueOnError), nil)
	require.NoError(t, WriteJSON(ctx, sample{Name: "b", Value: 1}))
	require.Equal(t, "{\n  \"name\": \"b\",\n  \"value\": 1\n}\n", buf.String())
}
