package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

// testConfig is a settler configuration with fixed fees of 1, 10 and 100
// tinybars, the DB file location is formatted in.
const testConfig = `
ProtocolConfiguration:
  FundingAccount: 0.0.98
  NodeAccounts: [0.0.3]
  ExchangeRate: {HbarEquiv: 1, CentEquiv: 1}
  FeeSchedule:
    Node: {Max: 1000000000, Constant: 1000}
    Network: {Max: 1000000000, Constant: 10000}
    Service: {Max: 1000000000, Constant: 100000}
  Genesis:
    Accounts:
      - {ID: 0.0.3, Balance: 0}
      - {ID: 0.0.98, Balance: 0}
      - {ID: 0.0.99, Balance: 0}
      - {ID: 0.0.1001, Balance: 10000}
      - {ID: 0.0.1002, Balance: 0}
    Tokens:
      - ID: 0.0.5001
        Type: fungible
        Symbol: USDC
        Treasury: 0.0.1001
        Supply: 1000
        CustomFees:
          - Collector: 0.0.99
            Fractional: {Numerator: 1, Denominator: 10, Minimum: 2}
ApplicationConfiguration:
  LogLevel: error
  DBConfiguration:
    Type: boltdb
    BoltDBOptions:
      FilePath: %s
`

// executor represents context for a test instance.
// It can be safely used in multiple tests, but not in parallel.
type executor struct {
	// CLI is a cli application to test.
	CLI *cli.App
	// Out contains command output.
	Out *bytes.Buffer
	// Err contains command errors.
	Err *bytes.Buffer
	// ConfigFile is the path of the test configuration.
	ConfigFile string
	// Dir is a temporary directory for test files.
	Dir string
}

func newExecutor(t *testing.T) *executor {
	e := &executor{
		CLI: New(),
		Out: bytes.NewBuffer(nil),
		Err: bytes.NewBuffer(nil),
		Dir: t.TempDir(),
	}
	e.CLI.Writer = e.Out
	e.CLI.ErrWriter = e.Err
	e.ConfigFile = filepath.Join(e.Dir, "settlement.yml")
	cfg := fmt.Sprintf(testConfig, filepath.Join(e.Dir, "db", "settlement.bolt"))
	require.NoError(t, os.WriteFile(e.ConfigFile, []byte(cfg), 0644))
	return e
}

// WriteFile puts data into the file in the test directory and returns its
// path.
func (e *executor) WriteFile(t *testing.T, name string, data string) string {
	path := filepath.Join(e.Dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

// Run runs the command and checks that it succeeded.
func (e *executor) Run(t *testing.T, args ...string) {
	e.Out.Reset()
	e.Err.Reset()
	require.NoError(t, e.run(args...), "stderr: %s", e.Err.String())
}

// RunWithError runs the command and checks that it failed.
func (e *executor) RunWithError(t *testing.T, args ...string) {
	e.Out.Reset()
	e.Err.Reset()
	exitCh := setExitFunc()
	require.Error(t, e.run(args...))
	select {
	case code := <-exitCh:
		require.Equal(t, 1, code)
	default:
	}
}

// DecodeOut decodes the JSON output of the last command into v.
func (e *executor) DecodeOut(t *testing.T, v any) {
	require.NoError(t, json.Unmarshal(e.Out.Bytes(), v), "output: %s", e.Out.String())
}

func (e *executor) run(args ...string) error {
	return e.CLI.Run(append([]string{"settler"}, args...))
}

func setExitFunc() <-chan int {
	ch := make(chan int, 1)
	cli.OsExiter = func(code int) {
		ch <- code
	}
	return ch
}
