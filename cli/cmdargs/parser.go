/*
Package cmdargs contains helpers handling command arguments and their JSON
input and output.
*/
package cmdargs

import (
	"fmt"
	"io"
	"os"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/urfave/cli"
)

// EnsureNone returns an error if there are any positional arguments present.
// It can be used to check them in commands that don't accept arguments.
func EnsureNone(ctx *cli.Context) *cli.ExitError {
	if ctx.Args().Present() {
		return cli.NewExitError("additional arguments given while this command expects none", 1)
	}
	return nil
}

// ReadJSON decodes v from the file at path or from stdin if path is empty.
func ReadJSON(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return json.NewDecoder(r).Decode(v)
}

// WriteJSON prints v as indented JSON to the application writer.
func WriteJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	_, _ = fmt.Fprintln(ctx.App.Writer, string(data))
	return nil
}
