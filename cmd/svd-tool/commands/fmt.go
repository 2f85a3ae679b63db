package commands

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/svd-tools/svd-go/pkg/svd"
)

// FmtOptions configures the fmt command.
type FmtOptions struct {
	Write bool
	List  bool
	Files []string
}

// RunFmt runs the fmt command: parse each file and regenerate it in
// canonical form. Without -w the formatted document goes to stdout.
func RunFmt(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFmtArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printFmtUsage(stderr)
		return exitCommandError
	}

	failed := false
	for _, file := range opts.Files {
		if err := fmtFile(file, opts, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", file, err)
			failed = true
		}
	}
	if failed {
		return exitCommandError
	}
	return exitSuccess
}

func fmtFile(path string, opts FmtOptions, stdout io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dev, err := svd.Parse(data)
	if err != nil {
		return err
	}
	formatted := svd.Generate(dev)

	switch {
	case opts.List:
		if !bytes.Equal(data, formatted) {
			fmt.Fprintln(stdout, path)
		}
	case opts.Write:
		if bytes.Equal(data, formatted) {
			return nil
		}
		return os.WriteFile(path, formatted, 0644)
	default:
		_, err = stdout.Write(formatted)
		return err
	}
	return nil
}

func parseFmtArgs(args []string) (FmtOptions, error) {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	opts := FmtOptions{}

	fs.BoolVar(&opts.Write, "w", false, "Write the result back to the source file")
	fs.BoolVar(&opts.List, "l", false, "List files whose formatting differs")
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.Files = fs.Args()
	return opts, nil
}

func printFmtUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: svd-tool fmt [options] <files...>

Options:
  -w  Write the result back to the source file instead of stdout
  -l  List files whose formatting differs from canonical

Examples:
  svd-tool fmt device.svd
  svd-tool fmt -w *.svd`)
}
