package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/svd-tools/svd-go/pkg/session"
)

// ConvertOptions configures the convert command.
type ConvertOptions struct {
	Output string
	File   string
}

// RunConvert runs the convert command: SVD in, YAML summary out.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	opts, err := parseConvertArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printConvertUsage(stderr)
		return exitCommandError
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	sess := session.New(nil)
	if err := sess.Load(context.Background(), data); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	out, err := sess.SummaryYAML()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, out, 0644); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		return exitSuccess
	}
	_, _ = stdout.Write(out)
	return exitSuccess
}

func parseConvertArgs(args []string) (ConvertOptions, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	opts := ConvertOptions{}

	fs.StringVar(&opts.Output, "o", "", "Write output to file instead of stdout")
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		opts.File = fs.Arg(0)
	}
	return opts, nil
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: svd-tool convert [options] <file>

Options:
  -o <file>  Write output to file instead of stdout

Examples:
  svd-tool convert device.svd
  svd-tool convert -o device.yaml device.svd`)
}
