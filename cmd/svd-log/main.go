// Command svd-log is a tool for viewing and analyzing SVD editing journals.
//
// Journal files are created by running svd-tool edit with the -journal flag.
//
// Usage:
//
//	svd-log <command> [flags] <file.svdlog>
//
// Commands:
//
//	view     View journal in human-readable format
//	export   Export journal to JSON or CSV format
//	filter   Filter journal and write to new file
//	stats    Show statistics about the journal
//
// Examples:
//
//	# View all events
//	svd-log view edits.svdlog
//
//	# View only applied edits
//	svd-log view --category apply edits.svdlog
//
//	# Export to JSONL
//	svd-log export --format jsonl edits.svdlog
//
//	# Filter by session and save to new file
//	svd-log filter --session abc12345 -o filtered.svdlog edits.svdlog
//
//	# Show statistics
//	svd-log stats edits.svdlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/svd-tools/svd-go/cmd/svd-log/commands"
)

const usage = `svd-log - SVD Editing Journal Analyzer

Usage:
  svd-log <command> [flags] <file.svdlog>

Commands:
  view     View journal in human-readable format
  export   Export journal to JSON or CSV format
  filter   Filter journal and write to new file
  stats    Show statistics about the journal

Use "svd-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `svd-log view - View journal in human-readable format

Usage:
  svd-log view [flags] <file.svdlog>

Flags:
`)
		fs.PrintDefaults()
	}

	session := fs.String("session", "", "Filter by session ID")
	category := fs.String("category", "", "Filter by category (load, resolve, apply, undo, redo, validate, save, error)")
	device := fs.String("device", "", "Filter by device name")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: journal file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	filter := commands.ViewFilter{
		SessionID: *session,
		Device:    *device,
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `svd-log export - Export journal to JSON or CSV format

Usage:
  svd-log export [flags] <file.svdlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: journal file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `svd-log filter - Filter journal and write to new file

Usage:
  svd-log filter [flags] <file.svdlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	device := fs.String("device", "", "Filter by device name")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	category := fs.String("category", "", "Filter by category (load, resolve, apply, undo, redo, validate, save, error)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: journal file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	opts := commands.FilterOptions{
		Output:    *output,
		SessionID: *session,
		Device:    *device,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Category:  *category,
	}

	if err := commands.RunFilter(path, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `svd-log stats - Show statistics about the journal

Usage:
  svd-log stats <file.svdlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: journal file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
