// svd-tool is a CLI tool for validating, inspecting and editing CMSIS-SVD
// device description files.
package main

import (
	"fmt"
	"os"

	"github.com/svd-tools/svd-go/cmd/svd-tool/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "validate":
		exitCode = commands.RunValidate(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "fmt":
		exitCode = commands.RunFmt(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "edit":
		exitCode = commands.RunEdit(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("svd-tool version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`svd-tool - CMSIS-SVD validation and editing tool

Usage:
  svd-tool <command> [options] [files...]

Commands:
  validate   Validate SVD files against consistency rules
  show       Display the device tree of an SVD file
  fmt        Canonicalize SVD formatting (parse and regenerate)
  convert    Convert an SVD file to a YAML summary
  edit       Edit an SVD file interactively with undo/redo

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  svd-tool validate device.svd
  svd-tool show --resolved device.svd
  svd-tool fmt -w device.svd
  svd-tool convert device.svd
  svd-tool edit --journal session.svdlog device.svd

For command-specific help, run:
  svd-tool <command> --help`)
}
