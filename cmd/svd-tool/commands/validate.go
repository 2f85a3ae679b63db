package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/resolve"
	"github.com/svd-tools/svd-go/pkg/svd"
	"github.com/svd-tools/svd-go/pkg/validate"
	"github.com/svd-tools/svd-go/pkg/validate/rules"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Strict  bool
	JSON    bool
	Verbose bool
	Files   []string
}

// RunValidate runs the validate command.
func RunValidate(args []string, stdout, stderr io.Writer) int {
	opts, err := parseValidateArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printValidateUsage(stderr)
		return exitCommandError
	}

	registry := rules.NewDefaultRegistry()

	hasFindings := false
	results := make(map[string]*ValidationOutput)

	for _, file := range opts.Files {
		result := validateFile(file, registry, opts)
		results[file] = result

		if !result.Valid {
			hasFindings = true
		}

		if !opts.JSON {
			printValidationResult(stdout, file, result, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if hasFindings {
		return exitValidation
	}
	return exitSuccess
}

// ValidationOutput represents the validation result for a file.
type ValidationOutput struct {
	Valid    bool          `json:"valid"`
	Device   string        `json:"device,omitempty"`
	Errors   []IssueOutput `json:"errors,omitempty"`
	Warnings []IssueOutput `json:"warnings,omitempty"`
	Infos    []IssueOutput `json:"infos,omitempty"`
}

// IssueOutput represents a single finding.
type IssueOutput struct {
	Rule    string `json:"rule"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// loadDevice parses an SVD file and resolves its derivations.
func loadDevice(path string) (*model.Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dev, err := svd.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing device: %w", err)
	}
	resolved, err := resolve.Resolve(dev)
	if err != nil {
		return nil, fmt.Errorf("resolving derivations: %w", err)
	}
	return resolved, nil
}

func validateFile(path string, registry *validate.Registry, opts ValidateOptions) *ValidationOutput {
	output := &ValidationOutput{Valid: true}

	dev, err := loadDevice(path)
	if err != nil {
		output.Valid = false
		output.Errors = append(output.Errors, IssueOutput{
			Rule:    "PARSE",
			Message: err.Error(),
		})
		return output
	}
	output.Device = dev.Name

	for _, d := range registry.Validate(dev) {
		issue := IssueOutput{Rule: d.RuleID, Path: d.Path, Message: d.Message}
		switch d.Severity {
		case validate.SeverityError:
			output.Errors = append(output.Errors, issue)
		case validate.SeverityWarning:
			output.Warnings = append(output.Warnings, issue)
		default:
			output.Infos = append(output.Infos, issue)
		}
	}

	if len(output.Errors) > 0 {
		output.Valid = false
	}
	if opts.Strict && len(output.Warnings) > 0 {
		output.Valid = false
	}
	return output
}

func printValidationResult(w io.Writer, file string, result *ValidationOutput, verbose bool) {
	switch {
	case result.Valid && len(result.Warnings) == 0:
		fmt.Fprintf(w, "%s: OK\n", file)
	case result.Valid:
		fmt.Fprintf(w, "%s: OK (with %d warnings)\n", file, len(result.Warnings))
	default:
		fmt.Fprintf(w, "%s: FAILED (%d errors, %d warnings)\n", file, len(result.Errors), len(result.Warnings))
	}

	if verbose || !result.Valid {
		for _, e := range result.Errors {
			printIssue(w, "ERROR", e)
		}
	}
	if verbose || !result.Valid {
		for _, warn := range result.Warnings {
			printIssue(w, "WARNING", warn)
		}
	}
	if verbose {
		for _, info := range result.Infos {
			printIssue(w, "INFO", info)
		}
	}
}

func printIssue(w io.Writer, severity string, issue IssueOutput) {
	if issue.Path != "" {
		fmt.Fprintf(w, "  %s [%s] %s: %s\n", severity, issue.Rule, issue.Path, issue.Message)
	} else {
		fmt.Fprintf(w, "  %s [%s] %s\n", severity, issue.Rule, issue.Message)
	}
}

func parseValidateArgs(args []string) (ValidateOptions, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	opts := ValidateOptions{}

	fs.BoolVar(&opts.Strict, "strict", false, "Treat warnings as errors")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Show all findings")
	fs.BoolVar(&opts.Verbose, "v", false, "Show all findings (shorthand)")
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Files = fs.Args()
	return opts, nil
}

func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: svd-tool validate [options] <files...>

Options:
  --strict       Treat warnings as errors
  --json         Output results as JSON
  -v, --verbose  Show all findings

Examples:
  svd-tool validate device.svd
  svd-tool validate --strict --json *.svd`)
}
