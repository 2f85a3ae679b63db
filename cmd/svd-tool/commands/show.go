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
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Resolved bool
	JSON     bool
	File     string
}

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts, err := parseShowArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printShowUsage(stderr)
		return exitCommandError
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	dev, err := svd.Parse(data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if opts.Resolved {
		if dev, err = resolve.Resolve(dev); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(buildShowOutput(dev), "", "  ")
		fmt.Fprintln(stdout, string(output))
		return exitSuccess
	}

	printDeviceTree(stdout, dev, opts.Resolved)
	return exitSuccess
}

// ShowOutput is the JSON shape of the device tree.
type ShowOutput struct {
	Device      string           `json:"device"`
	Version     string           `json:"version,omitempty"`
	Peripherals []ShowPeripheral `json:"peripherals"`
}

// ShowPeripheral is one peripheral in the JSON tree.
type ShowPeripheral struct {
	Name        string        `json:"name"`
	BaseAddress string        `json:"baseAddress,omitempty"`
	DerivedFrom string        `json:"derivedFrom,omitempty"`
	Registers   []ShowRegister `json:"registers,omitempty"`
}

// ShowRegister is one register in the JSON tree.
type ShowRegister struct {
	Name          string `json:"name"`
	AddressOffset string `json:"addressOffset"`
	Size          uint64 `json:"size"`
	Inherited     bool   `json:"inherited,omitempty"`
	Fields        int    `json:"fields,omitempty"`
}

func buildShowOutput(dev *model.Device) ShowOutput {
	output := ShowOutput{Device: dev.Name, Version: dev.Version}
	for _, p := range dev.Peripherals {
		sp := ShowPeripheral{Name: p.Name, DerivedFrom: p.DerivedFrom}
		if p.BaseAddress != nil {
			sp.BaseAddress = fmt.Sprintf("0x%08X", *p.BaseAddress)
		}
		for _, r := range p.Registers {
			sp.Registers = append(sp.Registers, ShowRegister{
				Name:          r.Name,
				AddressOffset: fmt.Sprintf("0x%X", r.AddressOffset),
				Size:          model.EffectiveSize(dev, p, r),
				Inherited:     r.Inherited,
				Fields:        len(r.Fields),
			})
		}
		output.Peripherals = append(output.Peripherals, sp)
	}
	return output
}

func printDeviceTree(w io.Writer, dev *model.Device, resolved bool) {
	fmt.Fprintf(w, "%s", dev.Name)
	if dev.Version != "" {
		fmt.Fprintf(w, " (version %s)", dev.Version)
	}
	fmt.Fprintln(w)

	for _, p := range dev.Peripherals {
		fmt.Fprintf(w, "  %s", p.Name)
		if p.BaseAddress != nil {
			fmt.Fprintf(w, " @ 0x%08X", *p.BaseAddress)
		}
		if p.DerivedFrom != "" {
			fmt.Fprintf(w, " (derivedFrom %s)", p.DerivedFrom)
		}
		fmt.Fprintln(w)

		for _, irq := range p.Interrupts {
			fmt.Fprintf(w, "    irq %s = %d%s\n", irq.Name, irq.Value, inheritedTag(resolved, irq.Inherited))
		}
		for _, r := range p.Registers {
			fmt.Fprintf(w, "    %s +0x%X [%d]%s\n",
				r.Name, r.AddressOffset, model.EffectiveSize(dev, p, r), inheritedTag(resolved, r.Inherited))
			for _, f := range r.Fields {
				lsb, msb := f.BitRange()
				fmt.Fprintf(w, "      %s [%d:%d]\n", f.Name, msb, lsb)
			}
		}
	}
}

func inheritedTag(resolved, inherited bool) string {
	if resolved && inherited {
		return " (inherited)"
	}
	return ""
}

func parseShowArgs(args []string) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	opts := ShowOptions{}

	fs.BoolVar(&opts.Resolved, "resolved", false, "Show the effective layout after derivation resolution")
	fs.BoolVar(&opts.JSON, "json", false, "Output the tree as JSON")
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

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: svd-tool show [options] <file>

Options:
  --resolved  Show the effective layout after derivation resolution
  --json      Output the tree as JSON

Examples:
  svd-tool show device.svd
  svd-tool show --resolved --json device.svd`)
}
