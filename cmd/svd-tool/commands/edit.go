package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/svd-tools/svd-go/pkg/history"
	"github.com/svd-tools/svd-go/pkg/log"
	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/session"
)

// EditOptions configures the edit command.
type EditOptions struct {
	Journal string
	Verbose bool
	File    string
}

// RunEdit runs the interactive edit shell over one SVD file.
func RunEdit(args []string, stdout, stderr io.Writer) int {
	opts, err := parseEditArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printEditUsage(stderr)
		return exitCommandError
	}

	var sinks []log.Logger
	if opts.Journal != "" {
		fl, err := log.NewFileLogger(opts.Journal)
		if err != nil {
			fmt.Fprintf(stderr, "Error: opening journal: %v\n", err)
			return exitCommandError
		}
		defer fl.Close()
		sinks = append(sinks, fl)
	}
	if opts.Verbose {
		sinks = append(sinks, verboseLogger(stderr))
	}
	var journal log.Logger
	switch len(sinks) {
	case 0:
	case 1:
		journal = sinks[0]
	default:
		journal = log.NewMultiLogger(sinks...)
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	sess := session.New(journal)
	if err := sess.Load(context.Background(), data); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "svd> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer rl.Close()

	shell := &editShell{sess: sess, path: opts.File, out: rl.Stdout()}
	shell.printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return exitSuccess
		}
		if shell.handleLine(line) {
			return exitSuccess
		}
	}
}

// verboseLogger echoes session events to w as slog text lines. The adapter
// logs at Debug level, so the handler threshold must admit it.
func verboseLogger(w io.Writer) *log.SlogAdapter {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return log.NewSlogAdapter(slog.New(handler))
}

// editShell interprets one line of shell input at a time. It is separate
// from the readline loop so it can be driven directly in tests.
type editShell struct {
	sess *session.Session
	path string
	out  io.Writer
}

// handleLine executes one shell command. Returns true when the shell
// should exit.
func (e *editShell) handleLine(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "help", "?":
		e.printHelp()
	case "show":
		printDeviceTree(e.out, e.sess.Device(), true)
	case "rename":
		e.cmdRename(args)
	case "set":
		e.cmdSet(args)
	case "add":
		e.cmdAdd(args)
	case "rm":
		e.cmdRemove(args)
	case "mv":
		e.cmdMove(args)
	case "reorder":
		e.cmdReorder(args)
	case "refresh":
		e.report(e.sess.Refresh())
	case "undo":
		e.report(e.sess.Undo())
	case "redo":
		e.report(e.sess.Redo())
	case "validate":
		e.cmdValidate()
	case "save":
		e.cmdSave(args)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(e.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

// parseNodePath parses "GPIOA/CTRL/EN" or "GPIOA/irq:NAME" into a Path.
// "." names the device itself.
func parseNodePath(s string) (history.Path, error) {
	var p history.Path
	if s == "." {
		return p, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return p, fmt.Errorf("path %q has too many components", s)
	}
	p.Peripheral = parts[0]
	if len(parts) > 1 {
		if irq, ok := strings.CutPrefix(parts[1], "irq:"); ok {
			if len(parts) > 2 {
				return p, fmt.Errorf("path %q has components below an interrupt", s)
			}
			p.Interrupt = irq
			return p, nil
		}
		p.Register = parts[1]
	}
	if len(parts) > 2 {
		p.Field = parts[2]
	}
	return p, nil
}

func (e *editShell) report(err error) {
	if err != nil {
		fmt.Fprintf(e.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(e.out, "ok")
}

func (e *editShell) cmdRename(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(e.out, "usage: rename <path> <new-name>")
		return
	}
	p, err := parseNodePath(args[0])
	if err != nil {
		e.report(err)
		return
	}
	e.report(e.sess.Apply(&history.RenameCommand{Target: p, NewName: args[1]}))
}

func (e *editShell) cmdSet(args []string) {
	if len(args) != 2 && len(args) != 3 {
		fmt.Fprintln(e.out, "usage: set <path> <attr> [value]")
		return
	}
	p, err := parseNodePath(args[0])
	if err != nil {
		e.report(err)
		return
	}
	value := ""
	if len(args) == 3 {
		value = args[2]
	}
	e.report(e.sess.Apply(&history.SetAttributeCommand{
		Target: p,
		Attr:   history.Attr(args[1]),
		Value:  value,
	}))
}

func (e *editShell) cmdAdd(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(e.out, "usage: add peripheral <name> <baseAddress> | add register <peripheral> <name> <offset> | add field <peripheral/register> <name> <bitOffset> <bitWidth> | add interrupt <peripheral> <name> <value>")
		return
	}
	cmd := &history.AddChildCommand{At: -1}
	var err error

	switch args[0] {
	case "peripheral":
		var base uint64
		if base, err = strconv.ParseUint(args[2], 0, 64); err == nil {
			cmd.Peripheral = &model.Peripheral{Name: args[1], BaseAddress: &base}
		}
	case "register":
		if len(args) != 4 {
			err = fmt.Errorf("usage: add register <peripheral> <name> <offset>")
			break
		}
		var offset uint64
		if offset, err = strconv.ParseUint(args[3], 0, 64); err == nil {
			cmd.Parent = history.Path{Peripheral: args[1]}
			cmd.Register = &model.Register{Name: args[2], AddressOffset: offset}
		}
	case "field":
		if len(args) != 5 {
			err = fmt.Errorf("usage: add field <peripheral/register> <name> <bitOffset> <bitWidth>")
			break
		}
		if cmd.Parent, err = parseNodePath(args[1]); err != nil {
			break
		}
		var offset, width uint64
		if offset, err = strconv.ParseUint(args[3], 0, 64); err != nil {
			break
		}
		if width, err = strconv.ParseUint(args[4], 0, 64); err != nil {
			break
		}
		cmd.Field = &model.Field{Name: args[2], BitOffset: offset, BitWidth: width}
	case "interrupt":
		if len(args) != 4 {
			err = fmt.Errorf("usage: add interrupt <peripheral> <name> <value>")
			break
		}
		var value uint64
		if value, err = strconv.ParseUint(args[3], 0, 64); err == nil {
			cmd.Parent = history.Path{Peripheral: args[1]}
			cmd.Interrupt = &model.Interrupt{Name: args[2], Value: value}
		}
	default:
		err = fmt.Errorf("unknown child kind %q", args[0])
	}

	if err != nil {
		e.report(err)
		return
	}
	e.report(e.sess.Apply(cmd))
}

func (e *editShell) cmdRemove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(e.out, "usage: rm <path>")
		return
	}
	p, err := parseNodePath(args[0])
	if err != nil {
		e.report(err)
		return
	}
	e.report(e.sess.Apply(&history.RemoveChildCommand{Target: p}))
}

func (e *editShell) cmdMove(args []string) {
	if len(args) != 2 && len(args) != 3 {
		fmt.Fprintln(e.out, "usage: mv <path> <new-parent> [index]")
		return
	}
	from, err := parseNodePath(args[0])
	if err != nil {
		e.report(err)
		return
	}
	to, err := parseNodePath(args[1])
	if err != nil {
		e.report(err)
		return
	}
	at := -1
	if len(args) == 3 {
		if at, err = strconv.Atoi(args[2]); err != nil {
			e.report(err)
			return
		}
	}
	e.report(e.sess.Apply(&history.MoveCommand{From: from, To: to, At: at}))
}

func (e *editShell) cmdReorder(args []string) {
	if len(args) != 4 {
		fmt.Fprintln(e.out, "usage: reorder <parent> <peripherals|registers|fields|interrupts> <from> <to>")
		return
	}
	p, err := parseNodePath(args[0])
	if err != nil {
		e.report(err)
		return
	}
	var list history.ListKind
	switch args[1] {
	case "peripherals":
		list = history.ListPeripherals
	case "registers":
		list = history.ListRegisters
	case "fields":
		list = history.ListFields
	case "interrupts":
		list = history.ListInterrupts
	default:
		e.report(fmt.Errorf("unknown list %q", args[1]))
		return
	}
	from, err := strconv.Atoi(args[2])
	if err != nil {
		e.report(err)
		return
	}
	to, err := strconv.Atoi(args[3])
	if err != nil {
		e.report(err)
		return
	}
	e.report(e.sess.Apply(&history.ReorderCommand{Parent: p, List: list, From: from, To: to}))
}

func (e *editShell) cmdValidate() {
	diags, err := e.sess.Validate()
	if err != nil {
		e.report(err)
		return
	}
	if len(diags) == 0 {
		fmt.Fprintln(e.out, "no findings")
		return
	}
	for _, d := range diags {
		fmt.Fprintln(e.out, d.String())
	}
}

func (e *editShell) cmdSave(args []string) {
	path := e.path
	if len(args) == 1 {
		path = args[0]
	}
	data, err := e.sess.Save()
	if err != nil {
		e.report(err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		e.report(err)
		return
	}
	fmt.Fprintf(e.out, "saved %s (%d bytes)\n", path, len(data))
}

func (e *editShell) printHelp() {
	fmt.Fprintln(e.out, `Commands:
  show                                 Display the device tree
  rename <path> <new-name>             Rename a node
  set <path> <attr> [value]            Set an attribute (empty value clears)
  add peripheral <name> <baseAddress>  Add a peripheral
  add register <peripheral> <name> <offset>
  add field <peripheral/register> <name> <bitOffset> <bitWidth>
  add interrupt <peripheral> <name> <value>
  rm <path>                            Remove a node
  mv <path> <new-parent> [index]       Move a node to another parent
  reorder <parent> <list> <from> <to>  Reorder children within a parent
  refresh                              Re-resolve inherited layouts after base edits
  undo / redo                          Step through edit history
  validate                             Run consistency rules
  save [file]                          Generate the document
  quit                                 Exit

Paths: GPIOA, GPIOA/CTRL, GPIOA/CTRL/EN, GPIOA/irq:GPIOA_IRQ, . (device)`)
}

func parseEditArgs(args []string) (EditOptions, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	opts := EditOptions{}

	fs.StringVar(&opts.Journal, "journal", "", "Append session events to a .svdlog journal file")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Echo session events to stderr")
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

func printEditUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: svd-tool edit [options] <file>

Options:
  --journal <file>  Append session events to a .svdlog journal file
  --verbose         Echo session events to stderr

Examples:
  svd-tool edit device.svd
  svd-tool edit --journal session.svdlog device.svd
  svd-tool edit --journal session.svdlog --verbose device.svd`)
}
