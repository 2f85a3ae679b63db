package history

import (
	"fmt"
	"slices"

	"github.com/svd-tools/svd-go/pkg/model"
)

func insertAt[T any](s []T, i int, v T) []T {
	return slices.Insert(s, i, v)
}

func deleteAt[T any](s []T, i int) []T {
	return slices.Delete(s, i, i+1)
}

// checkInsertIndex resolves an insertion index against a list of length n.
// -1 means append.
func checkInsertIndex(op string, at, n int) (int, *CommandError) {
	if at == -1 {
		return n, nil
	}
	if at < 0 || at > n {
		return 0, rejectf(op, "index %d out of range [0, %d]", at, n)
	}
	return at, nil
}

// AddChildCommand inserts a new child node under Parent. Exactly one of the
// child pointers must be set, and its kind must match the parent level:
// peripherals go under the device, registers and interrupts under a
// peripheral, fields under a register. At is the insertion index, -1
// appends.
type AddChildCommand struct {
	Parent Path
	At     int

	Peripheral *model.Peripheral
	Register   *model.Register
	Field      *model.Field
	Interrupt  *model.Interrupt

	idx           int
	prevInherited bool
}

func (c *AddChildCommand) childName() string {
	switch {
	case c.Peripheral != nil:
		return c.Peripheral.Name
	case c.Register != nil:
		return c.Register.Name
	case c.Field != nil:
		return c.Field.Name
	case c.Interrupt != nil:
		return c.Interrupt.Name
	}
	return ""
}

func (c *AddChildCommand) set() int {
	n := 0
	for _, p := range []bool{c.Peripheral != nil, c.Register != nil, c.Field != nil, c.Interrupt != nil} {
		if p {
			n++
		}
	}
	return n
}

func (c *AddChildCommand) Apply(dev *model.Device) error {
	const op = "add"
	if c.set() != 1 {
		return rejectf(op, "exactly one child must be given")
	}
	if err := checkName(op, c.childName()); err != nil {
		return err
	}
	n, err := lookup(op, dev, c.Parent)
	if err != nil {
		return err
	}
	switch {
	case c.Peripheral != nil:
		if n.per != nil {
			return rejectf(op, "%s cannot hold a peripheral", c.Parent)
		}
		if dev.PeripheralIndex(c.Peripheral.Name) != -1 {
			return rejectf(op, "peripheral %q already exists", c.Peripheral.Name)
		}
		if c.idx, err = checkInsertIndex(op, c.At, len(dev.Peripherals)); err != nil {
			return err
		}
		dev.Peripherals = insertAt(dev.Peripherals, c.idx, c.Peripheral)

	case c.Register != nil:
		if n.per == nil || n.reg != nil || n.irq != nil {
			return rejectf(op, "%s cannot hold a register", c.Parent)
		}
		if n.per.RegisterIndex(c.Register.Name) != -1 {
			return rejectf(op, "register %q already exists in %s", c.Register.Name, n.per.Name)
		}
		if c.idx, err = checkInsertIndex(op, c.At, len(n.per.Registers)); err != nil {
			return err
		}
		n.per.Registers = insertAt(n.per.Registers, c.idx, c.Register)

	case c.Interrupt != nil:
		if n.per == nil || n.reg != nil || n.irq != nil {
			return rejectf(op, "%s cannot hold an interrupt", c.Parent)
		}
		if n.per.InterruptIndex(c.Interrupt.Name) != -1 {
			return rejectf(op, "interrupt %q already exists in %s", c.Interrupt.Name, n.per.Name)
		}
		if c.idx, err = checkInsertIndex(op, c.At, len(n.per.Interrupts)); err != nil {
			return err
		}
		n.per.Interrupts = insertAt(n.per.Interrupts, c.idx, c.Interrupt)

	case c.Field != nil:
		if n.reg == nil || n.field != nil {
			return rejectf(op, "%s cannot hold a field", c.Parent)
		}
		if n.reg.FieldIndex(c.Field.Name) != -1 {
			return rejectf(op, "field %q already exists in %s", c.Field.Name, c.Parent)
		}
		if c.idx, err = checkInsertIndex(op, c.At, len(n.reg.Fields)); err != nil {
			return err
		}
		n.reg.Fields = insertAt(n.reg.Fields, c.idx, c.Field)
	}
	// Adding a field to an inherited register turns it into an override.
	if c.Field != nil {
		c.prevInherited = markOverride(n)
	}
	return nil
}

func (c *AddChildCommand) Undo(dev *model.Device) {
	n, _ := lookup("add", dev, c.Parent)
	switch {
	case c.Peripheral != nil:
		dev.Peripherals = deleteAt(dev.Peripherals, c.idx)
	case c.Register != nil:
		n.per.Registers = deleteAt(n.per.Registers, c.idx)
	case c.Interrupt != nil:
		n.per.Interrupts = deleteAt(n.per.Interrupts, c.idx)
	case c.Field != nil:
		n.reg.Fields = deleteAt(n.reg.Fields, c.idx)
		restoreOverride(n, c.prevInherited)
	}
}

func (c *AddChildCommand) Description() string {
	kind := "peripheral"
	switch {
	case c.Register != nil:
		kind = "register"
	case c.Field != nil:
		kind = "field"
	case c.Interrupt != nil:
		kind = "interrupt"
	}
	return fmt.Sprintf("add %s %s under %s", kind, c.childName(), c.Parent)
}

// RemoveChildCommand removes the node at Target. Removing a peripheral other
// peripherals derive from is rejected so derivations never go dangling.
type RemoveChildCommand struct {
	Target Path

	idx           int
	prevInherited bool

	removedPer   *model.Peripheral
	removedReg   *model.Register
	removedField *model.Field
	removedIrq   *model.Interrupt
}

func (c *RemoveChildCommand) Apply(dev *model.Device) error {
	const op = "remove"
	n, err := lookup(op, dev, c.Target)
	if err != nil {
		return err
	}
	switch {
	case n.irq != nil:
		c.idx = n.per.InterruptIndex(n.irq.Name)
		c.removedIrq = n.irq
		n.per.Interrupts = deleteAt(n.per.Interrupts, c.idx)

	case n.field != nil:
		c.idx = n.reg.FieldIndex(n.field.Name)
		c.removedField = n.field
		n.reg.Fields = deleteAt(n.reg.Fields, c.idx)
		c.prevInherited = markOverride(node{dev: dev, per: n.per, reg: n.reg})

	case n.reg != nil:
		c.idx = n.per.RegisterIndex(n.reg.Name)
		c.removedReg = n.reg
		n.per.Registers = deleteAt(n.per.Registers, c.idx)

	case n.per != nil:
		for _, p := range dev.Peripherals {
			if p.DerivedFrom == n.per.Name {
				return rejectf(op, "peripheral %s is derived from by %s", n.per.Name, p.Name)
			}
		}
		c.idx = dev.PeripheralIndex(n.per.Name)
		c.removedPer = n.per
		dev.Peripherals = deleteAt(dev.Peripherals, c.idx)

	default:
		return rejectf(op, "cannot remove the device")
	}
	return nil
}

func (c *RemoveChildCommand) Undo(dev *model.Device) {
	parent := c.Target
	parent.Interrupt = ""
	switch {
	case c.removedIrq != nil:
		n, _ := lookup("remove", dev, Path{Peripheral: parent.Peripheral})
		n.per.Interrupts = insertAt(n.per.Interrupts, c.idx, c.removedIrq)
	case c.removedField != nil:
		parent.Field = ""
		n, _ := lookup("remove", dev, parent)
		n.reg.Fields = insertAt(n.reg.Fields, c.idx, c.removedField)
		restoreOverride(n, c.prevInherited)
	case c.removedReg != nil:
		parent.Register = ""
		n, _ := lookup("remove", dev, parent)
		n.per.Registers = insertAt(n.per.Registers, c.idx, c.removedReg)
	case c.removedPer != nil:
		dev.Peripherals = insertAt(dev.Peripherals, c.idx, c.removedPer)
	}
}

func (c *RemoveChildCommand) Description() string {
	return fmt.Sprintf("remove %s", c.Target)
}

// ListKind selects which child list of a parent a ReorderCommand acts on.
// A peripheral parent has two lists, so the path level alone is not enough.
type ListKind int

const (
	ListPeripherals ListKind = iota
	ListRegisters
	ListFields
	ListInterrupts
)

func (k ListKind) String() string {
	switch k {
	case ListPeripherals:
		return "peripherals"
	case ListRegisters:
		return "registers"
	case ListFields:
		return "fields"
	case ListInterrupts:
		return "interrupts"
	}
	return "unknown"
}

func reorder[T any](s []T, from, to int) []T {
	v := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, v)
}

// ReorderCommand moves the child at position From to position To within one
// child list of Parent.
type ReorderCommand struct {
	Parent   Path
	List     ListKind
	From, To int

	prevInherited bool
}

func (c *ReorderCommand) Apply(dev *model.Device) error {
	const op = "reorder"
	n, err := lookup(op, dev, c.Parent)
	if err != nil {
		return err
	}
	var length int
	switch c.List {
	case ListPeripherals:
		if n.per != nil {
			return rejectf(op, "%s has no peripheral list", c.Parent)
		}
		length = len(dev.Peripherals)
	case ListRegisters:
		if n.per == nil || n.reg != nil || n.irq != nil {
			return rejectf(op, "%s has no register list", c.Parent)
		}
		length = len(n.per.Registers)
	case ListInterrupts:
		if n.per == nil || n.reg != nil || n.irq != nil {
			return rejectf(op, "%s has no interrupt list", c.Parent)
		}
		length = len(n.per.Interrupts)
	case ListFields:
		if n.reg == nil || n.field != nil {
			return rejectf(op, "%s has no field list", c.Parent)
		}
		length = len(n.reg.Fields)
	default:
		return rejectf(op, "unknown list kind %d", c.List)
	}
	if c.From < 0 || c.From >= length {
		return rejectf(op, "index %d out of range [0, %d)", c.From, length)
	}
	if c.To < 0 || c.To >= length {
		return rejectf(op, "index %d out of range [0, %d)", c.To, length)
	}
	switch c.List {
	case ListPeripherals:
		dev.Peripherals = reorder(dev.Peripherals, c.From, c.To)
	case ListRegisters:
		n.per.Registers = reorder(n.per.Registers, c.From, c.To)
	case ListInterrupts:
		n.per.Interrupts = reorder(n.per.Interrupts, c.From, c.To)
	case ListFields:
		n.reg.Fields = reorder(n.reg.Fields, c.From, c.To)
		c.prevInherited = markOverride(n)
	}
	return nil
}

func (c *ReorderCommand) Undo(dev *model.Device) {
	n, _ := lookup("reorder", dev, c.Parent)
	switch c.List {
	case ListPeripherals:
		dev.Peripherals = reorder(dev.Peripherals, c.To, c.From)
	case ListRegisters:
		n.per.Registers = reorder(n.per.Registers, c.To, c.From)
	case ListInterrupts:
		n.per.Interrupts = reorder(n.per.Interrupts, c.To, c.From)
	case ListFields:
		n.reg.Fields = reorder(n.reg.Fields, c.To, c.From)
		restoreOverride(n, c.prevInherited)
	}
}

func (c *ReorderCommand) Description() string {
	return fmt.Sprintf("reorder %s of %s: %d to %d", c.List, c.Parent, c.From, c.To)
}

// MoveCommand reparents the node at From under the parent at To. Registers
// and interrupts move between peripherals, fields between registers. Moves
// within the same parent are rejected; ReorderCommand covers those. At is
// the insertion index in the destination list, -1 appends.
type MoveCommand struct {
	From Path
	To   Path
	At   int

	fromIdx       int
	toIdx         int
	prevInherited bool // moved node's own marker
	prevSrcReg    bool // source register marker, field moves only
	prevDstReg    bool // destination register marker, field moves only
}

func (c *MoveCommand) Apply(dev *model.Device) error {
	const op = "move"
	src, err := lookup(op, dev, c.From)
	if err != nil {
		return err
	}
	dst, err := lookup(op, dev, c.To)
	if err != nil {
		return err
	}
	switch {
	case src.irq != nil:
		if dst.per == nil || dst.reg != nil || dst.irq != nil {
			return rejectf(op, "%s cannot hold an interrupt", c.To)
		}
		if dst.per == src.per {
			return rejectf(op, "%s is already the parent", c.To)
		}
		if dst.per.InterruptIndex(src.irq.Name) != -1 {
			return rejectf(op, "interrupt %q already exists in %s", src.irq.Name, dst.per.Name)
		}
		if c.toIdx, err = checkInsertIndex(op, c.At, len(dst.per.Interrupts)); err != nil {
			return err
		}
		c.fromIdx = src.per.InterruptIndex(src.irq.Name)
		src.per.Interrupts = deleteAt(src.per.Interrupts, c.fromIdx)
		dst.per.Interrupts = insertAt(dst.per.Interrupts, c.toIdx, src.irq)
		c.prevInherited = src.irq.Inherited
		src.irq.Inherited = false

	case src.field != nil:
		if dst.reg == nil || dst.field != nil {
			return rejectf(op, "%s cannot hold a field", c.To)
		}
		if dst.reg == src.reg {
			return rejectf(op, "%s is already the parent", c.To)
		}
		if dst.reg.FieldIndex(src.field.Name) != -1 {
			return rejectf(op, "field %q already exists in %s", src.field.Name, c.To)
		}
		if c.toIdx, err = checkInsertIndex(op, c.At, len(dst.reg.Fields)); err != nil {
			return err
		}
		c.fromIdx = src.reg.FieldIndex(src.field.Name)
		src.reg.Fields = deleteAt(src.reg.Fields, c.fromIdx)
		dst.reg.Fields = insertAt(dst.reg.Fields, c.toIdx, src.field)
		c.prevSrcReg = markOverride(src)
		c.prevDstReg = markOverride(dst)

	case src.reg != nil:
		if dst.per == nil || dst.reg != nil || dst.irq != nil {
			return rejectf(op, "%s cannot hold a register", c.To)
		}
		if dst.per == src.per {
			return rejectf(op, "%s is already the parent", c.To)
		}
		if dst.per.RegisterIndex(src.reg.Name) != -1 {
			return rejectf(op, "register %q already exists in %s", src.reg.Name, dst.per.Name)
		}
		if c.toIdx, err = checkInsertIndex(op, c.At, len(dst.per.Registers)); err != nil {
			return err
		}
		c.fromIdx = src.per.RegisterIndex(src.reg.Name)
		src.per.Registers = deleteAt(src.per.Registers, c.fromIdx)
		dst.per.Registers = insertAt(dst.per.Registers, c.toIdx, src.reg)
		c.prevInherited = src.reg.Inherited
		src.reg.Inherited = false

	default:
		return rejectf(op, "only registers, fields and interrupts can move")
	}
	return nil
}

func (c *MoveCommand) Undo(dev *model.Device) {
	src, _ := lookup("move", dev, srcParent(c.From))
	dst, _ := lookup("move", dev, c.To)
	switch {
	case c.From.Interrupt != "":
		irq := dst.per.Interrupts[c.toIdx]
		dst.per.Interrupts = deleteAt(dst.per.Interrupts, c.toIdx)
		src.per.Interrupts = insertAt(src.per.Interrupts, c.fromIdx, irq)
		irq.Inherited = c.prevInherited
	case c.From.Field != "":
		f := dst.reg.Fields[c.toIdx]
		dst.reg.Fields = deleteAt(dst.reg.Fields, c.toIdx)
		src.reg.Fields = insertAt(src.reg.Fields, c.fromIdx, f)
		restoreOverride(src, c.prevSrcReg)
		restoreOverride(dst, c.prevDstReg)
	default:
		r := dst.per.Registers[c.toIdx]
		dst.per.Registers = deleteAt(dst.per.Registers, c.toIdx)
		src.per.Registers = insertAt(src.per.Registers, c.fromIdx, r)
		r.Inherited = c.prevInherited
	}
}

// srcParent strips the moved component from a source path, leaving its
// original parent.
func srcParent(p Path) Path {
	switch {
	case p.Interrupt != "":
		p.Interrupt = ""
	case p.Field != "":
		p.Field = ""
	default:
		p.Register = ""
	}
	return p
}

func (c *MoveCommand) Description() string {
	return fmt.Sprintf("move %s under %s", c.From, c.To)
}
