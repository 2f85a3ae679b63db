package history

import (
	"fmt"

	"github.com/svd-tools/svd-go/pkg/model"
)

// Command is one reversible edit of a device model. Apply validates all
// preconditions before touching the model; when it returns an error the
// model is unchanged. Undo inverts a successful Apply using state the
// command captured at apply time, so it must only be called through a
// History that keeps model and stacks in step.
type Command interface {
	Apply(dev *model.Device) error
	Undo(dev *model.Device)
	Description() string
}

// markOverride clears the inherited marker on the register or interrupt a
// mutation touched and returns the previous marker, so the generator emits
// the node as a direct declaration from now on.
func markOverride(n node) bool {
	switch {
	case n.reg != nil:
		prev := n.reg.Inherited
		n.reg.Inherited = false
		return prev
	case n.irq != nil:
		prev := n.irq.Inherited
		n.irq.Inherited = false
		return prev
	}
	return false
}

func restoreOverride(n node, prev bool) {
	switch {
	case n.reg != nil:
		n.reg.Inherited = prev
	case n.irq != nil:
		n.irq.Inherited = prev
	}
}

// RenameCommand renames the node at Target. Peripheral renames also retarget
// derivedFrom references that point at the old name, so derivations never go
// dangling through a rename.
type RenameCommand struct {
	Target  Path
	NewName string

	prev          string
	prevInherited bool
	relinked      []int
}

func (c *RenameCommand) Apply(dev *model.Device) error {
	const op = "rename"
	if err := checkName(op, c.NewName); err != nil {
		return err
	}
	n, err := lookup(op, dev, c.Target)
	if err != nil {
		return err
	}
	switch {
	case n.irq != nil:
		if n.per.InterruptIndex(c.NewName) != -1 {
			return rejectf(op, "interrupt %q already exists in %s", c.NewName, n.per.Name)
		}
		c.prev, n.irq.Name = n.irq.Name, c.NewName
	case n.field != nil:
		if n.reg.FieldIndex(c.NewName) != -1 {
			return rejectf(op, "field %q already exists in %s/%s", c.NewName, n.per.Name, n.reg.Name)
		}
		c.prev, n.field.Name = n.field.Name, c.NewName
	case n.reg != nil:
		if n.per.RegisterIndex(c.NewName) != -1 {
			return rejectf(op, "register %q already exists in %s", c.NewName, n.per.Name)
		}
		c.prev, n.reg.Name = n.reg.Name, c.NewName
	case n.per != nil:
		if dev.PeripheralIndex(c.NewName) != -1 {
			return rejectf(op, "peripheral %q already exists", c.NewName)
		}
		c.prev, n.per.Name = n.per.Name, c.NewName
		c.relinked = c.relinked[:0]
		for i, p := range dev.Peripherals {
			if p.DerivedFrom == c.prev {
				p.DerivedFrom = c.NewName
				c.relinked = append(c.relinked, i)
			}
		}
	default:
		c.prev, dev.Name = dev.Name, c.NewName
	}
	c.prevInherited = markOverride(n)
	return nil
}

func (c *RenameCommand) Undo(dev *model.Device) {
	// Target now carries the new name; rebuild the path to find the node.
	n, _ := lookup("rename", dev, c.renamedPath())
	switch {
	case n.irq != nil:
		n.irq.Name = c.prev
	case n.field != nil:
		n.field.Name = c.prev
	case n.reg != nil:
		n.reg.Name = c.prev
	case n.per != nil:
		n.per.Name = c.prev
		for _, i := range c.relinked {
			dev.Peripherals[i].DerivedFrom = c.prev
		}
	default:
		dev.Name = c.prev
	}
	restoreOverride(n, c.prevInherited)
}

// renamedPath is Target with the renamed component replaced by NewName.
func (c *RenameCommand) renamedPath() Path {
	p := c.Target
	switch {
	case p.Interrupt != "":
		p.Interrupt = c.NewName
	case p.Field != "":
		p.Field = c.NewName
	case p.Register != "":
		p.Register = c.NewName
	case p.Peripheral != "":
		p.Peripheral = c.NewName
	}
	return p
}

func (c *RenameCommand) Description() string {
	return fmt.Sprintf("rename %s to %s", c.Target, c.NewName)
}

// SetAttributeCommand sets one scalar attribute on the node at Target.
// Value is textual input: numbers accept decimal, 0x and 0b forms, and an
// empty string clears an optional attribute.
type SetAttributeCommand struct {
	Target Path
	Attr   Attr
	Value  string

	prev          attrValue
	prevInherited bool
}

func (c *SetAttributeCommand) Apply(dev *model.Device) error {
	const op = "set"
	v, err := parseAttr(op, c.Attr, c.Value)
	if err != nil {
		return err
	}
	if c.Attr == AttrBitWidth && v.num != nil && *v.num == 0 {
		return rejectf(op, "bitWidth must be positive")
	}
	n, err := lookup(op, dev, c.Target)
	if err != nil {
		return err
	}
	c.prev, err = getAttr(op, n, c.Attr)
	if err != nil {
		return err
	}
	setAttr(n, c.Attr, v)
	c.prevInherited = markOverride(n)
	return nil
}

func (c *SetAttributeCommand) Undo(dev *model.Device) {
	n, _ := lookup("set", dev, c.Target)
	setAttr(n, c.Attr, c.prev)
	restoreOverride(n, c.prevInherited)
}

func (c *SetAttributeCommand) Description() string {
	return fmt.Sprintf("set %s.%s = %q", c.Target, c.Attr, c.Value)
}
