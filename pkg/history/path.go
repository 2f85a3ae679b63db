package history

import (
	"regexp"
	"strings"

	"github.com/svd-tools/svd-go/pkg/model"
)

// Path names a node in the device tree. Valid shapes:
//
//	{}                                  the device itself
//	{Peripheral: "GPIOA"}               a peripheral
//	{Peripheral: "GPIOA", Register: "CTRL"}             a register
//	{Peripheral: "GPIOA", Register: "CTRL", Field: "EN"} a field
//	{Peripheral: "GPIOA", Interrupt: "GPIOA_IRQ"}        an interrupt
type Path struct {
	Peripheral string
	Register   string
	Field      string
	Interrupt  string
}

func (p Path) String() string {
	if p.Peripheral == "" {
		return "device"
	}
	if p.Interrupt != "" {
		return p.Peripheral + "/irq:" + p.Interrupt
	}
	parts := []string{p.Peripheral}
	if p.Register != "" {
		parts = append(parts, p.Register)
		if p.Field != "" {
			parts = append(parts, p.Field)
		}
	}
	return strings.Join(parts, "/")
}

// node is a resolved Path: the deepest non-nil pointer is the addressed
// entity, the ones above it let commands reach sibling lists and
// inheritance markers. dev is always set.
type node struct {
	dev   *model.Device
	per   *model.Peripheral
	reg   *model.Register
	field *model.Field
	irq   *model.Interrupt
}

// lookup resolves p against dev. A node with only dev set is the device
// itself.
func lookup(op string, dev *model.Device, p Path) (node, *CommandError) {
	n := node{dev: dev}
	var err error
	if p.Peripheral == "" {
		return n, nil
	}
	if n.per, err = dev.Peripheral(p.Peripheral); err != nil {
		return n, rejectf(op, "no peripheral %q", p.Peripheral)
	}
	if p.Interrupt != "" {
		if n.irq, err = n.per.Interrupt(p.Interrupt); err != nil {
			return n, rejectf(op, "no interrupt %q in %s", p.Interrupt, p.Peripheral)
		}
		return n, nil
	}
	if p.Register == "" {
		return n, nil
	}
	if n.reg, err = n.per.Register(p.Register); err != nil {
		return n, rejectf(op, "no register %q in %s", p.Register, p.Peripheral)
	}
	if p.Field == "" {
		return n, nil
	}
	if n.field, err = n.reg.Field(p.Field); err != nil {
		return n, rejectf(op, "no field %q in %s/%s", p.Field, p.Peripheral, p.Register)
	}
	return n, nil
}

var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkName(op, name string) *CommandError {
	if !nameRE.MatchString(name) {
		return rejectf(op, "invalid name %q", name)
	}
	return nil
}
