package svd

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/svd-tools/svd-go/pkg/model"
)

// Generate serializes a device to canonical SVD XML bytes.
//
// Peripherals, registers and fields are emitted in model order with a fixed
// per-element child order, two-space indentation and the canonical numeric
// formatting policy. Peripherals carrying derivedFrom are emitted in minimal
// form: only their own directly declared registers and interrupts plus the
// derivedFrom attribute.
func Generate(dev *model.Device) []byte {
	w := &xmlWriter{}
	w.line(`<?xml version="1.0" encoding="utf-8"?>`)

	attrs := ""
	if dev.SchemaVersion != "" {
		attrs = fmt.Sprintf(` schemaVersion="%s"`, escape(dev.SchemaVersion))
	}
	w.linef("<device%s>", attrs)
	w.push()

	w.elem("name", dev.Name)
	w.elem("version", dev.Version)
	w.elem("description", dev.Description)
	w.optElem("vendor", dev.Vendor)
	w.optElem("copyright", dev.Copyright)

	if dev.CPU != nil {
		writeCPU(w, dev.CPU)
	}

	w.elem("addressUnitBits", decimal(dev.AddressUnitBits))
	w.elem("width", decimal(dev.Width))
	w.optNum(decimal, "size", dev.Size)
	if dev.Access != nil {
		w.elem("access", dev.Access.String())
	}
	w.optNum(formatHex32, "resetValue", dev.ResetValue)
	w.optNum(formatHex32, "resetMask", dev.ResetMask)

	w.line("<peripherals>")
	w.push()
	for _, p := range dev.Peripherals {
		writePeripheral(w, p)
	}
	w.pop()
	w.line("</peripherals>")

	w.pop()
	w.line("</device>")
	return []byte(w.String())
}

func writeCPU(w *xmlWriter, cpu *model.CPU) {
	w.line("<cpu>")
	w.push()
	w.elem("name", cpu.Name)
	w.elem("revision", cpu.Revision)
	w.elem("endian", cpu.Endian)
	w.elem("mpuPresent", boolean(cpu.MPUPresent))
	w.elem("fpuPresent", boolean(cpu.FPUPresent))
	w.elem("nvicPrioBits", decimal(cpu.NVICPrioBits))
	w.elem("vendorSystickConfig", boolean(cpu.VendorSystickConfig))
	w.pop()
	w.line("</cpu>")
}

func writePeripheral(w *xmlWriter, p *model.Peripheral) {
	if p.DerivedFrom != "" {
		w.linef(`<peripheral derivedFrom="%s">`, escape(p.DerivedFrom))
	} else {
		w.line("<peripheral>")
	}
	w.push()

	w.elem("name", p.Name)
	w.optElem("displayName", p.DisplayName)
	w.optElem("description", p.Description)
	w.optElem("groupName", p.GroupName)
	w.optNum(formatHex32, "baseAddress", p.BaseAddress)
	w.optNum(decimal, "size", p.Size)
	if p.Access != nil {
		w.elem("access", p.Access.String())
	}
	w.optNum(formatHex32, "resetValue", p.ResetValue)
	w.optNum(formatHex32, "resetMask", p.ResetMask)

	if p.AddressBlock != nil {
		w.line("<addressBlock>")
		w.push()
		w.elem("offset", formatHex(p.AddressBlock.Offset))
		w.elem("size", formatHex(p.AddressBlock.Size))
		w.optElem("usage", p.AddressBlock.Usage)
		w.pop()
		w.line("</addressBlock>")
	}

	for _, irq := range p.Interrupts {
		if p.DerivedFrom != "" && irq.Inherited {
			continue
		}
		w.line("<interrupt>")
		w.push()
		w.elem("name", irq.Name)
		w.optElem("description", irq.Description)
		w.elem("value", decimal(irq.Value))
		w.pop()
		w.line("</interrupt>")
	}

	var own []*model.Register
	for _, r := range p.Registers {
		if p.DerivedFrom != "" && r.Inherited {
			continue
		}
		own = append(own, r)
	}
	if len(own) > 0 {
		w.line("<registers>")
		w.push()
		for _, r := range own {
			writeRegister(w, r)
		}
		w.pop()
		w.line("</registers>")
	}

	w.pop()
	w.line("</peripheral>")
}

func writeRegister(w *xmlWriter, r *model.Register) {
	w.line("<register>")
	w.push()

	w.elem("name", r.Name)
	w.optElem("displayName", r.DisplayName)
	w.optElem("description", r.Description)
	w.elem("addressOffset", formatHex32(r.AddressOffset))
	w.optNum(decimal, "size", r.Size)
	if r.Access != nil {
		w.elem("access", r.Access.String())
	}
	w.optNum(formatHex32, "resetValue", r.ResetValue)
	w.optNum(formatHex32, "resetMask", r.ResetMask)

	if len(r.Fields) > 0 {
		w.line("<fields>")
		w.push()
		for _, f := range r.Fields {
			writeField(w, f)
		}
		w.pop()
		w.line("</fields>")
	}

	w.pop()
	w.line("</register>")
}

func writeField(w *xmlWriter, f *model.Field) {
	w.line("<field>")
	w.push()

	w.elem("name", f.Name)
	w.optElem("displayName", f.DisplayName)
	w.optElem("description", f.Description)
	w.elem("bitOffset", decimal(f.BitOffset))
	w.elem("bitWidth", decimal(f.BitWidth))
	if f.Access != nil {
		w.elem("access", f.Access.String())
	}

	if ev := f.EnumeratedValues; ev != nil {
		w.line("<enumeratedValues>")
		w.push()
		w.optElem("name", ev.Name)
		for _, v := range ev.Values {
			w.line("<enumeratedValue>")
			w.push()
			w.elem("name", v.Name)
			w.optElem("description", v.Description)
			w.elem("value", formatHex(v.Value))
			w.pop()
			w.line("</enumeratedValue>")
		}
		w.pop()
		w.line("</enumeratedValues>")
	}

	w.pop()
	w.line("</field>")
}

// xmlWriter emits indented XML lines with two-space indentation.
type xmlWriter struct {
	sb    strings.Builder
	depth int
}

func (w *xmlWriter) push() { w.depth++ }
func (w *xmlWriter) pop()  { w.depth-- }

func (w *xmlWriter) line(s string) {
	for i := 0; i < w.depth; i++ {
		w.sb.WriteString("  ")
	}
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *xmlWriter) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

// elem writes a single-line element. Empty values produce an empty element so
// that required children are always present.
func (w *xmlWriter) elem(tag, value string) {
	w.linef("<%s>%s</%s>", tag, escape(value), tag)
}

// optElem writes an element only when the value is non-empty.
func (w *xmlWriter) optElem(tag, value string) {
	if value != "" {
		w.elem(tag, value)
	}
}

// optNum writes a numeric element only when the value is set.
func (w *xmlWriter) optNum(format func(uint64) string, tag string, v *uint64) {
	if v != nil {
		w.elem(tag, format(*v))
	}
}

func (w *xmlWriter) String() string {
	return w.sb.String()
}

func decimal(v uint64) string {
	return fmt.Sprintf("%d", v)
}

func boolean(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func escape(s string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return s
	}
	return sb.String()
}
