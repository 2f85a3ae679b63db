package svd

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/svd-tools/svd-go/pkg/model"
)

// Parse decodes SVD XML bytes into a raw device model.
//
// The raw model reflects exactly what was written: optional attributes that
// are absent stay nil and derivedFrom chains are not resolved. Malformed
// markup returns a *ParseError immediately; missing required elements and
// illegal value forms are collected document-wide and returned as
// SchemaErrors with a nil device.
func Parse(data []byte) (*model.Device, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var raw deviceElement
	if err := dec.Decode(&raw); err != nil {
		if syn, ok := err.(*xml.SyntaxError); ok {
			return nil, &ParseError{Line: syn.Line, Offset: dec.InputOffset(), Msg: syn.Msg}
		}
		return nil, &ParseError{Offset: dec.InputOffset(), Msg: err.Error()}
	}

	c := &converter{}
	dev := c.device(&raw)
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return dev, nil
}

// converter walks the raw element tree, normalizing values and collecting
// schema errors instead of stopping at the first.
type converter struct {
	errs SchemaErrors
}

func (c *converter) errorf(path, format string, args ...any) {
	c.errs = append(c.errs, &SchemaError{Path: path, Msg: fmt.Sprintf(format, args...)})
}

// number converts a required numeric element, recording an error when it is
// absent or malformed.
func (c *converter) number(path, elem, s string) uint64 {
	s = strings.TrimSpace(s)
	if s == "" {
		c.errorf(path, "missing required element <%s>", elem)
		return 0
	}
	v, err := parseNumber(s)
	if err != nil {
		c.errorf(path, "<%s>: %v", elem, err)
		return 0
	}
	return v
}

// optNumber converts an optional numeric element; absence yields nil.
func (c *converter) optNumber(path, elem, s string) *uint64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := parseNumber(s)
	if err != nil {
		c.errorf(path, "<%s>: %v", elem, err)
		return nil
	}
	return &v
}

func (c *converter) optAccess(path, s string) *model.Access {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	a, err := model.ParseAccess(s)
	if err != nil {
		c.errorf(path, "<access>: %v", err)
		return nil
	}
	return &a
}

func (c *converter) name(path, elem, s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		c.errorf(path, "missing required element <%s>", elem)
		return "", false
	}
	return s, true
}

func (c *converter) device(raw *deviceElement) *model.Device {
	const path = "device"
	dev := &model.Device{
		Name:          strings.TrimSpace(raw.Name),
		Version:       strings.TrimSpace(raw.Version),
		Description:   strings.TrimSpace(raw.Description),
		Vendor:        strings.TrimSpace(raw.Vendor),
		Copyright:     strings.TrimSpace(raw.Copyright),
		SchemaVersion: strings.TrimSpace(raw.SchemaVersion),
	}

	if v := c.optNumber(path, "addressUnitBits", raw.AddressUnitBits); v != nil {
		dev.AddressUnitBits = *v
	}
	if v := c.optNumber(path, "width", raw.Width); v != nil {
		dev.Width = *v
	}
	dev.Size = c.optNumber(path, "size", raw.Size)
	dev.Access = c.optAccess(path, raw.Access)
	dev.ResetValue = c.optNumber(path, "resetValue", raw.ResetValue)
	dev.ResetMask = c.optNumber(path, "resetMask", raw.ResetMask)

	if raw.CPU != nil {
		dev.CPU = c.cpu(raw.CPU)
	}

	for i := range raw.Peripherals.Elements {
		p := c.peripheral(&raw.Peripherals.Elements[i], i)
		dev.Peripherals = append(dev.Peripherals, p)
	}
	return dev
}

func (c *converter) cpu(raw *cpuElement) *model.CPU {
	const path = "device/cpu"
	cpu := &model.CPU{
		Name:     strings.TrimSpace(raw.Name),
		Revision: strings.TrimSpace(raw.Revision),
		Endian:   strings.TrimSpace(raw.Endian),
	}
	cpu.MPUPresent = c.optBool(path, "mpuPresent", raw.MPUPresent)
	cpu.FPUPresent = c.optBool(path, "fpuPresent", raw.FPUPresent)
	if v := c.optNumber(path, "nvicPrioBits", raw.NVICPrioBits); v != nil {
		cpu.NVICPrioBits = *v
	}
	cpu.VendorSystickConfig = c.optBool(path, "vendorSystickConfig", raw.VendorSystickConfig)
	return cpu
}

func (c *converter) optBool(path, elem, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.errorf(path, "<%s>: invalid boolean %q", elem, s)
		return false
	}
	return v
}

func (c *converter) peripheral(raw *peripheralElement, idx int) *model.Peripheral {
	path := fmt.Sprintf("device/peripherals/peripheral[%d]", idx)

	p := &model.Peripheral{
		DisplayName: strings.TrimSpace(raw.DisplayName),
		Description: strings.TrimSpace(raw.Description),
		GroupName:   strings.TrimSpace(raw.GroupName),
		DerivedFrom: strings.TrimSpace(raw.DerivedFrom),
	}
	p.Name, _ = c.name(path, "name", raw.Name)

	p.BaseAddress = c.optNumber(path, "baseAddress", raw.BaseAddress)
	p.Size = c.optNumber(path, "size", raw.Size)
	p.Access = c.optAccess(path, raw.Access)
	p.ResetValue = c.optNumber(path, "resetValue", raw.ResetValue)
	p.ResetMask = c.optNumber(path, "resetMask", raw.ResetMask)

	if raw.AddressBlock != nil {
		abPath := path + "/addressBlock"
		ab := &model.AddressBlock{Usage: strings.TrimSpace(raw.AddressBlock.Usage)}
		if v := c.optNumber(abPath, "offset", raw.AddressBlock.Offset); v != nil {
			ab.Offset = *v
		}
		if v := c.optNumber(abPath, "size", raw.AddressBlock.Size); v != nil {
			ab.Size = *v
		}
		p.AddressBlock = ab
	}

	for i := range raw.Interrupts {
		irq := c.interrupt(&raw.Interrupts[i], fmt.Sprintf("%s/interrupt[%d]", path, i))
		p.Interrupts = append(p.Interrupts, irq)
	}

	for i := range raw.Registers.Elements {
		r := c.register(&raw.Registers.Elements[i], fmt.Sprintf("%s/registers/register[%d]", path, i))
		p.Registers = append(p.Registers, r)
	}
	return p
}

func (c *converter) interrupt(raw *interruptElement, path string) *model.Interrupt {
	irq := &model.Interrupt{Description: strings.TrimSpace(raw.Description)}
	irq.Name, _ = c.name(path, "name", raw.Name)
	irq.Value = c.number(path, "value", raw.Value)
	return irq
}

func (c *converter) register(raw *registerElement, path string) *model.Register {
	r := &model.Register{
		DisplayName: strings.TrimSpace(raw.DisplayName),
		Description: strings.TrimSpace(raw.Description),
	}
	r.Name, _ = c.name(path, "name", raw.Name)
	r.AddressOffset = c.number(path, "addressOffset", raw.AddressOffset)

	r.Size = c.optNumber(path, "size", raw.Size)
	r.Access = c.optAccess(path, raw.Access)
	r.ResetValue = c.optNumber(path, "resetValue", raw.ResetValue)
	r.ResetMask = c.optNumber(path, "resetMask", raw.ResetMask)

	for i := range raw.Fields.Elements {
		f := c.field(&raw.Fields.Elements[i], fmt.Sprintf("%s/fields/field[%d]", path, i))
		r.Fields = append(r.Fields, f)
	}
	return r
}

func (c *converter) field(raw *fieldElement, path string) *model.Field {
	f := &model.Field{
		DisplayName: strings.TrimSpace(raw.DisplayName),
		Description: strings.TrimSpace(raw.Description),
	}
	f.Name, _ = c.name(path, "name", raw.Name)
	f.BitOffset = c.number(path, "bitOffset", raw.BitOffset)
	f.BitWidth = c.number(path, "bitWidth", raw.BitWidth)
	f.Access = c.optAccess(path, raw.Access)

	if raw.EnumeratedValues != nil {
		evPath := path + "/enumeratedValues"
		ev := &model.EnumeratedValues{Name: strings.TrimSpace(raw.EnumeratedValues.Name)}
		for i := range raw.EnumeratedValues.Elements {
			e := &raw.EnumeratedValues.Elements[i]
			vPath := fmt.Sprintf("%s/enumeratedValue[%d]", evPath, i)
			val := &model.EnumeratedValue{Description: strings.TrimSpace(e.Description)}
			val.Name, _ = c.name(vPath, "name", e.Name)
			val.Value = c.number(vPath, "value", e.Value)
			ev.Values = append(ev.Values, val)
		}
		f.EnumeratedValues = ev
	}
	return f
}
