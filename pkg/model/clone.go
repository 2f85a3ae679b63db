package model

func cloneUint64(v *uint64) *uint64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneAccess(a *Access) *Access {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// Clone returns a deep copy of the device. The copy shares no memory with the
// original; mutating one never affects the other.
func (d *Device) Clone() *Device {
	if d == nil {
		return nil
	}
	c := *d
	c.Size = cloneUint64(d.Size)
	c.Access = cloneAccess(d.Access)
	c.ResetValue = cloneUint64(d.ResetValue)
	c.ResetMask = cloneUint64(d.ResetMask)
	if d.CPU != nil {
		cpu := *d.CPU
		c.CPU = &cpu
	}
	c.Peripherals = make([]*Peripheral, len(d.Peripherals))
	for i, p := range d.Peripherals {
		c.Peripherals[i] = p.Clone()
	}
	return &c
}

// Clone returns a deep copy of the peripheral.
func (p *Peripheral) Clone() *Peripheral {
	if p == nil {
		return nil
	}
	c := *p
	c.BaseAddress = cloneUint64(p.BaseAddress)
	c.Size = cloneUint64(p.Size)
	c.Access = cloneAccess(p.Access)
	c.ResetValue = cloneUint64(p.ResetValue)
	c.ResetMask = cloneUint64(p.ResetMask)
	if p.AddressBlock != nil {
		ab := *p.AddressBlock
		c.AddressBlock = &ab
	}
	c.Registers = make([]*Register, len(p.Registers))
	for i, r := range p.Registers {
		c.Registers[i] = r.Clone()
	}
	c.Interrupts = make([]*Interrupt, len(p.Interrupts))
	for i, irq := range p.Interrupts {
		c.Interrupts[i] = irq.Clone()
	}
	return &c
}

// Clone returns a deep copy of the register.
func (r *Register) Clone() *Register {
	if r == nil {
		return nil
	}
	c := *r
	c.Size = cloneUint64(r.Size)
	c.Access = cloneAccess(r.Access)
	c.ResetValue = cloneUint64(r.ResetValue)
	c.ResetMask = cloneUint64(r.ResetMask)
	c.Fields = make([]*Field, len(r.Fields))
	for i, f := range r.Fields {
		c.Fields[i] = f.Clone()
	}
	return &c
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	c := *f
	c.Access = cloneAccess(f.Access)
	if f.EnumeratedValues != nil {
		ev := EnumeratedValues{Name: f.EnumeratedValues.Name}
		ev.Values = make([]*EnumeratedValue, len(f.EnumeratedValues.Values))
		for i, v := range f.EnumeratedValues.Values {
			vc := *v
			ev.Values[i] = &vc
		}
		c.EnumeratedValues = &ev
	}
	return &c
}

// Clone returns a copy of the interrupt.
func (i *Interrupt) Clone() *Interrupt {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
