package model

func equalUint64(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalAccess(a, b *Access) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Equal reports structural equality: every peripheral, register, field and
// interrupt at every position has equal attributes and equal ordered
// children. Whitespace and comment artifacts of a source document never
// enter the model and so never affect equality.
func (d *Device) Equal(o *Device) bool {
	if d == nil || o == nil {
		return d == nil && o == nil
	}
	if d.Name != o.Name || d.Version != o.Version || d.Description != o.Description ||
		d.Vendor != o.Vendor || d.Copyright != o.Copyright || d.SchemaVersion != o.SchemaVersion ||
		d.AddressUnitBits != o.AddressUnitBits || d.Width != o.Width {
		return false
	}
	if !equalUint64(d.Size, o.Size) || !equalAccess(d.Access, o.Access) ||
		!equalUint64(d.ResetValue, o.ResetValue) || !equalUint64(d.ResetMask, o.ResetMask) {
		return false
	}
	if (d.CPU == nil) != (o.CPU == nil) {
		return false
	}
	if d.CPU != nil && *d.CPU != *o.CPU {
		return false
	}
	if len(d.Peripherals) != len(o.Peripherals) {
		return false
	}
	for i := range d.Peripherals {
		if !d.Peripherals[i].Equal(o.Peripherals[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two peripherals.
func (p *Peripheral) Equal(o *Peripheral) bool {
	if p == nil || o == nil {
		return p == nil && o == nil
	}
	if p.Name != o.Name || p.DisplayName != o.DisplayName || p.Description != o.Description ||
		p.GroupName != o.GroupName || p.DerivedFrom != o.DerivedFrom {
		return false
	}
	if !equalUint64(p.BaseAddress, o.BaseAddress) || !equalUint64(p.Size, o.Size) ||
		!equalAccess(p.Access, o.Access) || !equalUint64(p.ResetValue, o.ResetValue) ||
		!equalUint64(p.ResetMask, o.ResetMask) {
		return false
	}
	if (p.AddressBlock == nil) != (o.AddressBlock == nil) {
		return false
	}
	if p.AddressBlock != nil && *p.AddressBlock != *o.AddressBlock {
		return false
	}
	if len(p.Registers) != len(o.Registers) || len(p.Interrupts) != len(o.Interrupts) {
		return false
	}
	for i := range p.Registers {
		if !p.Registers[i].Equal(o.Registers[i]) {
			return false
		}
	}
	for i := range p.Interrupts {
		if *p.Interrupts[i] != *o.Interrupts[i] {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two registers.
func (r *Register) Equal(o *Register) bool {
	if r == nil || o == nil {
		return r == nil && o == nil
	}
	if r.Name != o.Name || r.DisplayName != o.DisplayName || r.Description != o.Description ||
		r.AddressOffset != o.AddressOffset || r.Inherited != o.Inherited {
		return false
	}
	if !equalUint64(r.Size, o.Size) || !equalAccess(r.Access, o.Access) ||
		!equalUint64(r.ResetValue, o.ResetValue) || !equalUint64(r.ResetMask, o.ResetMask) {
		return false
	}
	if len(r.Fields) != len(o.Fields) {
		return false
	}
	for i := range r.Fields {
		if !r.Fields[i].Equal(o.Fields[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two fields.
func (f *Field) Equal(o *Field) bool {
	if f == nil || o == nil {
		return f == nil && o == nil
	}
	if f.Name != o.Name || f.DisplayName != o.DisplayName || f.Description != o.Description ||
		f.BitOffset != o.BitOffset || f.BitWidth != o.BitWidth {
		return false
	}
	if !equalAccess(f.Access, o.Access) {
		return false
	}
	fe, oe := f.EnumeratedValues, o.EnumeratedValues
	if (fe == nil) != (oe == nil) {
		return false
	}
	if fe != nil {
		if fe.Name != oe.Name || len(fe.Values) != len(oe.Values) {
			return false
		}
		for i := range fe.Values {
			if *fe.Values[i] != *oe.Values[i] {
				return false
			}
		}
	}
	return true
}
