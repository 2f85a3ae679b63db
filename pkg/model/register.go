package model

// Register describes one register within a peripheral.
type Register struct {
	Name        string
	DisplayName string
	Description string

	// AddressOffset is the register's offset from the peripheral base
	// address, in address units.
	AddressOffset uint64

	// Size is the register width in bits. Nil inherits the peripheral or
	// device default.
	Size       *uint64
	Access     *Access
	ResetValue *uint64
	ResetMask  *uint64

	// Inherited marks a register that entered this peripheral through
	// derivedFrom resolution rather than direct declaration. The generator
	// skips inherited registers when re-emitting a derived peripheral in
	// minimal form. Always false in a raw parsed model.
	Inherited bool

	Fields []*Field
}

// Field describes a bit field within a register.
type Field struct {
	Name        string
	DisplayName string
	Description string

	BitOffset uint64
	BitWidth  uint64

	Access *Access

	EnumeratedValues *EnumeratedValues
}

// EnumeratedValues is the set of documented values a field can take.
type EnumeratedValues struct {
	Name   string
	Values []*EnumeratedValue
}

// EnumeratedValue documents one legal value of a field.
type EnumeratedValue struct {
	Name        string
	Description string
	Value       uint64
}

// Field returns the field with the given name.
func (r *Register) Field(name string) (*Field, error) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, ErrFieldNotFound
}

// FieldIndex returns the position of the named field, or -1.
func (r *Register) FieldIndex(name string) int {
	for i, f := range r.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// BitRange returns the inclusive bit range [lsb, msb] of a field.
func (f *Field) BitRange() (lsb, msb uint64) {
	if f.BitWidth == 0 {
		return f.BitOffset, f.BitOffset
	}
	return f.BitOffset, f.BitOffset + f.BitWidth - 1
}
