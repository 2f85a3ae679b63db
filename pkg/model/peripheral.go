package model

// Peripheral describes one memory-mapped peripheral of a device.
type Peripheral struct {
	Name        string
	DisplayName string
	Description string
	GroupName   string

	// BaseAddress is the absolute base address of the peripheral's register
	// block. Nil means unset; a derived peripheral then inherits the base's
	// effective value during resolution.
	BaseAddress *uint64

	// DerivedFrom names the peripheral whose register and interrupt layout
	// this peripheral reuses. Empty for a standalone peripheral. This is a
	// name reference into the owning device, never a pointer.
	DerivedFrom string

	AddressBlock *AddressBlock

	// Per-peripheral register defaults. Nil means unset; registers fall back
	// to the device defaults.
	Size       *uint64
	Access     *Access
	ResetValue *uint64
	ResetMask  *uint64

	Registers  []*Register
	Interrupts []*Interrupt
}

// AddressBlock describes the address range a peripheral occupies relative to
// its base address.
type AddressBlock struct {
	Offset uint64
	Size   uint64
	Usage  string
}

// Interrupt associates an interrupt line with its owning peripheral.
type Interrupt struct {
	Name        string
	Description string
	Value       uint64

	// Inherited marks an interrupt merged in by derivedFrom resolution.
	// See Register.Inherited.
	Inherited bool
}

// Register returns the register with the given name.
func (p *Peripheral) Register(name string) (*Register, error) {
	for _, r := range p.Registers {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, ErrRegisterNotFound
}

// RegisterIndex returns the position of the named register, or -1.
func (p *Peripheral) RegisterIndex(name string) int {
	for i, r := range p.Registers {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// Interrupt returns the interrupt with the given name.
func (p *Peripheral) Interrupt(name string) (*Interrupt, error) {
	for _, irq := range p.Interrupts {
		if irq.Name == name {
			return irq, nil
		}
	}
	return nil, ErrInterruptNotFound
}

// InterruptIndex returns the position of the named interrupt, or -1.
func (p *Peripheral) InterruptIndex(name string) int {
	for i, irq := range p.Interrupts {
		if irq.Name == name {
			return i
		}
	}
	return -1
}

// IsDerived reports whether this peripheral reuses another peripheral's
// layout.
func (p *Peripheral) IsDerived() bool {
	return p.DerivedFrom != ""
}
