package model

import "errors"

// Lookup errors.
var (
	ErrPeripheralNotFound = errors.New("peripheral not found")
	ErrRegisterNotFound   = errors.New("register not found")
	ErrFieldNotFound      = errors.New("field not found")
	ErrInterruptNotFound  = errors.New("interrupt not found")
)

// Built-in fallbacks used when a default is unset all the way up the tree.
const (
	DefaultAddressUnitBits = 8
	DefaultRegisterSize    = 32
	DefaultResetValue      = 0
	DefaultResetMask       = 0xFFFFFFFF
)

// Device is the root of the SVD model. It owns its peripherals exclusively
// and is replaced wholesale when a new document is loaded.
type Device struct {
	Name          string
	Version       string
	Description   string
	Vendor        string
	Copyright     string
	SchemaVersion string

	CPU *CPU

	// AddressUnitBits is the number of bits per addressable unit (normally 8).
	AddressUnitBits uint64

	// Width is the bus width of the device in bits.
	Width uint64

	// Device-wide register defaults. Nil means unset; children fall back to
	// the built-in defaults above.
	Size       *uint64
	Access     *Access
	ResetValue *uint64
	ResetMask  *uint64

	Peripherals []*Peripheral
}

// CPU describes the processor core of a device.
type CPU struct {
	Name                string
	Revision            string
	Endian              string
	MPUPresent          bool
	FPUPresent          bool
	NVICPrioBits        uint64
	VendorSystickConfig bool
}

// Peripheral returns the peripheral with the given name.
func (d *Device) Peripheral(name string) (*Peripheral, error) {
	for _, p := range d.Peripherals {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, ErrPeripheralNotFound
}

// PeripheralIndex returns the position of the named peripheral, or -1.
func (d *Device) PeripheralIndex(name string) int {
	for i, p := range d.Peripherals {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// PeripheralNames returns the peripheral names in document order.
func (d *Device) PeripheralNames() []string {
	names := make([]string, len(d.Peripherals))
	for i, p := range d.Peripherals {
		names[i] = p.Name
	}
	return names
}

// Interrupts returns a device-wide view of all interrupts in document order.
// The slice is derived; the interrupts remain owned by their peripherals.
func (d *Device) Interrupts() []*Interrupt {
	var irqs []*Interrupt
	for _, p := range d.Peripherals {
		irqs = append(irqs, p.Interrupts...)
	}
	return irqs
}

// EffectiveAddressUnitBits returns the device address unit size in bits.
func (d *Device) EffectiveAddressUnitBits() uint64 {
	if d.AddressUnitBits == 0 {
		return DefaultAddressUnitBits
	}
	return d.AddressUnitBits
}

// EffectiveSize returns the register's size in bits, falling back through the
// peripheral and device defaults. per may be nil when reg is detached.
func EffectiveSize(dev *Device, per *Peripheral, reg *Register) uint64 {
	if reg != nil && reg.Size != nil {
		return *reg.Size
	}
	if per != nil && per.Size != nil {
		return *per.Size
	}
	if dev != nil && dev.Size != nil {
		return *dev.Size
	}
	return DefaultRegisterSize
}

// EffectiveAccess returns the field's access, falling back through register,
// peripheral and device defaults. Returns AccessReadWrite when unset
// everywhere.
func EffectiveAccess(dev *Device, per *Peripheral, reg *Register, f *Field) Access {
	if f != nil && f.Access != nil {
		return *f.Access
	}
	if reg != nil && reg.Access != nil {
		return *reg.Access
	}
	if per != nil && per.Access != nil {
		return *per.Access
	}
	if dev != nil && dev.Access != nil {
		return *dev.Access
	}
	return AccessReadWrite
}

// EffectiveResetValue returns the register's reset value with default fallback.
func EffectiveResetValue(dev *Device, per *Peripheral, reg *Register) uint64 {
	if reg != nil && reg.ResetValue != nil {
		return *reg.ResetValue
	}
	if per != nil && per.ResetValue != nil {
		return *per.ResetValue
	}
	if dev != nil && dev.ResetValue != nil {
		return *dev.ResetValue
	}
	return DefaultResetValue
}

// EffectiveResetMask returns the register's reset mask with default fallback.
func EffectiveResetMask(dev *Device, per *Peripheral, reg *Register) uint64 {
	if reg != nil && reg.ResetMask != nil {
		return *reg.ResetMask
	}
	if per != nil && per.ResetMask != nil {
		return *per.ResetMask
	}
	if dev != nil && dev.ResetMask != nil {
		return *dev.ResetMask
	}
	return DefaultResetMask
}
