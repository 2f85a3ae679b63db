package model

import (
	"errors"
	"testing"
)

func u64(v uint64) *uint64 { return &v }

func acc(a Access) *Access { return &a }

func testDevice() *Device {
	return &Device{
		Name:            "SC32F1",
		Version:         "1.0",
		AddressUnitBits: 8,
		Width:           32,
		Size:            u64(32),
		ResetValue:      u64(0),
		Peripherals: []*Peripheral{
			{
				Name:        "GPIOA",
				BaseAddress: u64(0x40010000),
				Registers: []*Register{
					{
						Name:          "CTRL",
						AddressOffset: 0x0,
						Fields: []*Field{
							{Name: "EN", BitOffset: 0, BitWidth: 1},
							{Name: "MODE", BitOffset: 1, BitWidth: 2, Access: acc(AccessReadOnly)},
						},
					},
					{Name: "STAT", AddressOffset: 0x4, Size: u64(16)},
				},
				Interrupts: []*Interrupt{{Name: "GPIOA_IRQ", Value: 7}},
			},
			{
				Name:        "GPIOB",
				DerivedFrom: "GPIOA",
				BaseAddress: u64(0x40010400),
			},
		},
	}
}

func TestDeviceLookups(t *testing.T) {
	dev := testDevice()

	p, err := dev.Peripheral("GPIOA")
	if err != nil {
		t.Fatalf("Peripheral(GPIOA) failed: %v", err)
	}
	if p.Name != "GPIOA" {
		t.Errorf("Name = %q, want GPIOA", p.Name)
	}

	if _, err := dev.Peripheral("UART0"); !errors.Is(err, ErrPeripheralNotFound) {
		t.Errorf("missing peripheral error = %v, want ErrPeripheralNotFound", err)
	}

	r, err := p.Register("CTRL")
	if err != nil {
		t.Fatalf("Register(CTRL) failed: %v", err)
	}
	if _, err := r.Field("EN"); err != nil {
		t.Errorf("Field(EN) failed: %v", err)
	}
	if _, err := r.Field("NOPE"); !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("missing field error = %v, want ErrFieldNotFound", err)
	}

	if got := dev.PeripheralIndex("GPIOB"); got != 1 {
		t.Errorf("PeripheralIndex(GPIOB) = %d, want 1", got)
	}
	if got := dev.PeripheralIndex("UART0"); got != -1 {
		t.Errorf("PeripheralIndex(UART0) = %d, want -1", got)
	}
}

func TestInterruptsView(t *testing.T) {
	dev := testDevice()
	irqs := dev.Interrupts()
	if len(irqs) != 1 {
		t.Fatalf("Interrupts() returned %d entries, want 1", len(irqs))
	}
	if irqs[0].Name != "GPIOA_IRQ" || irqs[0].Value != 7 {
		t.Errorf("unexpected interrupt %+v", irqs[0])
	}
}

func TestEffectiveDefaults(t *testing.T) {
	dev := testDevice()
	gpioa := dev.Peripherals[0]
	ctrl := gpioa.Registers[0]
	stat := gpioa.Registers[1]

	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"register inherits device size", EffectiveSize(dev, gpioa, ctrl), 32},
		{"explicit register size wins", EffectiveSize(dev, gpioa, stat), 16},
		{"reset value inherits device", EffectiveResetValue(dev, gpioa, ctrl), 0},
		{"reset mask built-in fallback", EffectiveResetMask(dev, gpioa, ctrl), 0xFFFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %#x, want %#x", tt.got, tt.want)
			}
		})
	}

	// Access falls back through the full chain.
	en, _ := ctrl.Field("EN")
	mode, _ := ctrl.Field("MODE")
	if got := EffectiveAccess(dev, gpioa, ctrl, en); got != AccessReadWrite {
		t.Errorf("EN access = %v, want read-write fallback", got)
	}
	if got := EffectiveAccess(dev, gpioa, ctrl, mode); got != AccessReadOnly {
		t.Errorf("MODE access = %v, want explicit read-only", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	dev := testDevice()
	cp := dev.Clone()

	if !dev.Equal(cp) {
		t.Fatal("clone is not structurally equal to original")
	}

	// Mutating the clone must not leak into the original.
	cp.Peripherals[0].Name = "RENAMED"
	cp.Peripherals[0].Registers[0].Fields[0].BitWidth = 9
	*cp.Peripherals[0].BaseAddress = 0xDEAD

	if dev.Peripherals[0].Name != "GPIOA" {
		t.Error("peripheral rename leaked into original")
	}
	if dev.Peripherals[0].Registers[0].Fields[0].BitWidth != 1 {
		t.Error("field mutation leaked into original")
	}
	if *dev.Peripherals[0].BaseAddress != 0x40010000 {
		t.Error("base address mutation leaked into original")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Device)
		want   bool
	}{
		{"identical", func(*Device) {}, true},
		{"renamed peripheral", func(d *Device) { d.Peripherals[0].Name = "X" }, false},
		{"changed offset", func(d *Device) { d.Peripherals[0].Registers[1].AddressOffset = 8 }, false},
		{"unset vs explicit size", func(d *Device) { d.Peripherals[0].Registers[1].Size = nil }, false},
		{"reordered fields", func(d *Device) {
			f := d.Peripherals[0].Registers[0].Fields
			f[0], f[1] = f[1], f[0]
		}, false},
		{"dropped interrupt", func(d *Device) { d.Peripherals[0].Interrupts = nil }, false},
		{"changed derivedFrom", func(d *Device) { d.Peripherals[1].DerivedFrom = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testDevice()
			b := testDevice()
			tt.mutate(b)
			if got := a.Equal(b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAccess(t *testing.T) {
	for _, ok := range []string{"read-write", "read-only", "write-only", "writeOnce", "read-writeOnce"} {
		if _, err := ParseAccess(ok); err != nil {
			t.Errorf("ParseAccess(%q) failed: %v", ok, err)
		}
	}
	if _, err := ParseAccess("rw"); err == nil {
		t.Error("ParseAccess(rw) succeeded, want error")
	}
}

func TestBitRange(t *testing.T) {
	f := &Field{Name: "MODE", BitOffset: 4, BitWidth: 3}
	lsb, msb := f.BitRange()
	if lsb != 4 || msb != 6 {
		t.Errorf("BitRange = [%d,%d], want [4,6]", lsb, msb)
	}
}
