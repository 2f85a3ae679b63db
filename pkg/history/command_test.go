package history

import (
	"errors"
	"testing"

	"github.com/svd-tools/svd-go/pkg/model"
)

func u64(v uint64) *uint64 { return &v }

// editDevice builds GPIOA with CTRL (EN field) and STAT, GPIOB deriving from
// GPIOA with one own register, and an interrupt on GPIOA.
func editDevice() *model.Device {
	return &model.Device{
		Name: "TEST",
		Size: u64(32),
		Peripherals: []*model.Peripheral{
			{
				Name:        "GPIOA",
				BaseAddress: u64(0x40010000),
				Registers: []*model.Register{
					{
						Name:          "CTRL",
						AddressOffset: 0x0,
						Fields: []*model.Field{
							{Name: "EN", BitOffset: 0, BitWidth: 1},
							{Name: "MODE", BitOffset: 1, BitWidth: 2},
						},
					},
					{Name: "STAT", AddressOffset: 0x4},
				},
				Interrupts: []*model.Interrupt{
					{Name: "GPIOA_IRQ", Value: 7},
				},
			},
			{
				Name:        "GPIOB",
				DerivedFrom: "GPIOA",
				BaseAddress: u64(0x40010400),
				Registers: []*model.Register{
					{Name: "EXTRA", AddressOffset: 0x10},
				},
			},
		},
	}
}

// applyAndRevert checks the command applies cleanly and that undo restores
// structural equality with the starting model.
func applyAndRevert(t *testing.T, dev *model.Device, cmd Command) {
	t.Helper()
	before := dev.Clone()
	if err := cmd.Apply(dev); err != nil {
		t.Fatalf("%s: apply failed: %v", cmd.Description(), err)
	}
	if dev.Equal(before) {
		t.Fatalf("%s: apply changed nothing", cmd.Description())
	}
	cmd.Undo(dev)
	if !dev.Equal(before) {
		t.Fatalf("%s: undo did not restore the model", cmd.Description())
	}
}

func TestRenameRoundTrips(t *testing.T) {
	cmds := []Command{
		&RenameCommand{Target: Path{}, NewName: "OTHER"},
		&RenameCommand{Target: Path{Peripheral: "GPIOA"}, NewName: "GPIOC"},
		&RenameCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL"}, NewName: "CONTROL"},
		&RenameCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL", Field: "EN"}, NewName: "ENABLE"},
		&RenameCommand{Target: Path{Peripheral: "GPIOA", Interrupt: "GPIOA_IRQ"}, NewName: "EXTI0"},
	}
	for _, cmd := range cmds {
		applyAndRevert(t, editDevice(), cmd)
	}
}

func TestRenamePeripheralRelinksDerivations(t *testing.T) {
	dev := editDevice()
	cmd := &RenameCommand{Target: Path{Peripheral: "GPIOA"}, NewName: "GPIOC"}
	if err := cmd.Apply(dev); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if dev.Peripherals[1].DerivedFrom != "GPIOC" {
		t.Errorf("GPIOB derivedFrom = %q, want GPIOC", dev.Peripherals[1].DerivedFrom)
	}
	cmd.Undo(dev)
	if dev.Peripherals[1].DerivedFrom != "GPIOA" {
		t.Errorf("after undo derivedFrom = %q, want GPIOA", dev.Peripherals[1].DerivedFrom)
	}
}

func TestRenameRejections(t *testing.T) {
	tests := []struct {
		name string
		cmd  *RenameCommand
	}{
		{"sibling collision", &RenameCommand{Target: Path{Peripheral: "GPIOA"}, NewName: "GPIOB"}},
		{"invalid identifier", &RenameCommand{Target: Path{Peripheral: "GPIOA"}, NewName: "9bad name"}},
		{"empty name", &RenameCommand{Target: Path{Peripheral: "GPIOA"}, NewName: ""}},
		{"missing target", &RenameCommand{Target: Path{Peripheral: "NOPE"}, NewName: "FINE"}},
		{"field collision", &RenameCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL", Field: "EN"}, NewName: "MODE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := editDevice()
			before := dev.Clone()
			err := tt.cmd.Apply(dev)
			var cmdErr *CommandError
			if err == nil {
				t.Fatal("apply succeeded, want rejection")
			}
			if !errors.As(err, &cmdErr) {
				t.Fatalf("error type %T, want *CommandError", err)
			}
			if !dev.Equal(before) {
				t.Error("rejected command modified the model")
			}
		})
	}
}

func TestSetAttribute(t *testing.T) {
	tests := []struct {
		name string
		cmd  *SetAttributeCommand
	}{
		{"device description", &SetAttributeCommand{Target: Path{}, Attr: AttrDescription, Value: "changed"}},
		{"peripheral base address", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA"}, Attr: AttrBaseAddress, Value: "0x50000000"}},
		{"register size", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL"}, Attr: AttrSize, Value: "16"}},
		{"register access", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL"}, Attr: AttrAccess, Value: "read-only"}},
		{"field width", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL", Field: "MODE"}, Attr: AttrBitWidth, Value: "0b11"}},
		{"interrupt value", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA", Interrupt: "GPIOA_IRQ"}, Attr: AttrValue, Value: "9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applyAndRevert(t, editDevice(), tt.cmd)
		})
	}
}

func TestSetAttributeClearsOptional(t *testing.T) {
	dev := editDevice()
	cmd := &SetAttributeCommand{Target: Path{Peripheral: "GPIOA"}, Attr: AttrBaseAddress, Value: ""}
	if err := cmd.Apply(dev); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if dev.Peripherals[0].BaseAddress != nil {
		t.Error("baseAddress still set after clearing")
	}
	cmd.Undo(dev)
	if got := dev.Peripherals[0].BaseAddress; got == nil || *got != 0x40010000 {
		t.Errorf("baseAddress after undo = %v, want 0x40010000", got)
	}
}

func TestSetAttributeRejections(t *testing.T) {
	tests := []struct {
		name string
		cmd  *SetAttributeCommand
	}{
		{"bad number", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA"}, Attr: AttrBaseAddress, Value: "0xZZ"}},
		{"bad access", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL"}, Attr: AttrAccess, Value: "sometimes"}},
		{"required cleared", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL"}, Attr: AttrAddressOffset, Value: ""}},
		{"zero bit width", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL", Field: "EN"}, Attr: AttrBitWidth, Value: "0"}},
		{"attr on wrong kind", &SetAttributeCommand{Target: Path{Peripheral: "GPIOA"}, Attr: AttrBitWidth, Value: "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := editDevice()
			before := dev.Clone()
			if err := tt.cmd.Apply(dev); err == nil {
				t.Fatal("apply succeeded, want rejection")
			}
			if !dev.Equal(before) {
				t.Error("rejected command modified the model")
			}
		})
	}
}

func TestAddAndRemoveChild(t *testing.T) {
	cmds := []Command{
		&AddChildCommand{Parent: Path{}, At: -1, Peripheral: &model.Peripheral{Name: "UART0", BaseAddress: u64(0x40020000)}},
		&AddChildCommand{Parent: Path{Peripheral: "GPIOA"}, At: 1, Register: &model.Register{Name: "MASK", AddressOffset: 0x8}},
		&AddChildCommand{Parent: Path{Peripheral: "GPIOA", Register: "CTRL"}, At: -1, Field: &model.Field{Name: "DIR", BitOffset: 3, BitWidth: 1}},
		&AddChildCommand{Parent: Path{Peripheral: "GPIOB"}, At: -1, Interrupt: &model.Interrupt{Name: "GPIOB_IRQ", Value: 8}},
		&RemoveChildCommand{Target: Path{Peripheral: "GPIOB"}},
		&RemoveChildCommand{Target: Path{Peripheral: "GPIOA", Register: "STAT"}},
		&RemoveChildCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL", Field: "EN"}},
		&RemoveChildCommand{Target: Path{Peripheral: "GPIOA", Interrupt: "GPIOA_IRQ"}},
	}
	for _, cmd := range cmds {
		applyAndRevert(t, editDevice(), cmd)
	}
}

func TestAddChildAtIndex(t *testing.T) {
	dev := editDevice()
	cmd := &AddChildCommand{
		Parent:   Path{Peripheral: "GPIOA"},
		At:       0,
		Register: &model.Register{Name: "FIRST", AddressOffset: 0xC},
	}
	if err := cmd.Apply(dev); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if dev.Peripherals[0].Registers[0].Name != "FIRST" {
		t.Errorf("register[0] = %q, want FIRST", dev.Peripherals[0].Registers[0].Name)
	}
}

func TestRemoveUndoRestoresPosition(t *testing.T) {
	dev := editDevice()
	cmd := &RemoveChildCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL"}}
	if err := cmd.Apply(dev); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	cmd.Undo(dev)
	if dev.Peripherals[0].Registers[0].Name != "CTRL" {
		t.Errorf("register[0] = %q, want CTRL back at its position", dev.Peripherals[0].Registers[0].Name)
	}
}

func TestChildRejections(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"duplicate peripheral", &AddChildCommand{Parent: Path{}, At: -1, Peripheral: &model.Peripheral{Name: "GPIOA"}}},
		{"register under device", &AddChildCommand{Parent: Path{}, At: -1, Register: &model.Register{Name: "R"}}},
		{"no child given", &AddChildCommand{Parent: Path{}, At: -1}},
		{"index out of range", &AddChildCommand{Parent: Path{Peripheral: "GPIOA"}, At: 9, Register: &model.Register{Name: "R"}}},
		{"remove derivation base", &RemoveChildCommand{Target: Path{Peripheral: "GPIOA"}}},
		{"remove device", &RemoveChildCommand{Target: Path{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := editDevice()
			before := dev.Clone()
			if err := tt.cmd.Apply(dev); err == nil {
				t.Fatal("apply succeeded, want rejection")
			}
			if !dev.Equal(before) {
				t.Error("rejected command modified the model")
			}
		})
	}
}

func TestReorder(t *testing.T) {
	dev := editDevice()
	cmd := &ReorderCommand{Parent: Path{Peripheral: "GPIOA"}, List: ListRegisters, From: 0, To: 1}
	if err := cmd.Apply(dev); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if dev.Peripherals[0].Registers[0].Name != "STAT" {
		t.Errorf("register[0] = %q after reorder, want STAT", dev.Peripherals[0].Registers[0].Name)
	}
	applyAndRevert(t, editDevice(), &ReorderCommand{Parent: Path{}, List: ListPeripherals, From: 1, To: 0})
	applyAndRevert(t, editDevice(), &ReorderCommand{Parent: Path{Peripheral: "GPIOA", Register: "CTRL"}, List: ListFields, From: 0, To: 1})
}

func TestMoveRegisterAcrossPeripherals(t *testing.T) {
	dev := editDevice()
	cmd := &MoveCommand{
		From: Path{Peripheral: "GPIOA", Register: "STAT"},
		To:   Path{Peripheral: "GPIOB"},
		At:   0,
	}
	before := dev.Clone()
	if err := cmd.Apply(dev); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := dev.Peripherals[0].Register("STAT"); err == nil {
		t.Error("STAT still present in GPIOA")
	}
	if dev.Peripherals[1].Registers[0].Name != "STAT" {
		t.Errorf("GPIOB register[0] = %q, want STAT", dev.Peripherals[1].Registers[0].Name)
	}
	cmd.Undo(dev)
	if !dev.Equal(before) {
		t.Error("undo did not restore the model")
	}
}

func TestMoveRejectsSameParent(t *testing.T) {
	dev := editDevice()
	cmd := &MoveCommand{
		From: Path{Peripheral: "GPIOA", Register: "STAT"},
		To:   Path{Peripheral: "GPIOA"},
		At:   -1,
	}
	if err := cmd.Apply(dev); err == nil {
		t.Fatal("apply succeeded, want rejection")
	}
}

func TestEditMaterializesInheritedRegister(t *testing.T) {
	dev := editDevice()
	gpiob := dev.Peripherals[1]
	gpiob.Registers = append(gpiob.Registers, &model.Register{
		Name: "STAT", AddressOffset: 0x4, Inherited: true,
	})

	cmd := &SetAttributeCommand{
		Target: Path{Peripheral: "GPIOB", Register: "STAT"},
		Attr:   AttrDescription,
		Value:  "overridden",
	}
	if err := cmd.Apply(dev); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if gpiob.Registers[1].Inherited {
		t.Error("edited register still marked inherited")
	}
	cmd.Undo(dev)
	if !gpiob.Registers[1].Inherited {
		t.Error("undo did not restore the inherited marker")
	}
}

func TestDescriptions(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{&RenameCommand{Target: Path{Peripheral: "GPIOA"}, NewName: "GPIOC"}, "rename GPIOA to GPIOC"},
		{&SetAttributeCommand{Target: Path{Peripheral: "GPIOA", Register: "CTRL"}, Attr: AttrSize, Value: "16"}, `set GPIOA/CTRL.size = "16"`},
		{&RemoveChildCommand{Target: Path{Peripheral: "GPIOA", Interrupt: "GPIOA_IRQ"}}, "remove GPIOA/irq:GPIOA_IRQ"},
		{&MoveCommand{From: Path{Peripheral: "GPIOA", Register: "STAT"}, To: Path{Peripheral: "GPIOB"}}, "move GPIOA/STAT under GPIOB"},
	}
	for _, tt := range tests {
		if got := tt.cmd.Description(); got != tt.want {
			t.Errorf("Description() = %q, want %q", got, tt.want)
		}
	}
}
