package rules

import (
	"strings"
	"testing"

	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/validate"
)

func u64(v uint64) *uint64 { return &v }

func findRule(diags []validate.Diagnostic, id string) []validate.Diagnostic {
	var out []validate.Diagnostic
	for _, d := range diags {
		if d.RuleID == id {
			out = append(out, d)
		}
	}
	return out
}

func cleanDevice() *model.Device {
	return &model.Device{
		Name:          "TEST",
		SchemaVersion: "1.3",
		Size:          u64(32),
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
		},
	}
}

func TestCleanDeviceHasNoFindings(t *testing.T) {
	diags := NewDefaultRegistry().Validate(cleanDevice())
	if len(diags) != 0 {
		t.Errorf("clean device produced diagnostics: %v", diags)
	}
}

func TestDuplicateNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Device)
		rule   string
		path   string
	}{
		{
			name: "peripheral",
			mutate: func(d *model.Device) {
				d.Peripherals = append(d.Peripherals, &model.Peripheral{Name: "GPIOA"})
			},
			rule: "NAME-001",
			path: "GPIOA",
		},
		{
			name: "register",
			mutate: func(d *model.Device) {
				p := d.Peripherals[0]
				p.Registers = append(p.Registers, &model.Register{Name: "CTRL", AddressOffset: 0x8})
			},
			rule: "NAME-002",
			path: "GPIOA/CTRL",
		},
		{
			name: "field",
			mutate: func(d *model.Device) {
				r := d.Peripherals[0].Registers[0]
				r.Fields = append(r.Fields, &model.Field{Name: "EN", BitOffset: 8, BitWidth: 1})
			},
			rule: "NAME-003",
			path: "GPIOA/CTRL/EN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := cleanDevice()
			tt.mutate(dev)
			found := findRule(NewDefaultRegistry().Validate(dev), tt.rule)
			if len(found) != 1 {
				t.Fatalf("%s findings = %d, want 1", tt.rule, len(found))
			}
			if found[0].Path != tt.path {
				t.Errorf("path = %q, want %q", found[0].Path, tt.path)
			}
		})
	}
}

func TestRegisterOverlap(t *testing.T) {
	// R1 at offset 0 size 4 bytes, R2 at offset 2 size 4 bytes: overlap.
	dev := cleanDevice()
	p := dev.Peripherals[0]
	p.Registers = []*model.Register{
		{Name: "R1", AddressOffset: 0},
		{Name: "R2", AddressOffset: 2},
	}

	found := findRule(NewDefaultRegistry().Validate(dev), "ADDR-001")
	if len(found) != 1 {
		t.Fatalf("overlap findings = %d, want 1", len(found))
	}
	d := found[0]
	if d.Path != "GPIOA/R1" {
		t.Errorf("path = %q", d.Path)
	}
	// The diagnostic must reference both registers.
	if len(d.Related) != 1 || d.Related[0] != "GPIOA/R2" {
		t.Errorf("related = %v, want [GPIOA/R2]", d.Related)
	}
	if !strings.Contains(d.Message, "R1") || !strings.Contains(d.Message, "R2") {
		t.Errorf("message should name both registers: %q", d.Message)
	}
}

func TestOverlapUsesEffectiveSize(t *testing.T) {
	// With a 16-bit default size, offsets 0 and 2 do not overlap.
	dev := cleanDevice()
	dev.Size = u64(16)
	p := dev.Peripherals[0]
	p.Registers = []*model.Register{
		{Name: "R1", AddressOffset: 0},
		{Name: "R2", AddressOffset: 2},
	}

	if found := findRule(NewDefaultRegistry().Validate(dev), "ADDR-001"); len(found) != 0 {
		t.Errorf("16-bit registers at 0 and 2 flagged as overlap: %v", found)
	}
}

func TestDuplicateLayout(t *testing.T) {
	dev := cleanDevice()
	p := dev.Peripherals[0]
	p.Registers = []*model.Register{
		{Name: "R1", AddressOffset: 0},
		{Name: "R1_ALIAS", AddressOffset: 0},
	}

	diags := NewDefaultRegistry().Validate(dev)
	if found := findRule(diags, "ADDR-002"); len(found) != 1 {
		t.Errorf("duplicate layout findings = %d, want 1", len(found))
	}
	// A pure duplicate is not additionally reported as an overlap.
	if found := findRule(diags, "ADDR-001"); len(found) != 0 {
		t.Errorf("pure duplicate also reported as overlap: %v", found)
	}
}

func TestFieldBitRules(t *testing.T) {
	dev := cleanDevice()
	r := dev.Peripherals[0].Registers[0]
	r.Fields = []*model.Field{
		{Name: "A", BitOffset: 0, BitWidth: 4},
		{Name: "B", BitOffset: 3, BitWidth: 2},   // overlaps A
		{Name: "C", BitOffset: 30, BitWidth: 4},  // exceeds 32-bit register
	}

	diags := NewDefaultRegistry().Validate(dev)
	if found := findRule(diags, "BIT-001"); len(found) != 1 {
		t.Errorf("bit overlap findings = %d, want 1", len(found))
	}
	found := findRule(diags, "BIT-002")
	if len(found) != 1 {
		t.Fatalf("bit range findings = %d, want 1", len(found))
	}
	if found[0].Path != "GPIOA/CTRL/C" {
		t.Errorf("path = %q, want GPIOA/CTRL/C", found[0].Path)
	}
}

func TestDerivationRules(t *testing.T) {
	t.Run("dangling", func(t *testing.T) {
		dev := cleanDevice()
		dev.Peripherals = append(dev.Peripherals, &model.Peripheral{Name: "GPIOB", DerivedFrom: "NOPE"})
		found := findRule(NewDefaultRegistry().Validate(dev), "DRV-001")
		if len(found) != 1 || found[0].Path != "GPIOB" {
			t.Errorf("dangling findings = %v", found)
		}
	})

	t.Run("cycle reported once", func(t *testing.T) {
		dev := cleanDevice()
		dev.Peripherals = append(dev.Peripherals,
			&model.Peripheral{Name: "A", DerivedFrom: "B"},
			&model.Peripheral{Name: "B", DerivedFrom: "A"},
		)
		found := findRule(NewDefaultRegistry().Validate(dev), "DRV-002")
		if len(found) != 1 {
			t.Fatalf("cycle findings = %d, want 1", len(found))
		}
		if !strings.Contains(found[0].Message, "A") || !strings.Contains(found[0].Message, "B") {
			t.Errorf("cycle message should name participants: %q", found[0].Message)
		}
	})

	t.Run("cycle with two tails reported once", func(t *testing.T) {
		dev := cleanDevice()
		dev.Peripherals = append(dev.Peripherals,
			&model.Peripheral{Name: "A", DerivedFrom: "B"},
			&model.Peripheral{Name: "B", DerivedFrom: "C"},
			&model.Peripheral{Name: "C", DerivedFrom: "B"},
			&model.Peripheral{Name: "D", DerivedFrom: "B"},
		)
		found := findRule(NewDefaultRegistry().Validate(dev), "DRV-002")
		if len(found) != 1 {
			t.Fatalf("cycle findings = %d, want 1: %v", len(found), found)
		}
		if !strings.Contains(found[0].Message, "B") || !strings.Contains(found[0].Message, "C") {
			t.Errorf("cycle message should name participants: %q", found[0].Message)
		}
	})
}

func TestDuplicateInterruptValue(t *testing.T) {
	dev := cleanDevice()
	p := dev.Peripherals[0]
	p.Interrupts = append(p.Interrupts, &model.Interrupt{Name: "GPIOA_ALT", Value: 7})

	found := findRule(NewDefaultRegistry().Validate(dev), "IRQ-001")
	if len(found) != 1 {
		t.Fatalf("interrupt findings = %d, want 1", len(found))
	}
	if found[0].Severity != validate.SeverityWarning {
		t.Errorf("severity = %v, want warning", found[0].Severity)
	}
}

func TestSchemaVersionRule(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    int
	}{
		{"supported", "1.3", 0},
		{"missing", "", 1},
		{"malformed", "one.three", 1},
		{"unknown", "2.0", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := cleanDevice()
			dev.SchemaVersion = tt.version

			found := findRule(NewDefaultRegistry().Validate(dev), "SCHEMA-001")
			if len(found) != tt.want {
				t.Fatalf("schema findings = %d, want %d", len(found), tt.want)
			}
			if tt.want == 1 && found[0].Severity != validate.SeverityWarning {
				t.Errorf("severity = %v, want warning", found[0].Severity)
			}
		})
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	dev := cleanDevice()
	// A thoroughly broken device exercises every rule.
	dev.Peripherals = append(dev.Peripherals,
		&model.Peripheral{Name: "GPIOA"},
		&model.Peripheral{Name: "X", DerivedFrom: "X"},
	)
	snapshot := dev.Clone()

	NewDefaultRegistry().Validate(dev)

	if !dev.Equal(snapshot) {
		t.Error("validation mutated the device")
	}
}
