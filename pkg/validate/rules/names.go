package rules

import (
	"fmt"

	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/validate"
)

// RegisterNamingRules registers the duplicate-name rules.
func RegisterNamingRules(registry *validate.Registry) {
	registry.Register(duplicatePeripheralNames{})
	registry.Register(duplicateRegisterNames{})
	registry.Register(duplicateFieldNames{})
}

// duplicatePeripheralNames flags peripheral names reused within a device.
type duplicatePeripheralNames struct{}

func (duplicatePeripheralNames) ID() string                        { return "NAME-001" }
func (duplicatePeripheralNames) Name() string                      { return "duplicate peripheral names" }
func (duplicatePeripheralNames) Category() string                  { return "naming" }
func (duplicatePeripheralNames) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (duplicatePeripheralNames) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	seen := make(map[string]int)
	for i, p := range dev.Peripherals {
		if first, dup := seen[p.Name]; dup {
			diags = append(diags, validate.Diagnostic{
				RuleID: "NAME-001",
				Path:   p.Name,
				Message: fmt.Sprintf("peripheral name %q already used at position %d",
					p.Name, first),
			})
			continue
		}
		seen[p.Name] = i
	}
	return diags
}

// duplicateRegisterNames flags register names reused within a peripheral.
type duplicateRegisterNames struct{}

func (duplicateRegisterNames) ID() string                        { return "NAME-002" }
func (duplicateRegisterNames) Name() string                      { return "duplicate register names" }
func (duplicateRegisterNames) Category() string                  { return "naming" }
func (duplicateRegisterNames) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (duplicateRegisterNames) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range dev.Peripherals {
		seen := make(map[string]bool)
		for _, r := range p.Registers {
			if seen[r.Name] {
				diags = append(diags, validate.Diagnostic{
					RuleID:  "NAME-002",
					Path:    validate.Path(p.Name, r.Name),
					Message: fmt.Sprintf("register name %q already used in peripheral %s", r.Name, p.Name),
				})
				continue
			}
			seen[r.Name] = true
		}
	}
	return diags
}

// duplicateFieldNames flags field names reused within a register.
type duplicateFieldNames struct{}

func (duplicateFieldNames) ID() string                        { return "NAME-003" }
func (duplicateFieldNames) Name() string                      { return "duplicate field names" }
func (duplicateFieldNames) Category() string                  { return "naming" }
func (duplicateFieldNames) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (duplicateFieldNames) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range dev.Peripherals {
		for _, r := range p.Registers {
			seen := make(map[string]bool)
			for _, f := range r.Fields {
				if seen[f.Name] {
					diags = append(diags, validate.Diagnostic{
						RuleID:  "NAME-003",
						Path:    validate.Path(p.Name, r.Name, f.Name),
						Message: fmt.Sprintf("field name %q already used in register %s", f.Name, r.Name),
					})
					continue
				}
				seen[f.Name] = true
			}
		}
	}
	return diags
}
