package rules

import (
	"fmt"

	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/validate"
)

// RegisterInterruptRules registers the interrupt rules.
func RegisterInterruptRules(registry *validate.Registry) {
	registry.Register(duplicateInterruptValue{})
}

// duplicateInterruptValue flags interrupt numbers used more than once within
// one peripheral. Sharing a line across peripherals is common hardware
// practice and is not flagged.
type duplicateInterruptValue struct{}

func (duplicateInterruptValue) ID() string                         { return "IRQ-001" }
func (duplicateInterruptValue) Name() string                       { return "duplicate interrupt value" }
func (duplicateInterruptValue) Category() string                   { return "interrupts" }
func (duplicateInterruptValue) DefaultSeverity() validate.Severity { return validate.SeverityWarning }

func (duplicateInterruptValue) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range dev.Peripherals {
		seen := make(map[uint64]string)
		for _, irq := range p.Interrupts {
			if first, dup := seen[irq.Value]; dup {
				diags = append(diags, validate.Diagnostic{
					RuleID:  "IRQ-001",
					Path:    validate.Path(p.Name, irq.Name),
					Message: fmt.Sprintf("interrupt value %d already used by %s", irq.Value, first),
					Related: []string{validate.Path(p.Name, first)},
				})
				continue
			}
			seen[irq.Value] = irq.Name
		}
	}
	return diags
}
