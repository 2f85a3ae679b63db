package rules

import (
	"fmt"

	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/validate"
)

// RegisterBitRules registers the field bit layout rules.
func RegisterBitRules(registry *validate.Registry) {
	registry.Register(fieldOverlap{})
	registry.Register(fieldExceedsRegister{})
}

// fieldOverlap flags fields whose bit ranges intersect within a register.
type fieldOverlap struct{}

func (fieldOverlap) ID() string                         { return "BIT-001" }
func (fieldOverlap) Name() string                       { return "field bit overlap" }
func (fieldOverlap) Category() string                   { return "bits" }
func (fieldOverlap) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (fieldOverlap) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range dev.Peripherals {
		for _, r := range p.Registers {
			for i, a := range r.Fields {
				aLsb, aMsb := a.BitRange()
				for _, b := range r.Fields[i+1:] {
					bLsb, bMsb := b.BitRange()
					if aLsb <= bMsb && bLsb <= aMsb {
						diags = append(diags, validate.Diagnostic{
							RuleID: "BIT-001",
							Path:   validate.Path(p.Name, r.Name, a.Name),
							Message: fmt.Sprintf("fields %s [%d:%d] and %s [%d:%d] overlap",
								a.Name, aMsb, aLsb, b.Name, bMsb, bLsb),
							Related: []string{validate.Path(p.Name, r.Name, b.Name)},
						})
					}
				}
			}
		}
	}
	return diags
}

// fieldExceedsRegister flags fields whose bit range does not fit within the
// owning register's effective size.
type fieldExceedsRegister struct{}

func (fieldExceedsRegister) ID() string                         { return "BIT-002" }
func (fieldExceedsRegister) Name() string                       { return "field exceeds register size" }
func (fieldExceedsRegister) Category() string                   { return "bits" }
func (fieldExceedsRegister) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (fieldExceedsRegister) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range dev.Peripherals {
		for _, r := range p.Registers {
			size := model.EffectiveSize(dev, p, r)
			for _, f := range r.Fields {
				if f.BitOffset+f.BitWidth > size {
					diags = append(diags, validate.Diagnostic{
						RuleID: "BIT-002",
						Path:   validate.Path(p.Name, r.Name, f.Name),
						Message: fmt.Sprintf("bit range [%d:%d] exceeds the %d-bit register",
							f.BitOffset+f.BitWidth-1, f.BitOffset, size),
					})
				}
			}
		}
	}
	return diags
}
