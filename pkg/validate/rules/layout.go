package rules

import (
	"fmt"

	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/validate"
)

// RegisterLayoutRules registers the register address layout rules.
func RegisterLayoutRules(registry *validate.Registry) {
	registry.Register(registerOverlap{})
	registry.Register(duplicateLayout{})
}

// byteSpan returns the address range [start, end) a register occupies within
// its peripheral, using the effective size with default fallback.
func byteSpan(dev *model.Device, p *model.Peripheral, r *model.Register) (start, end uint64) {
	bits := model.EffectiveSize(dev, p, r)
	bytes := bits / 8
	if bytes == 0 {
		bytes = 1
	}
	return r.AddressOffset, r.AddressOffset + bytes
}

// registerOverlap flags registers whose address ranges intersect within a
// peripheral's effective layout, unless they are exact duplicates (which
// duplicateLayout reports instead).
type registerOverlap struct{}

func (registerOverlap) ID() string                         { return "ADDR-001" }
func (registerOverlap) Name() string                       { return "register address overlap" }
func (registerOverlap) Category() string                   { return "layout" }
func (registerOverlap) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (registerOverlap) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range dev.Peripherals {
		for i, a := range p.Registers {
			aStart, aEnd := byteSpan(dev, p, a)
			for _, b := range p.Registers[i+1:] {
				bStart, bEnd := byteSpan(dev, p, b)
				if aStart == bStart && aEnd == bEnd {
					continue // exact duplicate, ADDR-002's finding
				}
				if aStart < bEnd && bStart < aEnd {
					diags = append(diags, validate.Diagnostic{
						RuleID: "ADDR-001",
						Path:   validate.Path(p.Name, a.Name),
						Message: fmt.Sprintf("registers %s [%#x,%#x) and %s [%#x,%#x) overlap",
							a.Name, aStart, aEnd, b.Name, bStart, bEnd),
						Related: []string{validate.Path(p.Name, b.Name)},
					})
				}
			}
		}
	}
	return diags
}

// duplicateLayout flags two differently named registers occupying exactly the
// same address range — a pure duplicate rename, which is rejected rather than
// treated as a benign alias.
type duplicateLayout struct{}

func (duplicateLayout) ID() string                         { return "ADDR-002" }
func (duplicateLayout) Name() string                       { return "duplicate register layout" }
func (duplicateLayout) Category() string                   { return "layout" }
func (duplicateLayout) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (duplicateLayout) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range dev.Peripherals {
		for i, a := range p.Registers {
			aStart, aEnd := byteSpan(dev, p, a)
			for _, b := range p.Registers[i+1:] {
				if a.Name == b.Name {
					continue // NAME-002's finding
				}
				bStart, bEnd := byteSpan(dev, p, b)
				if aStart == bStart && aEnd == bEnd {
					diags = append(diags, validate.Diagnostic{
						RuleID: "ADDR-002",
						Path:   validate.Path(p.Name, a.Name),
						Message: fmt.Sprintf("register %s duplicates the layout of %s at %#x",
							b.Name, a.Name, aStart),
						Related: []string{validate.Path(p.Name, b.Name)},
					})
				}
			}
		}
	}
	return diags
}
