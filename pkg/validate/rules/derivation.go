package rules

import (
	"fmt"
	"strings"

	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/validate"
)

// RegisterDerivationRules registers the derivedFrom reference rules. These
// re-check what the resolver enforces, since validation may run on a raw
// model that was never resolved.
func RegisterDerivationRules(registry *validate.Registry) {
	registry.Register(danglingDerivation{})
	registry.Register(cyclicDerivation{})
}

// danglingDerivation flags derivedFrom references that name no peripheral.
type danglingDerivation struct{}

func (danglingDerivation) ID() string                         { return "DRV-001" }
func (danglingDerivation) Name() string                       { return "dangling derivedFrom" }
func (danglingDerivation) Category() string                   { return "derivation" }
func (danglingDerivation) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (danglingDerivation) Check(dev *model.Device) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range dev.Peripherals {
		if p.DerivedFrom == "" {
			continue
		}
		if dev.PeripheralIndex(p.DerivedFrom) < 0 {
			diags = append(diags, validate.Diagnostic{
				RuleID:  "DRV-001",
				Path:    p.Name,
				Message: fmt.Sprintf("derivedFrom %q does not name a peripheral", p.DerivedFrom),
			})
		}
	}
	return diags
}

// cyclicDerivation flags cycles in the derivedFrom reference graph. Each
// cycle is reported once, at its first participant in document order.
type cyclicDerivation struct{}

func (cyclicDerivation) ID() string                         { return "DRV-002" }
func (cyclicDerivation) Name() string                       { return "cyclic derivedFrom" }
func (cyclicDerivation) Category() string                   { return "derivation" }
func (cyclicDerivation) DefaultSeverity() validate.Severity { return validate.SeverityError }

func (cyclicDerivation) Check(dev *model.Device) []validate.Diagnostic {
	next := make(map[string]string)
	for _, p := range dev.Peripherals {
		if p.DerivedFrom != "" {
			next[p.Name] = p.DerivedFrom
		}
	}

	var diags []validate.Diagnostic
	reported := make(map[string]bool)
	for _, p := range dev.Peripherals {
		if reported[p.Name] {
			continue
		}
		cycle := walkChain(next, p.Name)
		if cycle == nil {
			continue
		}
		// Chains from distinct starting points can run into the same cycle.
		seen := reported[cycle[0]]
		for _, n := range cycle {
			reported[n] = true
		}
		if seen {
			continue
		}
		diags = append(diags, validate.Diagnostic{
			RuleID:  "DRV-002",
			Path:    cycle[0],
			Message: fmt.Sprintf("derivation cycle: %s", strings.Join(append(cycle, cycle[0]), " -> ")),
			Related: cycle[1:],
		})
	}
	return diags
}

// walkChain follows the derivation chain from start and returns the cycle it
// runs into, or nil if the chain terminates. The visiting set bounds the walk
// regardless of chain shape.
func walkChain(next map[string]string, start string) []string {
	visiting := make(map[string]int)
	var path []string
	cur := start
	for {
		if at, seen := visiting[cur]; seen {
			return path[at:]
		}
		visiting[cur] = len(path)
		path = append(path, cur)
		n, ok := next[cur]
		if !ok {
			return nil
		}
		cur = n
	}
}
