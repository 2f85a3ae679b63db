package resolve

import "github.com/svd-tools/svd-go/pkg/model"

// Resolve returns a new device in which every derived peripheral carries its
// effective register and interrupt layout. The input device is left
// untouched. On any resolution failure the collected Errors are returned
// with a nil device.
func Resolve(dev *model.Device) (*model.Device, error) {
	r := &resolver{
		dev:      dev.Clone(),
		index:    make(map[string]*model.Peripheral),
		done:     make(map[string]bool),
		failed:   make(map[string]bool),
		visiting: make(map[string]bool),
	}

	// The index takes the first occurrence of a name; duplicate names are the
	// validator's finding, not a resolution failure.
	for _, p := range r.dev.Peripherals {
		if _, ok := r.index[p.Name]; !ok {
			r.index[p.Name] = p
		}
	}

	for _, p := range r.dev.Peripherals {
		r.resolve(p)
	}

	if len(r.errs) > 0 {
		return nil, r.errs
	}
	return r.dev, nil
}

type resolver struct {
	dev   *model.Device
	index map[string]*model.Peripheral

	done     map[string]bool
	failed   map[string]bool
	visiting map[string]bool
	stack    []string

	errs Errors
}

// resolve computes the effective layout of p in place, resolving its base
// chain first. Returns false if p or anything it derives from failed.
func (r *resolver) resolve(p *model.Peripheral) bool {
	if r.done[p.Name] {
		return true
	}
	if r.failed[p.Name] {
		return false
	}
	if p.DerivedFrom == "" {
		r.done[p.Name] = true
		return true
	}

	if r.visiting[p.Name] {
		r.reportCycle(p.Name)
		return false
	}

	base, ok := r.index[p.DerivedFrom]
	if !ok {
		r.errs = append(r.errs, &UnresolvedReferenceError{
			Peripheral: p.Name,
			Reference:  p.DerivedFrom,
		})
		r.failed[p.Name] = true
		return false
	}

	r.visiting[p.Name] = true
	r.stack = append(r.stack, p.Name)

	baseOK := r.resolve(base)

	r.stack = r.stack[:len(r.stack)-1]
	delete(r.visiting, p.Name)

	if !baseOK {
		// The root cause was already reported; this peripheral just cannot
		// be resolved either.
		r.failed[p.Name] = true
		return false
	}

	overlay(p, base)
	r.done[p.Name] = true
	return true
}

// reportCycle emits one CyclicDerivationError for the cycle closing at name
// and marks every participant failed so it is reported exactly once.
func (r *resolver) reportCycle(name string) {
	start := 0
	for i, n := range r.stack {
		if n == name {
			start = i
			break
		}
	}
	cycle := append(append([]string{}, r.stack[start:]...), name)
	r.errs = append(r.errs, &CyclicDerivationError{Cycle: cycle})
	for _, n := range cycle {
		r.failed[n] = true
	}
}

// overlay merges the base's effective layout into the derived peripheral.
// Same-named registers and interrupts declared by the derived peripheral
// replace the inherited ones at their ordinal position; new ones are
// appended in document order. Entries carrying the inherited marker are
// rebuilt from the base, so re-resolving an already resolved peripheral
// picks up later changes to the base instead of keeping stale copies.
func overlay(p, base *model.Peripheral) {
	merged := make([]*model.Register, len(base.Registers))
	for i, br := range base.Registers {
		merged[i] = br.Clone()
		merged[i].Inherited = true
	}
	for _, own := range p.Registers {
		if own.Inherited {
			continue
		}
		if i := indexRegister(merged, own.Name); i >= 0 {
			merged[i] = own
		} else {
			merged = append(merged, own)
		}
	}
	p.Registers = merged

	irqs := make([]*model.Interrupt, len(base.Interrupts))
	for i, b := range base.Interrupts {
		irqs[i] = b.Clone()
		irqs[i].Inherited = true
	}
	for _, own := range p.Interrupts {
		if own.Inherited {
			continue
		}
		if i := indexInterrupt(irqs, own.Name); i >= 0 {
			irqs[i] = own
		} else {
			irqs = append(irqs, own)
		}
	}
	p.Interrupts = irqs

	// Scalar fallback: unset attributes take the base's effective value.
	if p.BaseAddress == nil {
		p.BaseAddress = cloneUint64(base.BaseAddress)
	}
	if p.Size == nil {
		p.Size = cloneUint64(base.Size)
	}
	if p.Access == nil && base.Access != nil {
		a := *base.Access
		p.Access = &a
	}
	if p.ResetValue == nil {
		p.ResetValue = cloneUint64(base.ResetValue)
	}
	if p.ResetMask == nil {
		p.ResetMask = cloneUint64(base.ResetMask)
	}
	if p.AddressBlock == nil && base.AddressBlock != nil {
		ab := *base.AddressBlock
		p.AddressBlock = &ab
	}
}

func indexRegister(regs []*model.Register, name string) int {
	for i, r := range regs {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func indexInterrupt(irqs []*model.Interrupt, name string) int {
	for i, irq := range irqs {
		if irq.Name == name {
			return i
		}
	}
	return -1
}

func cloneUint64(v *uint64) *uint64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
