package session

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Summary is a lossy overview of the loaded device for human consumption
// and the CLI convert command. It is not a round-trippable representation.
type Summary struct {
	Device      string              `yaml:"device"`
	Version     string              `yaml:"version,omitempty"`
	Description string              `yaml:"description,omitempty"`
	Peripherals []PeripheralSummary `yaml:"peripherals"`
	Interrupts  []InterruptSummary  `yaml:"interrupts,omitempty"`
}

// PeripheralSummary summarizes one peripheral of the resolved device.
type PeripheralSummary struct {
	Name        string `yaml:"name"`
	BaseAddress string `yaml:"baseAddress,omitempty"`
	DerivedFrom string `yaml:"derivedFrom,omitempty"`
	Registers   int    `yaml:"registers"`
}

// InterruptSummary is one line of the device interrupt table.
type InterruptSummary struct {
	Name       string `yaml:"name"`
	Value      uint64 `yaml:"value"`
	Peripheral string `yaml:"peripheral"`
}

// Summary builds the overview of the loaded device.
func (s *Session) Summary() (Summary, error) {
	if s.dev == nil {
		return Summary{}, ErrNoDevice
	}
	sum := Summary{
		Device:      s.dev.Name,
		Version:     s.dev.Version,
		Description: s.dev.Description,
	}
	for _, p := range s.dev.Peripherals {
		ps := PeripheralSummary{
			Name:        p.Name,
			DerivedFrom: p.DerivedFrom,
			Registers:   len(p.Registers),
		}
		if p.BaseAddress != nil {
			ps.BaseAddress = fmt.Sprintf("0x%08X", *p.BaseAddress)
		}
		sum.Peripherals = append(sum.Peripherals, ps)

		for _, irq := range p.Interrupts {
			if irq.Inherited {
				continue
			}
			sum.Interrupts = append(sum.Interrupts, InterruptSummary{
				Name:       irq.Name,
				Value:      irq.Value,
				Peripheral: p.Name,
			})
		}
	}
	return sum, nil
}

// SummaryYAML renders the overview as YAML.
func (s *Session) SummaryYAML() ([]byte, error) {
	sum, err := s.Summary()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(sum)
}
