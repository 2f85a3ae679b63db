package session

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSummary(t *testing.T) {
	s := loadedSession(t, nil)

	sum, err := s.Summary()
	require.NoError(t, err)

	require.Equal(t, "SC32F1", sum.Device)
	require.Equal(t, "1.0", sum.Version)
	require.Len(t, sum.Peripherals, 2)

	require.Equal(t, "GPIOA", sum.Peripherals[0].Name)
	require.Equal(t, "0x40010000", sum.Peripherals[0].BaseAddress)
	require.Equal(t, 2, sum.Peripherals[0].Registers)

	require.Equal(t, "GPIOB", sum.Peripherals[1].Name)
	require.Equal(t, "GPIOA", sum.Peripherals[1].DerivedFrom)

	// The interrupt table lists declared interrupts once; GPIOB's inherited
	// copy is not repeated.
	require.Len(t, sum.Interrupts, 1)
	require.Equal(t, "GPIOA_IRQ", sum.Interrupts[0].Name)
	require.Equal(t, uint64(7), sum.Interrupts[0].Value)
	require.Equal(t, "GPIOA", sum.Interrupts[0].Peripheral)
}

func TestSummaryYAML(t *testing.T) {
	s := loadedSession(t, nil)

	data, err := s.SummaryYAML()
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, "SC32F1", decoded.Device)
	require.Len(t, decoded.Peripherals, 2)

	out := string(data)
	require.Contains(t, out, "device: SC32F1")
	require.Contains(t, out, "derivedFrom: GPIOA")
}
