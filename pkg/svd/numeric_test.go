package svd

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"0x1F", 0x1F, false},
		{"0X1f", 0x1F, false},
		{"0x40010000", 0x40010000, false},
		{"#1010", 10, false},
		{"#0", 0, false},
		{"0b101", 5, false},
		{"0B11", 3, false},
		{"  0x10  ", 0x10, false},
		{"", 0, true},
		{"0x", 0, true},
		{"#", 0, true},
		{"#102", 0, true},
		{"0xZZ", 0, true},
		{"12ab", 0, true},
		{"-1", 0, true},
		{"0x1 0x2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNumber(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseNumber(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexFormatting(t *testing.T) {
	if got := formatHex32(0x40010000); got != "0x40010000" {
		t.Errorf("formatHex32 = %q", got)
	}
	if got := formatHex32(0x4); got != "0x00000004" {
		t.Errorf("formatHex32 zero padding = %q", got)
	}
	if got := formatHex(0x14); got != "0x14" {
		t.Errorf("formatHex = %q", got)
	}
}
