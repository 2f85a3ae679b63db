package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    SchemaVersion
		wantErr bool
	}{
		{"1.3", SchemaVersion{1, 3}, false},
		{"1.0", SchemaVersion{1, 0}, false},
		{"10.25", SchemaVersion{10, 25}, false},
		{"1", SchemaVersion{}, true},
		{"1.2.3", SchemaVersion{}, true},
		{"a.b", SchemaVersion{}, true},
		{"1.", SchemaVersion{}, true},
		{".3", SchemaVersion{}, true},
		{"", SchemaVersion{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	v, err := Parse("1.3")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "1.3" {
		t.Errorf("String() = %q, want 1.3", v.String())
	}
}

func TestCompatible(t *testing.T) {
	a := SchemaVersion{1, 0}
	b := SchemaVersion{1, 3}
	c := SchemaVersion{2, 0}
	if !a.Compatible(b) {
		t.Error("1.0 should be compatible with 1.3")
	}
	if a.Compatible(c) {
		t.Error("1.0 should not be compatible with 2.0")
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported(Latest) {
		t.Error("Latest must be supported")
	}
	if IsSupported("2.0") {
		t.Error("2.0 is not supported")
	}
}
