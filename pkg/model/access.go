package model

import "fmt"

// Access describes the access permission of a register or field.
// The string values are the literal forms used in SVD documents.
type Access string

const (
	AccessReadWrite     Access = "read-write"
	AccessReadOnly      Access = "read-only"
	AccessWriteOnly     Access = "write-only"
	AccessWriteOnce     Access = "writeOnce"
	AccessReadWriteOnce Access = "read-writeOnce"
)

// ParseAccess parses an SVD access literal.
func ParseAccess(s string) (Access, error) {
	switch a := Access(s); a {
	case AccessReadWrite, AccessReadOnly, AccessWriteOnly, AccessWriteOnce, AccessReadWriteOnce:
		return a, nil
	}
	return "", fmt.Errorf("unknown access value %q", s)
}

// Valid reports whether a is one of the documented access literals.
func (a Access) Valid() bool {
	_, err := ParseAccess(string(a))
	return err == nil
}

func (a Access) String() string {
	return string(a)
}
