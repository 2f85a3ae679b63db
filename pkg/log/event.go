package log

import "time"

// Event represents one journal entry for an editing session.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the editing session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Device is the device name once a document is loaded.
	Device string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Load     *LoadEvent     `cbor:"5,keyasint,omitempty"`
	Resolve  *ResolveEvent  `cbor:"6,keyasint,omitempty"`
	Edit     *EditEvent     `cbor:"7,keyasint,omitempty"`
	Validate *ValidateEvent `cbor:"8,keyasint,omitempty"`
	Save     *SaveEvent     `cbor:"9,keyasint,omitempty"`
	Error    *ErrorEvent    `cbor:"10,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryLoad indicates a document was parsed into the session.
	CategoryLoad Category = 0
	// CategoryResolve indicates derivation resolution ran.
	CategoryResolve Category = 1
	// CategoryApply indicates an edit command was applied.
	CategoryApply Category = 2
	// CategoryUndo indicates an edit command was undone.
	CategoryUndo Category = 3
	// CategoryRedo indicates an edit command was reapplied.
	CategoryRedo Category = 4
	// CategoryValidate indicates a validation run.
	CategoryValidate Category = 5
	// CategorySave indicates the document was generated.
	CategorySave Category = 6
	// CategoryError indicates a failed operation.
	CategoryError Category = 7
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLoad:
		return "LOAD"
	case CategoryResolve:
		return "RESOLVE"
	case CategoryApply:
		return "APPLY"
	case CategoryUndo:
		return "UNDO"
	case CategoryRedo:
		return "REDO"
	case CategoryValidate:
		return "VALIDATE"
	case CategorySave:
		return "SAVE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoadEvent captures a successful document load.
type LoadEvent struct {
	// Bytes is the size of the parsed document.
	Bytes int `cbor:"1,keyasint"`

	// Peripherals counts top-level peripherals in the parsed model.
	Peripherals int `cbor:"2,keyasint"`
}

// ResolveEvent captures a derivation resolution pass.
type ResolveEvent struct {
	// Derived counts peripherals carrying a derivedFrom reference.
	Derived int `cbor:"1,keyasint"`
}

// EditEvent captures an applied, undone or redone command.
type EditEvent struct {
	// Command is the human-readable command description.
	Command string `cbor:"1,keyasint"`
}

// ValidateEvent captures a validation run.
type ValidateEvent struct {
	Errors   int `cbor:"1,keyasint"`
	Warnings int `cbor:"2,keyasint"`
	Infos    int `cbor:"3,keyasint"`
}

// SaveEvent captures a generated document.
type SaveEvent struct {
	// Bytes is the size of the generated document.
	Bytes int `cbor:"1,keyasint"`
}

// ErrorEvent captures a failed operation.
type ErrorEvent struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
