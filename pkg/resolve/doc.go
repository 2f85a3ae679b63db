// Package resolve computes effective peripheral layouts from derivedFrom
// chains.
//
// Resolution merges each derived peripheral with its (recursively resolved)
// base: the effective register list starts from the base's effective list,
// registers declared directly on the derived peripheral replace same-named
// inherited ones in place (at the base's ordinal position), and registers
// with no base counterpart are appended in document order. Interrupts merge
// the same way, keyed by name. Scalar attributes left unset on the derived
// peripheral fall back to the base's effective value. The derivedFrom marker
// itself is preserved so the generator can re-emit a minimal document.
//
// Resolution is order independent (forward references resolve correctly) and
// idempotent: resolving an already-resolved device is a no-op. The input
// device is never mutated; Resolve returns a new device.
//
// Dangling references produce *UnresolvedReferenceError and derivation cycles
// produce *CyclicDerivationError; all failures across the device are
// collected into Errors. On failure no device is returned — the caller may
// still display the raw, unresolved model.
package resolve
