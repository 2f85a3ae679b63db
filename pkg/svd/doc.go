// Package svd parses and generates CMSIS-SVD documents.
//
// Parse and Generate form a codec pair over the model tree: Parse decodes XML
// bytes into a raw model.Device exactly as written (no defaulting, no
// inheritance resolution), Generate serializes a Device back to canonical XML
// bytes. For any device D produced by a successful parse,
// Parse(Generate(D)) is structurally equal to D.
//
// # Numeric forms
//
// Numeric values accept the SVD format convention: 0x/0X hexadecimal,
// # or 0b binary, plain decimal. They are normalized to integers at parse
// time; any other form is rejected. Generate emits addresses, offsets and
// reset values as zero-padded 0x-prefixed hexadecimal and everything else as
// decimal.
//
// # Error classes
//
// Malformed markup aborts the parse immediately with a *ParseError carrying
// the line and byte offset. Structurally required elements that are missing
// (peripheral name; register name and addressOffset; field name, bitOffset
// and bitWidth) and malformed numeric or access literals are collected across
// the whole document and returned together as SchemaErrors, each naming the
// offending element path, e.g.
//
//	device/peripherals/peripheral[2]/registers/register[0]
//
// # Lossiness
//
// The codec is deliberately lossy for anything outside the documented element
// subset: vendor-specific and unknown elements are dropped on parse and never
// re-emitted. Round-trip equality is defined over the model, not over the
// source bytes.
//
// # derivedFrom
//
// Generate emits a derived peripheral in minimal form: its derivedFrom
// attribute plus only its directly declared registers and interrupts. The
// effective merged layout computed by the resolve package is a read-time
// view and is never persisted.
package svd
