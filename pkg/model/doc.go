// Package model implements the CMSIS-SVD device data model.
//
// # Hierarchy
//
// An SVD document describes a microcontroller as a strict ownership tree:
//
//	Device
//	├── Peripheral (GPIOA)
//	│   ├── Interrupt (GPIOA_IRQ)
//	│   └── Register (CTRL)
//	│       └── Field (EN)
//	│           └── EnumeratedValues
//	└── Peripheral (GPIOB, derivedFrom="GPIOA")
//
// A Device owns an ordered sequence of Peripherals, each owning ordered
// Registers and Interrupts; Registers own ordered Fields. There is no shared
// ownership anywhere in the tree.
//
// # derivedFrom
//
// A Peripheral may declare derivedFrom, naming another Peripheral in the same
// Device whose register and interrupt layout it reuses. The reference is kept
// as a name, never as a pointer into the tree: whether the reference resolves,
// and whether the reference graph is acyclic, is a property of a name index
// (see the resolve package), not of the tree structure itself.
//
// # Defaults
//
// Register size, access and reset value/mask may be left unset at any level
// and inherit the nearest ancestor's default (Device > Peripheral > Register >
// Field). Optional attributes are pointer-typed so that "unset, inherits" is
// distinguishable from an explicit zero; the Effective* helpers perform the
// lookup without copying values down the tree.
//
// # Mutation discipline
//
// A Device is built once by the svd package parser and then owned by a single
// editing session. The model provides no internal locking: all mutation goes
// through the session's command history on one goroutine, and readers
// (validator, generator) run only between edits.
package model
