// Package session ties the codec, resolver, validator and command history
// together into one editing session over a single device document.
//
// A Session is owned by one goroutine; it has no internal locking. Load
// builds the new device completely before publishing it, so a failed or
// cancelled load leaves the previously loaded document untouched. All
// session activity can be journaled through a log.Logger.
package session
