package validate

import (
	"fmt"
	"strings"

	"github.com/svd-tools/svd-go/pkg/model"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	// SeverityError indicates a structural violation that makes the model
	// invalid as an SVD document.
	SeverityError Severity = iota
	// SeverityWarning indicates a suspicious construct that should be
	// reviewed.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Diagnostic is one validation finding. Diagnostics are data, never control
// flow: the validator does not abort on them.
type Diagnostic struct {
	// RuleID is the ID of the rule that produced this finding.
	RuleID string

	// Severity is the effective severity after registry overrides.
	Severity Severity

	// Path locates the offending node as a name path, e.g. "GPIOA/CTRL/EN".
	Path string

	// Message describes what was found.
	Message string

	// Related names other nodes involved in the finding, e.g. the second
	// register of an overlapping pair.
	Related []string
}

// String returns a formatted one-line representation of the diagnostic.
func (d Diagnostic) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s: %s: %s", d.RuleID, d.Severity, d.Path, d.Message)
	if len(d.Related) > 0 {
		fmt.Fprintf(&sb, " (with: %s)", strings.Join(d.Related, ", "))
	}
	return sb.String()
}

// Rule is one independent validation check.
type Rule interface {
	// ID returns the unique rule identifier (e.g. "ADDR-001").
	ID() string
	// Name returns a human-readable rule name.
	Name() string
	// Category returns the rule category (e.g. "naming", "layout").
	Category() string
	// DefaultSeverity returns the severity used unless overridden.
	DefaultSeverity() Severity
	// Check applies the rule to a device and returns its findings.
	Check(dev *model.Device) []Diagnostic
}

// Registry manages validation rules. Rules run in registration order; every
// enabled rule runs on every Validate call, independent of other rules'
// findings.
type Registry struct {
	rules    map[string]Rule
	enabled  map[string]bool
	severity map[string]Severity
	order    []string
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:    make(map[string]Rule),
		enabled:  make(map[string]bool),
		severity: make(map[string]Severity),
	}
}

// Register adds a rule, enabled with its default severity.
func (r *Registry) Register(rule Rule) {
	id := rule.ID()
	if _, exists := r.rules[id]; !exists {
		r.order = append(r.order, id)
	}
	r.rules[id] = rule
	r.enabled[id] = true
	r.severity[id] = rule.DefaultSeverity()
}

// Disable disables a rule by ID.
func (r *Registry) Disable(id string) {
	r.enabled[id] = false
}

// Enable enables a rule by ID.
func (r *Registry) Enable(id string) {
	r.enabled[id] = true
}

// SetSeverity overrides the severity applied to a rule's findings.
func (r *Registry) SetSeverity(id string, s Severity) {
	r.severity[id] = s
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rules[id])
	}
	return out
}

// Validate runs every enabled rule against the device and returns the
// collected diagnostics. The device is never mutated.
func (r *Registry) Validate(dev *model.Device) []Diagnostic {
	var diags []Diagnostic
	for _, id := range r.order {
		if !r.enabled[id] {
			continue
		}
		for _, d := range r.rules[id].Check(dev) {
			d.Severity = r.severity[id]
			diags = append(diags, d)
		}
	}
	return diags
}

// Path joins node names into a diagnostic location path.
func Path(names ...string) string {
	return strings.Join(names, "/")
}
