package rules

import (
	"fmt"
	"strings"

	"github.com/svd-tools/svd-go/pkg/model"
	"github.com/svd-tools/svd-go/pkg/validate"
	"github.com/svd-tools/svd-go/pkg/version"
)

// RegisterSchemaRules registers the document schema rules.
func RegisterSchemaRules(registry *validate.Registry) {
	registry.Register(schemaVersionKnown{})
}

// schemaVersionKnown flags a missing, malformed or unknown schemaVersion
// attribute. Documents without one still load; tooling downstream tends to
// want it present.
type schemaVersionKnown struct{}

func (schemaVersionKnown) ID() string                         { return "SCHEMA-001" }
func (schemaVersionKnown) Name() string                       { return "schema version known" }
func (schemaVersionKnown) Category() string                   { return "schema" }
func (schemaVersionKnown) DefaultSeverity() validate.Severity { return validate.SeverityWarning }

func (schemaVersionKnown) Check(dev *model.Device) []validate.Diagnostic {
	diag := func(msg string) []validate.Diagnostic {
		return []validate.Diagnostic{{
			RuleID:  "SCHEMA-001",
			Path:    "device",
			Message: msg,
		}}
	}

	if dev.SchemaVersion == "" {
		return diag(fmt.Sprintf("no schemaVersion attribute, latest is %s", version.Latest))
	}
	if _, err := version.Parse(dev.SchemaVersion); err != nil {
		return diag(fmt.Sprintf("malformed schemaVersion %q", dev.SchemaVersion))
	}
	if !version.IsSupported(dev.SchemaVersion) {
		return diag(fmt.Sprintf("unknown schemaVersion %q, known versions: %s",
			dev.SchemaVersion, strings.Join(version.Supported(), ", ")))
	}
	return nil
}
