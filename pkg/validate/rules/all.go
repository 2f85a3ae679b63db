package rules

import "github.com/svd-tools/svd-go/pkg/validate"

// RegisterAllRules registers every standard rule with the given registry.
func RegisterAllRules(registry *validate.Registry) {
	RegisterNamingRules(registry)
	RegisterLayoutRules(registry)
	RegisterBitRules(registry)
	RegisterDerivationRules(registry)
	RegisterInterruptRules(registry)
	RegisterSchemaRules(registry)
}

// NewDefaultRegistry creates a registry with the standard rule set.
func NewDefaultRegistry() *validate.Registry {
	registry := validate.NewRegistry()
	RegisterAllRules(registry)
	return registry
}
