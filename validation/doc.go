// Package validation provides input validation for hydrokit definitions and
// request handlers.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for decoded documents such as tree definitions; the fluent
// Validator fits cross-field rules that tags cannot express.
//
// # Struct Tag Validation
//
//	type SourceDef struct {
//	    Type string `json:"type" validate:"required,oneof=http static"`
//	    URL  string `json:"url" validate:"omitempty,url"`
//	}
//	err := validation.Validate(def)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("tree", name).Pattern("tree", name, `^[a-z][a-z0-9_-]*$`)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
