// Package validator validates request payloads and module dependencies.
//
// The go-playground/validator v10 implementation reports failures as
// snake_case field names with English messages.
package validator
