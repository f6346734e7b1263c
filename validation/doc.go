// Package validation wraps go-playground/validator for struct tag
// validation with field errors reported in snake_case.
package validation
