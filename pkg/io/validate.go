package io

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// validate is a singleton validator instance
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDocument checks the shape of a decoded document: struct tags on
// [blueprint.Document] plus the name and link rules from [errors].
// It does not check graph consistency; that is [blueprint.Reconstruct]'s job.
func ValidateDocument(doc *blueprint.Document) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	if err := validate.Struct(doc); err != nil {
		return formatValidationError(err)
	}
	if doc.Name != nil {
		if err := errors.ValidateBlueprintName(*doc.Name); err != nil {
			return err
		}
	}
	if doc.LinkURI != nil && *doc.LinkURI != "" {
		if err := errors.ValidateURL(*doc.LinkURI); err != nil {
			return err
		}
	}
	return nil
}

// formatValidationError converts validator errors to a coded error naming
// the first offending field.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "validate blueprint")
	}

	e := verrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidFormat, "%s: field is required", field)
	case "eq":
		return errors.New(errors.ErrCodeInvalidFormat, "%s: must be %q", field, e.Param())
	case "min", "gte":
		return errors.New(errors.ErrCodeInvalidFormat, "%s: must be at least %s", field, e.Param())
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "%s: validation failed (%s)", field, e.Tag())
	}
}
