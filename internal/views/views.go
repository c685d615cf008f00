// Package views renders each storefront screen to plain text and carries
// the form-style actions the screens expose. Views read the session and
// cart stores but mutate them only through their operations; everything
// else comes from the API per render.
package views

import (
	"context"
	"fmt"
	"io"

	apperrors "github.com/agrihub/storefront/internal/errors"
	"github.com/agrihub/storefront/internal/nav"
	"github.com/go-playground/validator/v10"
)

// View is one renderable screen.
type View interface {
	Render(ctx context.Context, w io.Writer, params nav.Params) error
}

// fail writes the inline error message the screen shows and passes the
// error back for callers that branch on it. No failure here is fatal.
func fail(w io.Writer, err error) error {

	if appErr, ok := apperrors.IsAppError(err); ok {
		fmt.Fprintf(w, "Error: %s\n", appErr.Message)

		return err
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())

	return err
}

// validate runs struct validation and surfaces the first offending field
// as an inline message, aborting before any network call.
func validate(w io.Writer, v *validator.Validate, data any) error {

	err := v.Struct(data)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok {
		return fail(w, apperrors.ValidationError(validationMessage(errs[0])))
	}

	return fail(w, apperrors.ValidationError("invalid input data").WithError(err))
}

func validationMessage(err validator.FieldError) string {

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("Field %s is required", err.Field())
	case "email":
		return fmt.Sprintf("Field %s must be a valid email address", err.Field())
	case "min":
		return fmt.Sprintf("Field %s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("Field %s must be at most %s characters", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
	case "eqfield":
		return "Passwords do not match!"
	case "oneof":
		return fmt.Sprintf("Field %s must be one of: %s", err.Field(), err.Param())
	case "url":
		return fmt.Sprintf("Field %s must be a valid URL", err.Field())
	default:
		return fmt.Sprintf("Field %s is invalid", err.Field())
	}
}
