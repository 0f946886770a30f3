package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{
		"title":  title,
		"detail": detail,
		"status": statusCode,
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(
		iris.StatusInternalServerError,
		"Internal Server Error",
		"An unexpected error occurred, please try again", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found", ctx)
}

// CreateDatesUnavailable is the conflict response when a competing booking
// claimed one of the requested nights first.
func CreateDatesUnavailable(ctx iris.Context) {
	CreateError(
		iris.StatusConflict,
		"Dates Unavailable",
		"Selected dates are no longer available, please select different dates", ctx)
}

// HandleValidationErrors converts validator field errors into the 400
// payload the widget renders next to each form field.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]validationError, 0, len(errs))
		for _, validationErr := range errs {
			validationErrors = append(validationErrors, validationError{
				ActualTag: validationErr.ActualTag(),
				Namespace: validationErr.Namespace(),
				Kind:      validationErr.Kind().String(),
				Type:      validationErr.Type().String(),
				Value:     validationErr.Param(),
				Param:     validationErr.Param(),
			})
		}

		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"title":  "Validation Error",
			"status": iris.StatusBadRequest,
			"errors": validationErrors,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "Bad Request", err.Error(), ctx)
}

type validationError struct {
	ActualTag string `json:"tag"`
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Param     string `json:"param"`
}
