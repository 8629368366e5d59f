package handler

import (
	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch service.KindOf(err) {
	case service.KindInvalidInput:
		return model.NewValidationError(err.Error())
	case service.KindUnauthorized:
		return model.NewUnauthorizedError(err.Error())
	case service.KindNotFound:
		return model.NewNotFoundError(err.Error())
	case service.KindConflict:
		return model.NewConflictError(err.Error())
	case service.KindDependency:
		return model.NewInternalError(err.Error())
	default:
		return model.NewInternalError("")
	}
}
