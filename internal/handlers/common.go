package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ecomdev/electronics-shop-api/internal/services"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

// handleServiceError maps a service error to the HTTP taxonomy.
func handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		utils.NotFoundResponse(c, notFound.Resource)
		return
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		utils.ConflictResponse(c, conflict.Message)
		return
	}

	var domain *services.DomainError
	if errors.As(err, &domain) {
		utils.BadRequestResponse(c, domain.Message, nil)
		return
	}

	var unauthorized *services.UnauthorizedError
	if errors.As(err, &unauthorized) {
		utils.UnauthorizedResponse(c, unauthorized.Message)
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("Unhandled service error")
	utils.InternalErrorResponse(c, "internal server error")
}

// parseUUIDParam reads a path parameter as a UUID, responding 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID reads the authenticated user's id from the request context,
// responding 401 if it is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.UnauthorizedResponse(c, "authentication required")
		return uuid.Nil, false
	}
	return id, true
}
