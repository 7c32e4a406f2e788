package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
	"github.com/shreejanpandit/doc-appointment-api/authentication"
	"github.com/shreejanpandit/doc-appointment-api/logger"
	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/monitoring"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/repository"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	Store    *repository.Store
	Policies *policies.Engine
	Tokens   *authentication.TokenIssuer
	Sessions *authentication.SessionStore
	Images   *ImageStore
	Metrics  *monitoring.Metrics
	Log      *logger.Logger
}

// respondError writes err as a JSON error response. Internal causes are
// logged and replaced by a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperrors.KindInternal {
		h.Log.WithComponent("http").
			WithError(err).
			WithField("path", c.FullPath()).
			Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "type": "error"})
		return
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": appErr.Message, "errors": appErr.Fields})
	case apperrors.KindAuthentication:
		c.JSON(http.StatusUnauthorized, gin.H{"message": appErr.Message, "type": "error"})
	case apperrors.KindAuthorization:
		c.JSON(http.StatusForbidden, gin.H{"message": appErr.Message, "type": "error"})
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": appErr.Message, "type": "error"})
	case apperrors.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"message": appErr.Message, "type": "error"})
	}
}

// pathID parses the :id parameter. Anything that is not a positive integer
// cannot name a record, so it reads as not found.
func pathID(c *gin.Context, entity string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewNotFound(entity + " not found")
	}
	return uint(id), nil
}

// invalidReference reports a foreign key that names no record.
func invalidReference(field string) error {
	return apperrors.NewFieldError(field, "The selected "+field+" is invalid.")
}

// authorize answers the policy question and writes the 403 on denial.
func (h *Handler) authorize(c *gin.Context, identity models.Identity, action policies.Action, resource policies.Resource, target any) bool {
	if err := h.Policies.Authorize(identity, action, resource, target); err != nil {
		h.respondError(c, err)
		return false
	}
	return true
}
