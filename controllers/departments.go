package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/requests"
)

// ListDepartments returns every department
func (h *Handler) ListDepartments(c *gin.Context, identity models.Identity) {
	if !h.authorize(c, identity, policies.ViewAny, policies.ResourceDepartment, nil) {
		return
	}

	departments, err := h.Store.ListDepartments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

// CreateDepartment adds a department, or returns the one with the same name
func (h *Handler) CreateDepartment(c *gin.Context, identity models.Identity) {
	var req requests.DepartmentRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Create, policies.ResourceDepartment, nil) {
		return
	}

	department := models.Department{Name: req.Name}
	if _, err := h.Store.FirstOrCreateDepartment(c.Request.Context(), &department); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "department created", "department": department})
}
