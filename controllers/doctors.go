package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/requests"
)

const doctorImages = "doctors"

// ListDoctors returns every doctor, optionally only those of one department
func (h *Handler) ListDoctors(c *gin.Context, identity models.Identity) {
	ctx := c.Request.Context()

	var departmentID *uint
	if raw, ok := c.GetQuery("department_id"); ok {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.respondError(c, invalidReference("department_id"))
			return
		}
		dept := uint(id)
		if err := h.checkReference(ctx, h.Store.DepartmentExists, dept, "department_id"); err != nil {
			h.respondError(c, err)
			return
		}
		departmentID = &dept
	}

	if !h.authorize(c, identity, policies.ViewAny, policies.ResourceDoctor, nil) {
		return
	}

	doctors, err := h.Store.ListDoctors(ctx, departmentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// CreateDoctor creates the caller's doctor profile. A caller that already
// has one gets it back unchanged.
func (h *Handler) CreateDoctor(c *gin.Context, identity models.Identity) {
	var req requests.DoctorRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.checkReference(ctx, h.Store.DepartmentExists, req.DepartmentID, "department_id"); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Create, policies.ResourceDoctor, nil) {
		return
	}

	image, err := h.storeImage(c, req.Image, doctorImages)
	if err != nil {
		h.respondError(c, err)
		return
	}

	doctor := models.Doctor{
		UserID:       identity.User.ID,
		Contact:      req.Contact,
		Bio:          req.Bio,
		DepartmentID: req.DepartmentID,
		Image:        image,
	}
	created, err := h.Store.FirstOrCreateDoctor(ctx, &doctor)
	if err != nil {
		h.discardImage(image)
		h.respondError(c, err)
		return
	}
	if !created {
		h.discardImage(image)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "doctor created", "doctor": doctor})
}

// ShowDoctor returns a doctor with its weekly schedules
func (h *Handler) ShowDoctor(c *gin.Context, identity models.Identity) {
	id, err := pathID(c, "Doctor")
	if err != nil {
		h.respondError(c, err)
		return
	}

	doctor, err := h.Store.FindDoctor(c.Request.Context(), id, true)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.View, policies.ResourceDoctor, doctor) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctor": doctor})
}

// UpdateDoctor replaces the profile fields of the caller's own doctor
func (h *Handler) UpdateDoctor(c *gin.Context, identity models.Identity) {
	var req requests.DoctorRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.checkReference(ctx, h.Store.DepartmentExists, req.DepartmentID, "department_id"); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Update, policies.ResourceDoctor, nil) {
		return
	}

	id, err := pathID(c, "Doctor")
	if err != nil {
		h.respondError(c, err)
		return
	}
	doctor, err := h.Store.FindDoctor(ctx, id, false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Update, policies.ResourceDoctor, doctor) {
		return
	}

	image, err := h.storeImage(c, req.Image, doctorImages)
	if err != nil {
		h.respondError(c, err)
		return
	}

	previous := doctor.Image
	doctor.Contact = req.Contact
	doctor.Bio = req.Bio
	doctor.DepartmentID = req.DepartmentID
	if image != "" {
		doctor.Image = image
	}

	if err := h.Store.UpdateDoctor(ctx, doctor); err != nil {
		h.discardImage(image)
		h.respondError(c, err)
		return
	}
	if image != "" {
		h.discardImage(previous)
	}

	c.JSON(http.StatusOK, gin.H{"message": "doctor updated", "doctor": doctor})
}

// DeleteDoctor removes the caller's own doctor profile with its schedules
// and appointments
func (h *Handler) DeleteDoctor(c *gin.Context, identity models.Identity) {
	id, err := pathID(c, "Doctor")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	doctor, err := h.Store.FindDoctor(ctx, id, false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Delete, policies.ResourceDoctor, doctor) {
		return
	}

	if err := h.Store.DeleteDoctor(ctx, doctor); err != nil {
		h.respondError(c, err)
		return
	}
	h.discardImage(doctor.Image)

	c.JSON(http.StatusOK, gin.H{"message": "doctor deleted successfully"})
}

// checkReference turns a foreign key naming no record into a validation
// error on field.
func (h *Handler) checkReference(ctx context.Context, exists func(context.Context, uint) (bool, error), id uint, field string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return invalidReference(field)
	}
	return nil
}
