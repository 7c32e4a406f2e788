package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/requests"
)

const patientImages = "patients"

// ListPatients returns every patient
func (h *Handler) ListPatients(c *gin.Context, identity models.Identity) {
	if !h.authorize(c, identity, policies.ViewAny, policies.ResourcePatient, nil) {
		return
	}

	patients, err := h.Store.ListPatients(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// CreatePatient creates the caller's patient profile, or returns the
// existing one
func (h *Handler) CreatePatient(c *gin.Context, identity models.Identity) {
	var req requests.PatientRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Create, policies.ResourcePatient, nil) {
		return
	}

	image, err := h.storeImage(c, req.Image, patientImages)
	if err != nil {
		h.respondError(c, err)
		return
	}

	patient := models.Patient{
		UserID: identity.User.ID,
		DOB:    req.DOB,
		Gender: req.Gender,
		Image:  image,
	}
	created, err := h.Store.FirstOrCreatePatient(c.Request.Context(), &patient)
	if err != nil {
		h.discardImage(image)
		h.respondError(c, err)
		return
	}
	if !created {
		h.discardImage(image)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "patient created", "patient": patient})
}

// ShowPatient returns a patient by id
func (h *Handler) ShowPatient(c *gin.Context, identity models.Identity) {
	id, err := pathID(c, "Patient")
	if err != nil {
		h.respondError(c, err)
		return
	}

	patient, err := h.Store.FindPatient(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.View, policies.ResourcePatient, patient) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

// UpdatePatient replaces the fields of the caller's own patient profile
func (h *Handler) UpdatePatient(c *gin.Context, identity models.Identity) {
	var req requests.PatientRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Update, policies.ResourcePatient, nil) {
		return
	}

	id, err := pathID(c, "Patient")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	patient, err := h.Store.FindPatient(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Update, policies.ResourcePatient, patient) {
		return
	}

	image, err := h.storeImage(c, req.Image, patientImages)
	if err != nil {
		h.respondError(c, err)
		return
	}

	previous := patient.Image
	patient.DOB = req.DOB
	patient.Gender = req.Gender
	if image != "" {
		patient.Image = image
	}

	if err := h.Store.UpdatePatient(ctx, patient); err != nil {
		h.discardImage(image)
		h.respondError(c, err)
		return
	}
	if image != "" {
		h.discardImage(previous)
	}

	c.JSON(http.StatusOK, gin.H{"message": "patient updated", "patient": patient})
}

// DeletePatient removes the caller's own patient profile with its appointments
func (h *Handler) DeletePatient(c *gin.Context, identity models.Identity) {
	id, err := pathID(c, "Patient")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	patient, err := h.Store.FindPatient(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Delete, policies.ResourcePatient, patient) {
		return
	}

	if err := h.Store.DeletePatient(ctx, patient); err != nil {
		h.respondError(c, err)
		return
	}
	h.discardImage(patient.Image)

	c.JSON(http.StatusOK, gin.H{"message": "patient deleted successfully"})
}
