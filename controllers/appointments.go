package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/requests"
)

// ListAppointments returns the appointments the caller booked as a patient
// or is assigned to as a doctor, optionally only those on ?date=Y-m-d
func (h *Handler) ListAppointments(c *gin.Context, identity models.Identity) {
	date := c.Query("date")
	if date != "" && !requests.IsDate(date) {
		h.respondError(c, apperrors.NewFieldError("date", "The date field must match the format Y-m-d."))
		return
	}
	if !h.authorize(c, identity, policies.ViewAny, policies.ResourceAppointment, nil) {
		return
	}

	var patientID, doctorID *uint
	if identity.Patient != nil {
		patientID = &identity.Patient.ID
	}
	if identity.Doctor != nil {
		doctorID = &identity.Doctor.ID
	}

	appointments, err := h.Store.ListAppointments(c.Request.Context(), patientID, doctorID, date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// CreateAppointment books an appointment for the caller's patient profile
func (h *Handler) CreateAppointment(c *gin.Context, identity models.Identity) {
	var req requests.AppointmentRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.checkReference(ctx, h.Store.DoctorExists, req.DoctorID, "doctor_id"); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Create, policies.ResourceAppointment, nil) {
		return
	}

	appointment := models.Appointment{
		PatientID:   identity.Patient.ID,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	}
	if err := h.Store.CreateAppointment(ctx, &appointment); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment created successfully", "appointment": appointment})
}

// ShowAppointment returns an appointment to its patient or doctor
func (h *Handler) ShowAppointment(c *gin.Context, identity models.Identity) {
	id, err := pathID(c, "Appointment")
	if err != nil {
		h.respondError(c, err)
		return
	}

	appointment, err := h.Store.FindAppointment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.View, policies.ResourceAppointment, appointment) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

// UpdateAppointment replaces the details of an appointment. The booking
// patient stays the same.
func (h *Handler) UpdateAppointment(c *gin.Context, identity models.Identity) {
	var req requests.AppointmentRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.checkReference(ctx, h.Store.DoctorExists, req.DoctorID, "doctor_id"); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Update, policies.ResourceAppointment, nil) {
		return
	}

	id, err := pathID(c, "Appointment")
	if err != nil {
		h.respondError(c, err)
		return
	}
	appointment, err := h.Store.FindAppointment(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Update, policies.ResourceAppointment, appointment) {
		return
	}

	appointment.DoctorID = req.DoctorID
	appointment.Date = req.Date
	appointment.Time = req.Time
	appointment.Description = req.Description
	if err := h.Store.UpdateAppointment(ctx, appointment); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully", "appointment": appointment})
}

// DeleteAppointment cancels an appointment of the caller
func (h *Handler) DeleteAppointment(c *gin.Context, identity models.Identity) {
	id, err := pathID(c, "Appointment")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	appointment, err := h.Store.FindAppointment(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Delete, policies.ResourceAppointment, appointment) {
		return
	}

	if err := h.Store.DeleteAppointment(ctx, appointment); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
