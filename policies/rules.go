package policies

import "github.com/shreejanpandit/doc-appointment-api/models"

func departmentRule(identity models.Identity, action Action, _ any) bool {
	switch action {
	case ViewAny, View:
		return true
	case Create:
		return identity.Is(models.RoleAdmin)
	}
	return false
}

func doctorRule(identity models.Identity, action Action, target any) bool {
	switch action {
	case ViewAny, View:
		return true
	case Create:
		return identity.Is(models.RoleDoctor)
	case Update, Delete:
		doctor, _ := target.(*models.Doctor)
		if doctor == nil {
			return identity.Doctor != nil
		}
		return identity.OwnsDoctor(doctor.ID)
	}
	return false
}

func patientRule(identity models.Identity, action Action, target any) bool {
	switch action {
	case ViewAny, View:
		return true
	case Create:
		return identity.Is(models.RolePatient)
	case Update, Delete:
		patient, _ := target.(*models.Patient)
		if patient == nil {
			return identity.Patient != nil
		}
		return identity.OwnsPatient(patient.ID)
	}
	return false
}

// Listing is scoped to the caller's doctor in the controller, so viewing is
// open to every authenticated identity.
func scheduleRule(identity models.Identity, action Action, target any) bool {
	switch action {
	case ViewAny, View:
		return true
	case Create:
		return identity.Doctor != nil
	case Update, Delete:
		schedule, _ := target.(*models.Schedule)
		if schedule == nil {
			return identity.Doctor != nil
		}
		return identity.OwnsDoctor(schedule.DoctorID)
	}
	return false
}

// An appointment belongs to both sides: the patient who booked it and the
// doctor it was booked with. Either may view, change or cancel it.
func appointmentRule(identity models.Identity, action Action, target any) bool {
	switch action {
	case ViewAny:
		return true
	case Create:
		return identity.Patient != nil
	case View, Update, Delete:
		appointment, _ := target.(*models.Appointment)
		if appointment == nil {
			return identity.Patient != nil || identity.Doctor != nil
		}
		return identity.OwnsPatient(appointment.PatientID) || identity.OwnsDoctor(appointment.DoctorID)
	}
	return false
}

// bookingStatsRule keeps the booking dashboard to admins.
func bookingStatsRule(identity models.Identity, action Action, _ any) bool {
	return action == ViewAny && identity.Is(models.RoleAdmin)
}
