package models

// Identity is the authenticated caller of a request: the user, the profiles
// it owns and the session its token belongs to. It is resolved once by the
// auth middleware and passed explicitly to handlers and policies.
type Identity struct {
	User      User
	Doctor    *Doctor
	Patient   *Patient
	SessionID string
}

func (i Identity) Is(role Role) bool {
	return i.User.Role == role
}

// OwnsDoctor reports whether the identity's doctor profile has the given id.
func (i Identity) OwnsDoctor(doctorID uint) bool {
	return i.Doctor != nil && i.Doctor.ID == doctorID
}

// OwnsPatient reports whether the identity's patient profile has the given id.
func (i Identity) OwnsPatient(patientID uint) bool {
	return i.Patient != nil && i.Patient.ID == patientID
}
