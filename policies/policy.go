package policies

import (
	"fmt"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
	"github.com/shreejanpandit/doc-appointment-api/logger"
	"github.com/shreejanpandit/doc-appointment-api/models"
)

// Action is what an identity wants to do with a resource.
type Action int

const (
	ViewAny Action = iota
	View
	Create
	Update
	Delete
)

func (a Action) String() string {
	switch a {
	case ViewAny:
		return "viewAny"
	case View:
		return "view"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// verb is the word used in denial messages.
func (a Action) verb() string {
	if a == ViewAny {
		return "view"
	}
	return a.String()
}

type Resource string

const (
	ResourceDepartment  Resource = "department"
	ResourceDoctor      Resource = "doctor"
	ResourcePatient     Resource = "patient"
	ResourceSchedule    Resource = "schedule"
	ResourceAppointment Resource = "appointment"
	ResourceBookingStat Resource = "booking_stats"
)

// Rule decides whether identity may perform action. target is the record the
// action applies to, or nil for a type-level question ("may this identity
// update schedules at all?").
type Rule func(identity models.Identity, action Action, target any) bool

// Recorder counts decisions, typically into metrics.
type Recorder interface {
	RecordAccessDecision(resource, action string, allowed bool)
}

// Engine evaluates rules and records every decision in the audit log.
type Engine struct {
	rules    map[Resource]Rule
	log      *logger.Logger
	recorder Recorder
}

// New returns an engine loaded with the default rule table.
func New(log *logger.Logger) *Engine {
	return &Engine{
		rules: map[Resource]Rule{
			ResourceDepartment:  departmentRule,
			ResourceDoctor:      doctorRule,
			ResourcePatient:     patientRule,
			ResourceSchedule:    scheduleRule,
			ResourceAppointment: appointmentRule,
			ResourceBookingStat: bookingStatsRule,
		},
		log: log,
	}
}

// WithRecorder makes the engine report every decision to r.
func (e *Engine) WithRecorder(r Recorder) *Engine {
	e.recorder = r
	return e
}

// Allows reports the decision without producing an error. Resources without
// a rule are denied.
func (e *Engine) Allows(identity models.Identity, action Action, resource Resource, target any) bool {
	rule, ok := e.rules[resource]
	allowed := ok && rule(identity, action, target)
	if e.log != nil {
		e.log.Audit(identity.User.ID, action.String(), string(resource), allowed)
	}
	if e.recorder != nil {
		e.recorder.RecordAccessDecision(string(resource), action.String(), allowed)
	}
	return allowed
}

// Authorize returns an authorization error when the action is denied.
func (e *Engine) Authorize(identity models.Identity, action Action, resource Resource, target any) error {
	if e.Allows(identity, action, resource, target) {
		return nil
	}
	return apperrors.NewAuthorization(fmt.Sprintf("Unauthorized to %s with your role", action.verb()))
}
