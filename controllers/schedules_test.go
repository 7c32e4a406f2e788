package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

func slotBody(day, start, end string) map[string]any {
	return map[string]any{"week_day": day, "start_time": start, "end_time": end}
}

func TestCreateScheduleRequiresDoctorProfile(t *testing.T) {
	e := newTestEnv(t)
	patientToken, _ := e.patient(t, "patient@example.com")
	e.createUser(t, models.RoleDoctor, "newdoc@example.com")
	profileless := e.login(t, "newdoc@example.com")

	for name, token := range map[string]string{"patient": patientToken, "doctor without profile": profileless} {
		t.Run(name, func(t *testing.T) {
			w := e.request(t, http.MethodPost, "/schedules", token, slotBody("Monday", "09:00", "12:00"))
			require.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, map[string]any{"message": "Unauthorized to create with your role", "type": "error"}, decode(t, w))
		})
	}
	assert.Zero(t, e.count(t, &models.Schedule{}))
}

func TestCreateScheduleIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	token, doctor := e.doctor(t, "doctor@example.com")

	w := e.request(t, http.MethodPost, "/schedules", token, slotBody("monday", "09:00", "12:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Schedule Created", body["message"])
	first := body["schedule"].(map[string]any)
	assert.Equal(t, "Monday", first["week_day"])
	assert.Equal(t, float64(doctor.ID), first["doctor_id"])

	w = e.request(t, http.MethodPost, "/schedules", token, slotBody("Monday", "09:00", "12:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, first["id"], decode(t, w)["schedule"].(map[string]any)["id"])
	assert.Equal(t, int64(1), e.count(t, &models.Schedule{}))
}

func TestCreateScheduleValidation(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.doctor(t, "doctor@example.com")

	errs := fieldErrors(t, e.request(t, http.MethodPost, "/schedules", token, map[string]any{}))
	assert.Contains(t, errs, "week_day")
	assert.Contains(t, errs, "start_time")
	assert.Contains(t, errs, "end_time")

	errs = fieldErrors(t, e.request(t, http.MethodPost, "/schedules", token, slotBody("Funday", "9am", "12:00")))
	assert.Contains(t, errs, "week_day")
	assert.Contains(t, errs, "start_time")

	errs = fieldErrors(t, e.request(t, http.MethodPost, "/schedules", token, slotBody("Monday", "12:00", "09:00")))
	assert.Equal(t, []any{"The end_time field must be a time after start_time."}, errs["end_time"])
}

func TestScheduleValidationPrecedesAuthorization(t *testing.T) {
	e := newTestEnv(t)
	patientToken, _ := e.patient(t, "patient@example.com")

	w := e.request(t, http.MethodPost, "/schedules", patientToken, map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListSchedules(t *testing.T) {
	e := newTestEnv(t)
	token, doctor := e.doctor(t, "doctor@example.com")
	otherToken, _ := e.doctor(t, "other@example.com")
	patientToken, _ := e.patient(t, "patient@example.com")

	require.Equal(t, http.StatusCreated, e.request(t, http.MethodPost, "/schedules", token, slotBody("Monday", "09:00", "12:00")).Code)
	require.Equal(t, http.StatusCreated, e.request(t, http.MethodPost, "/schedules", token, slotBody("Friday", "09:00", "12:00")).Code)
	require.Equal(t, http.StatusCreated, e.request(t, http.MethodPost, "/schedules", otherToken, slotBody("Monday", "09:00", "12:00")).Code)

	w := e.request(t, http.MethodGet, "/schedules", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 2)
	for _, s := range list {
		assert.Equal(t, float64(doctor.ID), s["doctor_id"])
	}

	w = e.request(t, http.MethodGet, "/schedules", patientToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Schedule not found", decode(t, w)["message"])
}

func TestUpdateScheduleOwnership(t *testing.T) {
	e := newTestEnv(t)
	ownerToken, _ := e.doctor(t, "owner@example.com")
	otherToken, _ := e.doctor(t, "other@example.com")
	patientToken, _ := e.patient(t, "patient@example.com")

	w := e.request(t, http.MethodPost, "/schedules", ownerToken, slotBody("Monday", "09:00", "12:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode(t, w)["schedule"].(map[string]any)["id"].(float64))
	path := fmt.Sprintf("/schedules/%d", id)

	tests := []struct {
		name   string
		token  string
		path   string
		body   map[string]any
		status int
	}{
		{name: "other doctor", token: otherToken, path: path, body: slotBody("Tuesday", "10:00", "11:00"), status: http.StatusForbidden},
		{name: "patient", token: patientToken, path: path, body: slotBody("Tuesday", "10:00", "11:00"), status: http.StatusForbidden},
		{name: "invalid body beats missing record", token: ownerToken, path: "/schedules/999", body: map[string]any{}, status: http.StatusUnprocessableEntity},
		{name: "patient on missing record", token: patientToken, path: "/schedules/999", body: slotBody("Tuesday", "10:00", "11:00"), status: http.StatusForbidden},
		{name: "missing record", token: ownerToken, path: "/schedules/999", body: slotBody("Tuesday", "10:00", "11:00"), status: http.StatusNotFound},
		{name: "non-numeric id", token: ownerToken, path: "/schedules/abc", body: slotBody("Tuesday", "10:00", "11:00"), status: http.StatusNotFound},
		{name: "owner", token: ownerToken, path: path, body: slotBody("tuesday", "10:00", "11:00"), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.request(t, http.MethodPut, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	schedule, err := e.store.FindSchedule(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", schedule.WeekDay)
	assert.Equal(t, "10:00", schedule.StartTime)
}

func TestDeleteScheduleOwnership(t *testing.T) {
	e := newTestEnv(t)
	ownerToken, _ := e.doctor(t, "owner@example.com")
	otherToken, _ := e.doctor(t, "other@example.com")

	w := e.request(t, http.MethodPost, "/schedules", ownerToken, slotBody("Monday", "09:00", "12:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	path := fmt.Sprintf("/schedules/%d", uint(decode(t, w)["schedule"].(map[string]any)["id"].(float64)))

	w = e.request(t, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized to delete with your role", decode(t, w)["message"])
	assert.Equal(t, int64(1), e.count(t, &models.Schedule{}))

	w = e.request(t, http.MethodDelete, "/schedules/999", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.request(t, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Schedule Deleted", decode(t, w)["message"])
	assert.Zero(t, e.count(t, &models.Schedule{}))
}

func TestShowSchedule(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.doctor(t, "doctor@example.com")
	patientToken, _ := e.patient(t, "patient@example.com")

	w := e.request(t, http.MethodPost, "/schedules", token, slotBody("Monday", "09:00", "12:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["schedule"].(map[string]any)["id"]

	w = e.request(t, http.MethodGet, fmt.Sprintf("/schedules/%v", id), patientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Monday", decode(t, w)["schedule"].(map[string]any)["week_day"])

	w = e.request(t, http.MethodGet, "/schedules/999", patientToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]any{"message": "Schedule not found", "type": "error"}, decode(t, w))
}
