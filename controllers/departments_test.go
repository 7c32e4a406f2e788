package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

func TestDepartments(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, models.RoleAdmin, "admin@example.com")
	adminToken := e.login(t, "admin@example.com")
	doctorToken, _ := e.doctor(t, "doctor@example.com")

	w := e.request(t, http.MethodPost, "/departments", doctorToken, map[string]any{"name": "Neurology"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	errs := fieldErrors(t, e.request(t, http.MethodPost, "/departments", adminToken, map[string]any{}))
	assert.Contains(t, errs, "name")

	w = e.request(t, http.MethodPost, "/departments", adminToken, map[string]any{"name": "Neurology"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode(t, w)["department"].(map[string]any)

	w = e.request(t, http.MethodPost, "/departments", adminToken, map[string]any{"name": "Neurology"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, first["id"], decode(t, w)["department"].(map[string]any)["id"])

	w = e.request(t, http.MethodGet, "/departments", doctorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	// General comes from the doctor fixture
	assert.Len(t, decodeList(t, w), 2)
}
