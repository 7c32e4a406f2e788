package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shreejanpandit/doc-appointment-api/authentication"
	"github.com/shreejanpandit/doc-appointment-api/configuration"
	"github.com/shreejanpandit/doc-appointment-api/controllers"
	"github.com/shreejanpandit/doc-appointment-api/logger"
	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/monitoring"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/repository"
	"github.com/shreejanpandit/doc-appointment-api/routes"
)

const testPassword = "password123"

type testEnv struct {
	router  *gin.Engine
	store   *repository.Store
	db      *gorm.DB
	redis   *miniredis.Miniredis
	handler *controllers.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, configuration.Migrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logger.NewWithOutput("error", io.Discard)
	store := repository.New(db)
	handler := &controllers.Handler{
		Store:    store,
		Policies: policies.New(log),
		Tokens:   authentication.NewTokenIssuer("test-secret", 0, "test"),
		Sessions: authentication.NewSessionStore(client),
		Images:   controllers.NewImageStore(t.TempDir()),
		Metrics:  monitoring.NewMetrics("test"),
		Log:      log,
	}

	return &testEnv{
		router:  routes.Router(handler, []string{"*"}, log),
		store:   store,
		db:      db,
		redis:   mr,
		handler: handler,
	}
}

// createUser inserts a user with testPassword directly in the store.
func (e *testEnv) createUser(t *testing.T, role models.Role, email string) *models.User {
	t.Helper()
	hashed, err := authentication.HashPassword(testPassword)
	require.NoError(t, err)
	user := &models.User{Name: "User " + email, Email: email, Password: hashed, Role: role}
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/login", "", map[string]any{"email": email, "password": testPassword})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) department(t *testing.T, name string) *models.Department {
	t.Helper()
	dept := &models.Department{Name: name}
	_, err := e.store.FirstOrCreateDepartment(context.Background(), dept)
	require.NoError(t, err)
	return dept
}

// doctor registers a doctor user with a profile and returns its token.
func (e *testEnv) doctor(t *testing.T, email string) (string, *models.Doctor) {
	t.Helper()
	user := e.createUser(t, models.RoleDoctor, email)
	dept := e.department(t, "General")
	doctor := &models.Doctor{UserID: user.ID, Contact: "555-0100", Bio: "GP", DepartmentID: dept.ID}
	_, err := e.store.FirstOrCreateDoctor(context.Background(), doctor)
	require.NoError(t, err)
	return e.login(t, email), doctor
}

// patient registers a patient user with a profile and returns its token.
func (e *testEnv) patient(t *testing.T, email string) (string, *models.Patient) {
	t.Helper()
	user := e.createUser(t, models.RolePatient, email)
	patient := &models.Patient{UserID: user.ID, DOB: "1990-05-01", Gender: models.GenderFemale}
	_, err := e.store.FirstOrCreatePatient(context.Background(), patient)
	require.NoError(t, err)
	return e.login(t, email), patient
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// fieldErrors returns the per-field messages of a 422 response.
func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	body := decode(t, w)
	require.Equal(t, "The given data was invalid.", body["message"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	return errs
}
