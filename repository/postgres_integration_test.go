//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shreejanpandit/doc-appointment-api/configuration"
	"github.com/shreejanpandit/doc-appointment-api/models"
)

func newPostgresStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "doc",
				"POSTGRES_PASSWORD": "doc",
				"POSTGRES_DB":       "doc_appointment",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := configuration.ConfigDB(configuration.DatabaseConfig{
		DSN:             fmt.Sprintf("host=%s port=%s user=doc password=doc dbname=doc_appointment sslmode=disable", host, port.Port()),
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	return New(db)
}

func TestPostgresConcurrentFirstOrCreate(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()
	doctor := seedDoctor(t, s, "doc@example.com")

	const workers = 8
	ids := make([]uint, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slot := models.Schedule{DoctorID: doctor.ID, WeekDay: "Monday", StartTime: "09:00", EndTime: "12:00"}
			_, err := s.FirstOrCreateSchedule(ctx, &slot)
			assert.NoError(t, err)
			ids[i] = slot.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	schedules, err := s.ListSchedules(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
}

func TestPostgresDeleteDoctorCascades(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()
	doctor := seedDoctor(t, s, "doc@example.com")
	patient := seedPatient(t, s, "pat@example.com")

	slot := models.Schedule{DoctorID: doctor.ID, WeekDay: "Friday", StartTime: "09:00", EndTime: "10:00"}
	_, err := s.FirstOrCreateSchedule(ctx, &slot)
	require.NoError(t, err)
	appt := models.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, Date: "2030-01-01", Time: "09:30", Description: "x"}
	require.NoError(t, s.CreateAppointment(ctx, &appt))

	require.NoError(t, s.DeleteDoctor(ctx, doctor))

	_, err = s.FindSchedule(ctx, slot.ID)
	assert.ErrorContains(t, err, "Schedule not found")
	_, err = s.FindAppointment(ctx, appt.ID)
	assert.ErrorContains(t, err, "Appointment not found")
}
