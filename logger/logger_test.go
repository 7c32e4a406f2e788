package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewWithOutput("debug", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewWithOutput("nonsense", &bytes.Buffer{}).GetLevel())
}

func TestAuditEntries(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	log.Audit(7, "update", "schedules", true)
	assert.Zero(t, buf.Len(), "granted decisions log at debug")

	log.Audit(7, "update", "schedules", false)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Access denied", entry["message"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, "schedules", entry["resource"])
	assert.Equal(t, false, entry["allowed"])
	assert.Contains(t, entry, "timestamp")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	NewWithOutput("info", &buf).WithComponent("redis").Info("connected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "redis", entry["component"])
}
