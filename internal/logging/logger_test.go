package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(buf *bytes.Buffer, component string) Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetOutput(buf)
	logger.SetLevel(logrus.DebugLevel)
	return &StructuredLogger{logger: logger, baseFields: make(map[string]interface{}), component: component}
}

func TestLogger_Info_EmitsComponentAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf, "scheduler")

	logger.Info(context.Background(), "placed instance", String("group", "MIN"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "placed instance", entry["message"])
	assert.Equal(t, "scheduler", entry["component"])
	assert.Equal(t, "MIN", entry["group"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_PropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf, "httpapi")
	ctx := WithRequestID(context.Background(), "req-123")

	logger.Warn(ctx, "dropping subscriber")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "warning", entry["level"])
}

func TestGetRequestID_AbsentReturnsEmpty(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestWithFields_CarriesIntoSubsequentCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf, "dedicated").WithFields(String("node", "node-1"))

	logger.Error(context.Background(), "launch failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "node-1", entry["node"])
}

func TestWithError_AttachesErrorField(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferedLogger(&buf, "launch")
	derived := base.WithError(assert.AnError)

	derived.Debug(context.Background(), "retrying")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "n", Value: 5}, Int("n", 5))
	assert.Equal(t, Field{Key: "ok", Value: true}, Bool("ok", true))
}
