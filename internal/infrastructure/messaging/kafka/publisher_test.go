package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

type fakeWriter struct {
	messages []kafka.Message
	writeErr error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublishEnvelopesPayload(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, "dev.", "apiserver", nil)

	payload := map[string]string{"session_id": "s-1", "ticket_number": "WK12345678"}
	require.NoError(t, p.Publish(context.Background(), "appeal.case_submitted", payload))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "dev.appeal-events", msg.Topic)
	assert.Equal(t, "appeal.case_submitted", string(msg.Key))

	var env EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, "appeal.case_submitted", env.EventType)
	assert.Equal(t, "apiserver", env.Source)
	assert.Equal(t, SchemaVersion, env.SchemaVersion)
	assert.False(t, env.Timestamp.IsZero())

	var got map[string]string
	require.NoError(t, json.Unmarshal(env.Payload, &got))
	assert.Equal(t, payload, got)
}

func TestPublishTopicRouting(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, "", "worker", nil)
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, "appeal.session_started", nil))
	require.NoError(t, p.Publish(ctx, "appeal.calibration_completed", nil))

	assert.Equal(t, TopicAppealEvents, w.messages[0].Topic)
	assert.Equal(t, TopicCalibrationEvents, w.messages[1].Topic)
}

func TestPublishWriteFailure(t *testing.T) {
	w := &fakeWriter{writeErr: errors.New("broker unreachable")}
	p := NewPublisherWithWriter(w, "", "apiserver", nil)

	err := p.Publish(context.Background(), "appeal.case_submitted", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeExternalService))
}

func TestPublishUnserializablePayload(t *testing.T) {
	p := NewPublisherWithWriter(&fakeWriter{}, "", "apiserver", nil)

	err := p.Publish(context.Background(), "appeal.case_submitted", func() {})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSerialization))
}

func TestCloseStopsPublishing(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, "", "apiserver", nil)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
	require.NoError(t, p.Close()) // idempotent

	err := p.Publish(context.Background(), "appeal.case_submitted", nil)
	require.Error(t, err)
}
