package a2a

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEvent(t *testing.T) {
	task := NewTask()
	task.AddArtifact(NewArtifact("out", NewTextPart("result")))

	tests := []struct {
		name  string
		event Event
	}{
		{name: "message", event: NewTextMessage("agent", "hi")},
		{name: "task", event: *task},
		{name: "status update", event: NewStatusUpdateEvent(task, true)},
		{name: "artifact update", event: NewArtifactUpdateEvent(task, task.Artifacts[0], false, true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.event)
			assert.NoError(t, err)

			decoded, err := DecodeEvent(raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.event.EventKind(), decoded.EventKind())
		})
	}
}

func TestDecodeEventUnknownKind(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"kind":"telemetry"}`))

	var unknown *ErrUnknownEventKind
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "telemetry", unknown.Kind)
}

func TestDecodeEventMalformed(t *testing.T) {
	_, err := DecodeEvent([]byte(`{`))
	assert.Error(t, err)
}

func TestStatusUpdateEventCarriesTaskIdentity(t *testing.T) {
	task := NewTask()
	evt := NewStatusUpdateEvent(task, false)

	assert.Equal(t, task.ID, evt.TaskID)
	assert.Equal(t, task.ContextID, evt.ContextID)
	assert.Equal(t, KindStatusUpdate, evt.Kind)
	assert.False(t, evt.Final)
}

func TestArtifactUpdateEventFlags(t *testing.T) {
	task := NewTask()
	artifact := NewArtifact("chunk", NewTextPart("partial"))

	evt := NewArtifactUpdateEvent(task, artifact, true, false)

	assert.Equal(t, KindArtifactUpdate, evt.Kind)
	assert.NotNil(t, evt.Append)
	assert.True(t, *evt.Append)
	assert.NotNil(t, evt.LastChunk)
	assert.False(t, *evt.LastChunk)
}
