package sse

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
)

func collect(t *testing.T, stream *Stream) []a2a.Event {
	t.Helper()

	var events []a2a.Event

	for {
		select {
		case event, ok := <-stream.Events():
			if !ok {
				return events
			}
			events = append(events, event)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out draining stream")
		}
	}
}

func TestStreamDecodesEnvelopedEvents(t *testing.T) {
	body := strings.Join([]string{
		`data: {"jsonrpc":"2.0","id":1,"result":{"kind":"status-update","taskId":"t1","contextId":"c1","status":{"state":"working"},"final":false}}`,
		``,
		`data: {"jsonrpc":"2.0","id":1,"result":{"kind":"status-update","taskId":"t1","contextId":"c1","status":{"state":"completed"},"final":true}}`,
		``,
		``,
	}, "\n")

	stream := NewStream(io.NopCloser(strings.NewReader(body)))
	events := collect(t, stream)

	assert.Len(t, events, 2)

	first, ok := events[0].(a2a.TaskStatusUpdateEvent)
	assert.True(t, ok)
	assert.Equal(t, a2a.TaskStateWorking, first.Status.State)

	last, ok := events[1].(a2a.TaskStatusUpdateEvent)
	assert.True(t, ok)
	assert.True(t, last.Final)
}

func TestStreamDecodesBareEvents(t *testing.T) {
	body := `data: {"kind":"message","role":"agent","parts":[{"kind":"text","text":"hi"}],"messageId":"m1"}` + "\n\n"

	stream := NewStream(io.NopCloser(strings.NewReader(body)))
	events := collect(t, stream)

	assert.Len(t, events, 1)

	msg, ok := events[0].(a2a.Message)
	assert.True(t, ok)
	assert.Equal(t, "hi", msg.String())
}

func TestStreamDropsNoise(t *testing.T) {
	body := strings.Join([]string{
		`: comment line`,
		`event: custom`,
		`data: not json at all`,
		`data: {"kind":"unrecognized-kind"}`,
		`data: {"kind":"message","role":"agent","parts":[],"messageId":"m2"}`,
		``,
	}, "\n")

	stream := NewStream(io.NopCloser(strings.NewReader(body)))
	events := collect(t, stream)

	assert.Len(t, events, 1)
	assert.Equal(t, a2a.KindMessage, events[0].EventKind())
}

func TestStreamHandlesCRLF(t *testing.T) {
	body := "data: {\"kind\":\"task\",\"id\":\"t9\",\"contextId\":\"c9\",\"status\":{\"state\":\"submitted\"}}\r\n\r\n"

	stream := NewStream(io.NopCloser(strings.NewReader(body)))
	events := collect(t, stream)

	assert.Len(t, events, 1)

	task, ok := events[0].(a2a.Task)
	assert.True(t, ok)
	assert.Equal(t, "t9", task.ID)
}

func TestStreamCompletesOnEOF(t *testing.T) {
	stream := NewStream(io.NopCloser(strings.NewReader("")))

	select {
	case _, ok := <-stream.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not complete on EOF")
	}
}

func TestStreamCloseIsIdempotent(t *testing.T) {
	stream := NewStream(io.NopCloser(strings.NewReader("data: {}\n")))

	stream.Close()
	stream.Close()

	collect(t, stream)
}
