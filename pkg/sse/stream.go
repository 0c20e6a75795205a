package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
	"github.com/spindlework/a2a-runtime/pkg/logging"
)

/*
Stream turns an SSE response body into a lazy, finite, non-restartable
sequence of typed A2A events. Each line starting with "data: " is decoded
as JSON; if the payload is a JSON-RPC success envelope the result is
unwrapped first. Unknown kinds and malformed payloads are dropped (logged
at debug level) to keep the stream alive. The sequence completes when the
underlying transport closes.
*/
type Stream struct {
	events    chan a2a.Event
	body      io.ReadCloser
	closeOnce sync.Once
}

/*
NewStream starts consuming the given body. The caller owns the stream and
should drain Events or call Close.
*/
func NewStream(body io.ReadCloser) *Stream {
	stream := &Stream{
		events: make(chan a2a.Event, 8),
		body:   body,
	}

	go stream.consume()

	return stream
}

/*
Events is the channel of decoded events. It is closed when the stream
ends.
*/
func (stream *Stream) Events() <-chan a2a.Event {
	return stream.events
}

/*
Close cancels the producer by closing the underlying body. Pending events
already decoded may still be delivered before the channel closes.
*/
func (stream *Stream) Close() {
	stream.closeOnce.Do(func() {
		stream.body.Close()
	})
}

func (stream *Stream) consume() {
	defer close(stream.events)
	defer stream.Close()

	reader := bufio.NewReader(stream.body)

	for {
		line, err := reader.ReadString('\n')

		if len(line) > 0 {
			if event, ok := decodeLine(line); ok {
				stream.events <- event
			}
		}

		if err != nil {
			return
		}
	}
}

/*
decodeLine parses a single SSE line. Non-data lines (comments, blank
separators, event/id fields) are no-ops.
*/
func decodeLine(line string) (a2a.Event, bool) {
	line = strings.TrimRight(line, "\r\n")

	if !strings.HasPrefix(line, "data:") {
		return nil, false
	}

	payload := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")

	if payload == "" {
		return nil, false
	}

	raw := unwrapEnvelope([]byte(payload))

	event, err := a2a.DecodeEvent(raw)
	if err != nil {
		logging.Debug("dropping undecodable SSE event", "error", err)
		return nil, false
	}

	return event, true
}

/*
unwrapEnvelope returns the result member when the payload is a JSON-RPC
success envelope, else the payload itself. Servers are allowed to emit
either framing; clients must tolerate both.
*/
func unwrapEnvelope(payload []byte) []byte {
	var probe struct {
		Result json.RawMessage `json:"result"`
	}

	if err := json.Unmarshal(payload, &probe); err == nil && len(probe.Result) > 0 {
		return probe.Result
	}

	return payload
}
