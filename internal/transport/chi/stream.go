package chi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

var errStreamClosed = errors.New("stream already terminated")

// streamEmitter writes events as newline-delimited JSON, one object per line,
// flushing after every event. Once a terminal event has been written the
// emitter refuses further writes.
type streamEmitter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

func newStreamEmitter(w http.ResponseWriter, flusher http.Flusher) *streamEmitter {
	return &streamEmitter{w: w, flusher: flusher}
}

func (e *streamEmitter) Emit(ev domain.Event) error {
	if e.closed {
		return errStreamClosed
	}

	line, err := sonic.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Kind(), err)
	}

	if _, err := e.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write %s event: %w", ev.Kind(), err)
	}
	e.flusher.Flush()

	if ev.Terminal() {
		e.closed = true
	}
	return nil
}
