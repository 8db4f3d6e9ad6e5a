package chi

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

func TestStreamEmitter_OneJSONObjectPerLine(t *testing.T) {
	rec := httptest.NewRecorder()
	em := newStreamEmitter(rec, rec)

	events := []domain.Event{
		domain.NewStatus(domain.EventSearching, "looking"),
		domain.NewChunk("hello"),
		domain.NewDone("hello", 3, nil, nil),
	}
	for _, ev := range events {
		if err := em.Emit(ev); err != nil {
			t.Fatalf("Emit(%s): %v", ev.Kind(), err)
		}
	}

	body := rec.Body.String()
	if !strings.HasSuffix(body, "\n") {
		t.Error("every event must end with a newline")
	}

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) != len(events) {
		t.Fatalf("expected %d lines, got %d", len(events), len(lines))
	}

	for i, line := range lines {
		var obj map[string]any
		if err := sonic.Unmarshal([]byte(line), &obj); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if obj["type"] != string(events[i].Kind()) {
			t.Errorf("line %d type = %v, want %q", i, obj["type"], events[i].Kind())
		}
	}
}

func TestStreamEmitter_DoneCarriesArraysNotNull(t *testing.T) {
	rec := httptest.NewRecorder()
	em := newStreamEmitter(rec, rec)

	if err := em.Emit(domain.NewDone("", 0, nil, nil)); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	line := rec.Body.String()
	for _, field := range []string{"results", "festivals", "attractions", "restaurants", "map_markers"} {
		if strings.Contains(line, `"`+field+`":null`) {
			t.Errorf("field %q serialized as null: %s", field, line)
		}
	}
}

func TestStreamEmitter_ClosedAfterTerminal(t *testing.T) {
	rec := httptest.NewRecorder()
	em := newStreamEmitter(rec, rec)

	if err := em.Emit(domain.NewError("boom")); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := em.Emit(domain.NewChunk("late")); !errors.Is(err, errStreamClosed) {
		t.Errorf("expected errStreamClosed after a terminal event, got %v", err)
	}

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("nothing may be written after the terminal event, got %d lines", len(lines))
	}
}
