package domain

// EventType tags a wire-level stream event.
type EventType string

const (
	EventSearching  EventType = "searching"
	EventRandom     EventType = "random"
	EventFound      EventType = "found"
	EventGenerating EventType = "generating"
	EventChunk      EventType = "chunk"
	EventDone       EventType = "done"
	EventError      EventType = "error"
)

// Event is one element of the streamed response. A stream contains zero or
// more non-terminal events followed by exactly one terminal event.
type Event interface {
	Kind() EventType
	Terminal() bool
}

// StatusEvent reports pipeline progress (searching / random / generating).
type StatusEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

func (e StatusEvent) Kind() EventType { return e.Type }
func (e StatusEvent) Terminal() bool  { return false }

// NewStatus creates a progress event.
func NewStatus(t EventType, message string) StatusEvent {
	return StatusEvent{Type: t, Message: message}
}

// FoundEvent announces the candidate chosen after ranking.
type FoundEvent struct {
	Type   EventType       `json:"type"`
	Title  string          `json:"title"`
	Result SearchCandidate `json:"result"`
}

func (e FoundEvent) Kind() EventType { return e.Type }
func (e FoundEvent) Terminal() bool  { return false }

// NewFound creates a found event for the given candidate.
func NewFound(c SearchCandidate) FoundEvent {
	return FoundEvent{Type: EventFound, Title: c.Title, Result: c}
}

// ChunkEvent carries one generated text fragment, forwarded in arrival order.
type ChunkEvent struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

func (e ChunkEvent) Kind() EventType { return e.Type }
func (e ChunkEvent) Terminal() bool  { return false }

// NewChunk creates a chunk event.
func NewChunk(content string) ChunkEvent {
	return ChunkEvent{Type: EventChunk, Content: content}
}

// DoneEvent is the successful terminal event.
type DoneEvent struct {
	Type           EventType         `json:"type"`
	FullResponse   string            `json:"full_response"`
	ConversID      int64             `json:"convers_id"`
	Results        []SearchCandidate `json:"results"`
	Festivals      []SearchCandidate `json:"festivals"`
	Attractions    []SearchCandidate `json:"attractions"`
	Restaurants    []SearchCandidate `json:"restaurants"`
	HasFestivals   bool              `json:"has_festivals"`
	HasAttractions bool              `json:"has_attractions"`
	HasRestaurants bool              `json:"has_restaurants"`
	MapMarkers     []MapMarker       `json:"map_markers"`
}

func (e DoneEvent) Kind() EventType { return e.Type }
func (e DoneEvent) Terminal() bool  { return true }

// NewDone creates the terminal success event. Slices are never nil so the
// wire format always carries arrays.
func NewDone(fullResponse string, conversID int64, results []SearchCandidate, markers []MapMarker) DoneEvent {
	ev := DoneEvent{
		Type:         EventDone,
		FullResponse: fullResponse,
		ConversID:    conversID,
		Results:      emptyIfNil(results),
		Festivals:    []SearchCandidate{},
		Attractions:  []SearchCandidate{},
		Restaurants:  []SearchCandidate{},
		MapMarkers:   markers,
	}
	if ev.MapMarkers == nil {
		ev.MapMarkers = []MapMarker{}
	}
	for _, c := range results {
		switch c.Domain {
		case DomainFestival:
			ev.Festivals = append(ev.Festivals, c)
		case DomainAttraction:
			ev.Attractions = append(ev.Attractions, c)
		case DomainRestaurant:
			ev.Restaurants = append(ev.Restaurants, c)
		}
	}
	ev.HasFestivals = len(ev.Festivals) > 0
	ev.HasAttractions = len(ev.Attractions) > 0
	ev.HasRestaurants = len(ev.Restaurants) > 0
	return ev
}

func emptyIfNil(cs []SearchCandidate) []SearchCandidate {
	if cs == nil {
		return []SearchCandidate{}
	}
	return cs
}

// ErrorEvent is the failed terminal event. It carries a human-readable
// message and never a stack trace.
type ErrorEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

func (e ErrorEvent) Kind() EventType { return e.Type }
func (e ErrorEvent) Terminal() bool  { return true }

// NewError creates the terminal error event.
func NewError(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: message}
}
