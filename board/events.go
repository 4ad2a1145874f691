package board

// EventKind discriminates board events.
type EventKind int

const (
	// EventLock fires when the active pair becomes grid cells.
	EventLock EventKind = iota
	// EventClear fires once per chain pass that removed cells.
	EventClear
	// EventSpawn fires when the next pair becomes the active pair.
	EventSpawn
	// EventGameOver fires when a new pair cannot enter the grid.
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventLock:
		return "lock"
	case EventClear:
		return "clear"
	case EventSpawn:
		return "spawn"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event describes a state change. Pass, Cleared and Points are only set for
// EventClear; Pair is set for EventLock and EventSpawn.
type Event struct {
	Kind    EventKind
	Pair    Pair
	Pass    int
	Cleared int
	Points  int
	Score   int
}

// Listener receives events synchronously from the goroutine driving the board.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }
