package clock

type Event struct {
	Date
	FuncIndex uint8
}

// Queue keeps events in date order; equal dates keep insertion order
type Queue struct {
	events []Event
}

func (q *Queue) Insert(ev Event) {
	i := 0
	for i < len(q.events) && !ev.Date.Before(q.events[i].Date) {
		i++
	}
	q.events = append(q.events, Event{})
	copy(q.events[i+1:], q.events[i:])
	q.events[i] = ev
}

// Append adds an event without reordering, as a loaded save does
func (q *Queue) Append(ev Event) {
	q.events = append(q.events, ev)
}

func (q *Queue) Len() int {
	return len(q.events)
}

func (q *Queue) Events() []Event {
	return q.events
}

func (q *Queue) Clear() {
	q.events = nil
}

func (q *Queue) popDue(today Date) []Event {
	n := 0
	for n < len(q.events) && q.events[n].Date == today {
		n++
	}
	due := append([]Event(nil), q.events[:n]...)
	q.events = q.events[n:]
	return due
}
