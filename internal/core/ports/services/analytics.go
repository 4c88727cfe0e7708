package services

// EventTracker receives product analytics events. A nil tracker drops events.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}
