package infrastructure

import (
	"fmt"

	"sportsbook/events"
)

// LedgerStream is the JetStream stream holding every ledger subject
const LedgerStream = "sportsbook_events"

// EventSubjectMapper handles mapping between ledger events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts an event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBalanceChange:
		return "sportsbook.users.balance_changed"
	case events.EventTypeUserCreated:
		return "sportsbook.users.created"
	case events.EventTypeWagerPlaced:
		return "sportsbook.wagers.placed"
	case events.EventTypeWagerCancelled:
		return "sportsbook.wagers.cancelled"
	case events.EventTypeWagerSettled:
		return "sportsbook.wagers.settled"
	case events.EventTypePeriodChanged:
		return "sportsbook.periods.changed"
	default:
		return fmt.Sprintf("sportsbook.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"sportsbook.users.balance_changed",
		"sportsbook.users.created",
		"sportsbook.wagers.placed",
		"sportsbook.wagers.cancelled",
		"sportsbook.wagers.settled",
		"sportsbook.periods.changed",
	}
}
