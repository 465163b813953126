package events

import "time"

const PersonnelCreatedTopic = "hr.personnel.lifecycle.v1"

const PersonnelCreatedType = "personnel_created"

type PersonnelCreatedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	PersonnelID      string    `json:"personnel_id"`
	CompanyID        string    `json:"company_id"`
	DateOfEmployment string    `json:"date_of_employment"`
	OccurredAt       time.Time `json:"occurred_at"`
}
