package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

var TicketStatuses = []TicketStatus{TicketOpen, TicketInProgress, TicketResolved, TicketClosed}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

var TicketPriorities = []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh}

// Ticket - заявка в поддержку. EquipmentID - слабая ссылка: оборудование
// может быть удалено, тогда ссылка просто повисает.
type Ticket struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Status      TicketStatus   `json:"status" db:"status"`
	Priority    TicketPriority `json:"priority" db:"priority"`
	EquipmentID null.String    `json:"equipment_id" db:"equipment_id"`
	CreatedBy   string         `json:"created_by" db:"created_by"`
	AssignedTo  null.String    `json:"assigned_to" db:"assigned_to"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
