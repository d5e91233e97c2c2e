package crud

import (
	"fmt"

	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/types"
)

const TicketCollection = "tickets"

var ticketColumns = []string{
	"id", "title", "description", "status", "priority", "equipment_id",
	"created_by", "assigned_to", "created_at", "updated_at",
}

// TicketSchema - конфигурация экрана заявок. Статус при создании не задается
// (всегда open), created_by ставится из сессии и больше не отправляется.
func TicketSchema() *Schema[entities.Ticket] {
	return &Schema[entities.Ticket]{
		Entity:         "ticket",
		Collection:     TicketCollection,
		Columns:        ticketColumns,
		Order:          types.Order{Column: "created_at", Descending: true},
		Fields:         []string{"title", "description", "status", "priority", "equipment_id", "assigned_to"},
		RequiredFields: []string{"title", "description"},
		Rules: map[string]string{
			"status":   "omitempty,oneof=" + joinValues(entities.TicketStatuses),
			"priority": "omitempty,oneof=" + joinValues(entities.TicketPriorities),
		},
		Defaults: types.Row{
			"status":   string(entities.TicketOpen),
			"priority": string(entities.PriorityMedium),
		},
		CreateFields:   []string{"title", "description", "priority", "equipment_id", "assigned_to"},
		MutableFields:  []string{"title", "description", "status", "priority", "equipment_id", "assigned_to"},
		NullableFields: []string{"equipment_id", "assigned_to"},
		SearchFields:   []string{"title", "description"},
		CreatorField:   "created_by",
		Decode:         decodeTicket,
		Encode:         encodeTicket,
		ID:             func(t entities.Ticket) string { return t.ID },
	}
}

func decodeTicket(r types.Row) (entities.Ticket, error) {
	id := r.String("id")
	if id == "" {
		return entities.Ticket{}, fmt.Errorf("ticket row without id")
	}
	return entities.Ticket{
		ID:          id,
		Title:       r.String("title"),
		Description: r.String("description"),
		Status:      entities.TicketStatus(r.String("status")),
		Priority:    entities.TicketPriority(r.String("priority")),
		EquipmentID: r.NullString("equipment_id"),
		CreatedBy:   r.String("created_by"),
		AssignedTo:  r.NullString("assigned_to"),
		CreatedAt:   r.Time("created_at"),
		UpdatedAt:   r.Time("updated_at"),
	}, nil
}

func encodeTicket(t entities.Ticket) types.Row {
	return types.Row{
		"id":           t.ID,
		"title":        t.Title,
		"description":  t.Description,
		"status":       string(t.Status),
		"priority":     string(t.Priority),
		"equipment_id": nullString(t.EquipmentID),
		"created_by":   t.CreatedBy,
		"assigned_to":  nullString(t.AssignedTo),
		"created_at":   t.CreatedAt,
		"updated_at":   t.UpdatedAt,
	}
}
