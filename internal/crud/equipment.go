package crud

import (
	"fmt"
	"strings"

	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/types"

	"github.com/aarondl/null/v8"
)

const EquipmentCollection = "equipment"

var equipmentColumns = []string{
	"id", "name", "type", "status", "serial_number", "location", "notes", "last_maintenance", "created_at",
}

var equipmentEditable = []string{"name", "type", "status", "serial_number", "location", "notes"}

// EquipmentSchema - конфигурация экрана инвентаря.
func EquipmentSchema() *Schema[entities.Equipment] {
	return &Schema[entities.Equipment]{
		Entity:         "equipment",
		Collection:     EquipmentCollection,
		Columns:        equipmentColumns,
		Order:          types.Order{Column: "name"},
		Fields:         equipmentEditable,
		RequiredFields: []string{"name", "serial_number", "location"},
		Rules: map[string]string{
			"status": "omitempty,oneof=" + joinValues(entities.EquipmentStatuses),
		},
		Defaults:       types.Row{"status": string(entities.EquipmentAvailable)},
		CreateFields:   equipmentEditable,
		MutableFields:  equipmentEditable,
		NullableFields: []string{"notes"},
		SearchFields:   []string{"name", "serial_number", "location"},
		Decode:         decodeEquipment,
		Encode:         encodeEquipment,
		ID:             func(e entities.Equipment) string { return e.ID },
	}
}

func decodeEquipment(r types.Row) (entities.Equipment, error) {
	id := r.String("id")
	if id == "" {
		return entities.Equipment{}, fmt.Errorf("equipment row without id")
	}
	return entities.Equipment{
		ID:              id,
		Name:            r.String("name"),
		Type:            r.String("type"),
		Status:          entities.EquipmentStatus(r.String("status")),
		SerialNumber:    r.String("serial_number"),
		Location:        r.String("location"),
		Notes:           r.NullString("notes"),
		LastMaintenance: r.NullTime("last_maintenance"),
		CreatedAt:       r.Time("created_at"),
	}, nil
}

func encodeEquipment(e entities.Equipment) types.Row {
	return types.Row{
		"id":               e.ID,
		"name":             e.Name,
		"type":             e.Type,
		"status":           string(e.Status),
		"serial_number":    e.SerialNumber,
		"location":         e.Location,
		"notes":            nullString(e.Notes),
		"last_maintenance": nullTime(e.LastMaintenance),
		"created_at":       e.CreatedAt,
	}
}

func nullString(s null.String) interface{} {
	if !s.Valid {
		return nil
	}
	return s.String
}

func nullTime(t null.Time) interface{} {
	if !t.Valid {
		return nil
	}
	return t.Time
}

func joinValues[S ~string](values []S) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}
