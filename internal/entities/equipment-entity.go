package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentInUse       EquipmentStatus = "in-use"
	EquipmentMaintenance EquipmentStatus = "maintenance"
)

var EquipmentStatuses = []EquipmentStatus{EquipmentAvailable, EquipmentInUse, EquipmentMaintenance}

// Equipment - единица компьютерного оборудования.
// serial_number уникален, но это обеспечивает бэкенд.
type Equipment struct {
	ID              string          `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Type            string          `json:"type" db:"type"`
	Status          EquipmentStatus `json:"status" db:"status"`
	SerialNumber    string          `json:"serial_number" db:"serial_number"`
	Location        string          `json:"location" db:"location"`
	Notes           null.String     `json:"notes" db:"notes"`
	LastMaintenance null.Time       `json:"last_maintenance" db:"last_maintenance"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
