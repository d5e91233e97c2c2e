package seeders

import (
	"testing"

	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/customvalidator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentDataIsValid(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range equipmentData {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Location, e.Name)
		assert.Contains(t, entities.EquipmentStatuses, entities.EquipmentStatus(e.Status), e.SerialNumber)
		require.False(t, seen[e.SerialNumber], "duplicate serial %s", e.SerialNumber)
		seen[e.SerialNumber] = true
	}
}

func TestTicketDataReferencesDemoEquipment(t *testing.T) {
	serials := map[string]bool{}
	for _, e := range equipmentData {
		serials[e.SerialNumber] = true
	}
	for _, tk := range ticketData {
		assert.Contains(t, entities.TicketStatuses, entities.TicketStatus(tk.Status), tk.Title)
		assert.Contains(t, entities.TicketPriorities, entities.TicketPriority(tk.Priority), tk.Title)
		if tk.EquipmentSerial != "" {
			assert.True(t, serials[tk.EquipmentSerial], "unknown serial %s in %q", tk.EquipmentSerial, tk.Title)
		}
	}
}

func TestDefaultDemoPasswordIsStrong(t *testing.T) {
	assert.Empty(t, customvalidator.PasswordProblem("Demo-Tracker-2024!"))
}
