package seeders

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// seedTickets заполняет заявки только в пустой таблице, чтобы повторный
// запуск не плодил дубликаты.
func seedTickets(ctx context.Context, tx pgx.Tx, createdBy string, serials map[string]string) (int, error) {
	var count int
	if err := tx.QueryRow(ctx, "SELECT count(*) FROM tickets").Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	const query = `INSERT INTO tickets (title, description, status, priority, equipment_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::uuid, $6::uuid, $7, $7)`

	now := time.Now().UTC()
	for _, t := range ticketData {
		var equipmentID *string
		if id, ok := serials[t.EquipmentSerial]; ok {
			equipmentID = &id
		}
		if _, err := tx.Exec(ctx, query, t.Title, t.Description, t.Status, t.Priority, equipmentID, createdBy, now.Add(-t.Age)); err != nil {
			return 0, err
		}
	}
	return len(ticketData), nil
}
