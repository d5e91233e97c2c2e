package seeders

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// seedEquipment вставляет недостающее оборудование (по серийному номеру)
// и возвращает карту serial_number -> id для всех демо-единиц.
func seedEquipment(ctx context.Context, tx pgx.Tx) (int, map[string]string, error) {
	const query = `INSERT INTO equipment (name, type, status, serial_number, location, notes, last_maintenance)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		ON CONFLICT (serial_number) DO NOTHING`

	now := time.Now().UTC()
	inserted := 0
	serials := make([]string, 0, len(equipmentData))
	for _, e := range equipmentData {
		var lastMaintenance *time.Time
		if e.LastMaintenance > 0 {
			t := now.Add(-e.LastMaintenance)
			lastMaintenance = &t
		}
		tag, err := tx.Exec(ctx, query, e.Name, e.Type, e.Status, e.SerialNumber, e.Location, e.Notes, lastMaintenance)
		if err != nil {
			return inserted, nil, err
		}
		inserted += int(tag.RowsAffected())
		serials = append(serials, e.SerialNumber)
	}

	rows, err := tx.Query(ctx, "SELECT serial_number, id::text FROM equipment WHERE serial_number = ANY($1)", serials)
	if err != nil {
		return inserted, nil, err
	}
	defer rows.Close()

	ids := make(map[string]string, len(serials))
	for rows.Next() {
		var serial, id string
		if err := rows.Scan(&serial, &id); err != nil {
			return inserted, nil, err
		}
		ids[serial] = id
	}
	return inserted, ids, rows.Err()
}
