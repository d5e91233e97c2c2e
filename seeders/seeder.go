package seeders

import (
	"context"
	"fmt"

	"equipment-tracker/internal/repositories"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Options выбирает, какие сидеры запускать.
type Options struct {
	User      bool
	Equipment bool
	Tickets   bool

	DemoEmail    string
	DemoPassword string
}

type Seeder struct {
	tx     repositories.TxManagerInterface
	logger *zap.Logger
}

func New(tx repositories.TxManagerInterface, logger *zap.Logger) *Seeder {
	return &Seeder{tx: tx, logger: logger}
}

// Run выполняет выбранные сидеры в одной транзакции. Заявкам нужен
// демо-пользователь как автор, поэтому -tickets тянет за собой -user.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	return s.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var userID string
		if opts.User || opts.Tickets {
			id, err := seedDemoUser(ctx, tx, opts.DemoEmail, opts.DemoPassword)
			if err != nil {
				return fmt.Errorf("demo user: %w", err)
			}
			userID = id
			s.logger.Info("Демо-пользователь готов", zap.String("email", opts.DemoEmail), zap.String("id", id))
		}

		var serials map[string]string
		if opts.Equipment || opts.Tickets {
			inserted, ids, err := seedEquipment(ctx, tx)
			if err != nil {
				return fmt.Errorf("equipment: %w", err)
			}
			serials = ids
			s.logger.Info("Оборудование заполнено", zap.Int("inserted", inserted), zap.Int("total", len(ids)))
		}

		if opts.Tickets {
			inserted, err := seedTickets(ctx, tx, userID, serials)
			if err != nil {
				return fmt.Errorf("tickets: %w", err)
			}
			if inserted == 0 {
				s.logger.Info("Заявки уже есть, пропускаем")
			} else {
				s.logger.Info("Заявки заполнены", zap.Int("inserted", inserted))
			}
		}
		return nil
	})
}
