package services

import (
	"context"
	"fmt"
	"time"

	"equipment-tracker/internal/crud"
	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	recentActivityLimit   = 4
	activityTicketCreated = "ticket_created"
)

type DashboardServiceInterface interface {
	Overview(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	client crud.CollectionClient
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(client crud.CollectionClient, logger *zap.Logger) *DashboardService {
	return &DashboardService{client: client, logger: logger, now: time.Now}
}

func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardDTO, error) {
	var (
		equipment []entities.Equipment
		tickets   []entities.Ticket
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		equipment, err = fetchAll(gctx, s.client, crud.EquipmentSchema())
		return err
	})
	g.Go(func() (err error) {
		tickets, err = fetchAll(gctx, s.client, crud.TicketSchema())
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Не удалось собрать данные дашборда", zap.Error(err))
		return nil, err
	}

	return s.build(equipment, tickets), nil
}

func (s *DashboardService) build(equipment []entities.Equipment, tickets []entities.Ticket) *dto.DashboardDTO {
	now := s.now()
	out := &dto.DashboardDTO{RecentActivity: []dto.ActivityDTO{}}

	names := make(map[string]string, len(equipment))
	out.Stats.TotalEquipment = len(equipment)
	for _, e := range equipment {
		names[e.ID] = e.Name
		switch e.Status {
		case entities.EquipmentAvailable:
			out.Equipment.Available++
		case entities.EquipmentInUse:
			out.Equipment.InUse++
		case entities.EquipmentMaintenance:
			out.Equipment.Maintenance++
		}
	}

	for _, t := range tickets {
		if t.Status == entities.TicketOpen {
			out.Stats.ActiveTickets++
		}
		if t.Priority == entities.PriorityHigh {
			out.Stats.CriticalIssues++
		}
		if t.Status == entities.TicketResolved && sameDay(t.UpdatedAt, now) {
			out.Stats.ResolvedToday++
		}
	}

	// Заявки уже отсортированы по created_at DESC.
	for i, t := range tickets {
		if i == recentActivityLimit {
			break
		}
		out.RecentActivity = append(out.RecentActivity, dto.ActivityDTO{
			ID:    t.ID,
			Type:  activityTicketCreated,
			Title: "Ticket Created",
			Item:  activityItem(t, names),
			Time:  timeAgo(t.CreatedAt, now),
		})
	}
	return out
}

func fetchAll[T any](ctx context.Context, client crud.CollectionClient, schema *crud.Schema[T]) ([]T, error) {
	order := schema.Order
	rows, err := client.Select(ctx, schema.Collection, schema.Columns, &order)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := schema.Decode(row)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", schema.Entity, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// activityItem - имя оборудования по слабой ссылке; висячая ссылка показывается как есть.
func activityItem(t entities.Ticket, names map[string]string) string {
	if !t.EquipmentID.Valid {
		return t.Title
	}
	if name, ok := names[t.EquipmentID.String]; ok {
		return name
	}
	return t.EquipmentID.String
}

func timeAgo(at, now time.Time) string {
	hours := int(now.Sub(at).Hours())
	if hours < 0 {
		hours = 0
	}
	return fmt.Sprintf("%d hours ago", hours)
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
