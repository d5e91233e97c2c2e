package repositories

import (
	"context"
	"errors"
	"fmt"

	"equipment-tracker/internal/entities"
	apperrors "equipment-tracker/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userTableRepo = "users"

var userSelectFields = []string{"id::text", "email", "password", "role", "email_confirmed_at", "created_at"}

type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	ConfirmEmail(ctx context.Context, id string) error
}

type UserRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.EmailConfirmedAt, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (*entities.User, error) {
	query, args, err := sq.Select(userSelectFields...).From(userTableRepo).
		Where(where).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"lower(email)": normalizeEmail(email)})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	role := user.Role
	if role == "" {
		role = entities.RoleUser
	}
	query, args, err := sq.Insert(userTableRepo).
		Columns("email", "password", "role").
		Values(normalizeEmail(user.Email), user.Password, string(role)).
		Suffix("RETURNING id::text, email, password, role, email_confirmed_at, created_at").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrUserAlreadyExists
		}
		r.logger.Error("Ошибка создания пользователя", zap.String("email", user.Email), zap.Error(err))
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) ConfirmEmail(ctx context.Context, id string) error {
	query, args, err := sq.Update(userTableRepo).
		Set("email_confirmed_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("email_confirmed_at IS NULL").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
