package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/events"
	"equipment-tracker/internal/repositories"
	"equipment-tracker/internal/session"
	"equipment-tracker/pkg/config"
	"equipment-tracker/pkg/customvalidator"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/eventbus"
	"equipment-tracker/pkg/service"
	"equipment-tracker/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SignUpTitle   = "Registration Successful"
	SignUpMessage = "Please check your email to verify your account before logging in."
)

type AuthServiceInterface interface {
	SignIn(ctx context.Context, payload dto.LoginDTO) (*session.Session, error)
	SignUp(ctx context.Context, payload dto.LoginDTO) error
	VerifyEmail(ctx context.Context, token string) error
	SignOut(ctx context.Context) error
	Restore(ctx context.Context) error
	State() session.AuthState
	CurrentUser() (session.Identity, bool)
}

// AuthService - сервис аккаунтов устройства. Держит наблюдаемое состояние
// {session, loading} и публикует SessionChangedEvent при каждом его изменении.
type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	bus        *eventbus.Bus
	validate   *validator.Validate
	logger     *zap.Logger
	cfg        *config.AuthConfig
	serviceURL string

	mu    sync.RWMutex
	state session.AuthState
	// publishMu держит запись состояния и публикацию вместе:
	// слушатели получают события в порядке записей.
	publishMu sync.Mutex
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	bus *eventbus.Bus,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg *config.AuthConfig,
	serviceURL string,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		bus:        bus,
		validate:   validate,
		logger:     logger,
		cfg:        cfg,
		serviceURL: strings.TrimRight(serviceURL, "/"),
		// До Restore сессия не определена.
		state: session.AuthState{Loading: true},
	}
}

func (s *AuthService) State() session.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *AuthService) CurrentUser() (session.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Session == nil {
		return session.Identity{}, false
	}
	return s.state.Session.User, true
}

func (s *AuthService) setState(ctx context.Context, state session.AuthState) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(ctx, events.SessionChangedEvent{State: state})
	}
}

func (s *AuthService) validateForm(payload dto.LoginDTO) error {
	if err := s.validate.Struct(payload); err != nil {
		var fields []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
		}
		msg := customvalidator.Message(err, customvalidator.Options{AllowedEmailDomain: s.cfg.AllowedEmailDomain})
		return apperrors.NewValidationError(errors.New(msg), fields...)
	}
	return nil
}

func (s *AuthService) SignIn(ctx context.Context, payload dto.LoginDTO) (*session.Session, error) {
	if err := s.validateForm(payload); err != nil {
		return nil, err
	}
	logger := s.logger.With(zap.String("email", payload.Email))

	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Вход: пользователь не найден")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		logger.Warn("Вход: неверный пароль")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Confirmed() {
		logger.Warn("Вход: email не подтвержден")
		return nil, apperrors.ErrEmailNotConfirmed
	}

	token, expiresAt, err := s.jwtService.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	if err := s.cacheRepo.Set(ctx, repositories.SessionCacheKey, token, s.jwtService.GetSessionTTL()); err != nil {
		logger.Error("Не удалось сохранить сессию", zap.Error(err))
		return nil, fmt.Errorf("persist session: %w", err)
	}

	sess := &session.Session{
		User:      session.Identity{ID: user.ID, Email: user.Email},
		Token:     token,
		ExpiresAt: expiresAt,
	}
	s.setState(ctx, session.AuthState{Session: sess})
	logger.Info("Пользователь вошел", zap.String("userID", user.ID))
	return sess, nil
}

func (s *AuthService) SignUp(ctx context.Context, payload dto.LoginDTO) error {
	if err := s.validateForm(payload); err != nil {
		return err
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return err
	}
	user, err := s.userRepo.Create(ctx, &entities.User{
		Email:    payload.Email,
		Password: hash,
		Role:     entities.RoleUser,
	})
	if err != nil {
		return err
	}

	token := uuid.New().String()
	if err := s.cacheRepo.Set(ctx, repositories.VerificationCacheKey(token), user.ID, s.cfg.VerificationTokenTTL); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	// Письма не отправляем: ссылка подтверждения уходит в лог.
	s.logger.Info("Ссылка подтверждения email",
		zap.String("email", user.Email),
		zap.String("link", s.VerificationLink(token)),
	)
	return nil
}

func (s *AuthService) VerificationLink(token string) string {
	return s.serviceURL + "/auth/verify?token=" + token
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	key := repositories.VerificationCacheKey(token)
	userID, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidVerification
		}
		return err
	}

	if err := s.userRepo.ConfirmEmail(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidVerification
		}
		return err
	}
	if err := s.cacheRepo.Del(ctx, key); err != nil {
		s.logger.Warn("Не удалось удалить токен подтверждения", zap.Error(err))
	}
	s.logger.Info("Email подтвержден", zap.String("userID", userID))
	return nil
}

// SignOut всегда сбрасывает локальную сессию; ошибка хранилища только логируется.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.cacheRepo.Del(ctx, repositories.SessionCacheKey); err != nil {
		s.logger.Warn("Не удалось удалить сессию из кеша", zap.Error(err))
	}
	s.setState(ctx, session.AuthState{})
	s.logger.Info("Пользователь вышел")
	return nil
}

// Restore определяет сессию по сохраненному токену. До завершения loading=true.
func (s *AuthService) Restore(ctx context.Context) error {
	token, err := s.cacheRepo.Get(ctx, repositories.SessionCacheKey)
	if err != nil {
		s.setState(ctx, session.AuthState{})
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.logger.Error("Не удалось прочитать сессию", zap.Error(err))
		return err
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		s.logger.Info("Сохраненная сессия недействительна", zap.Error(err))
		s.dropPersisted(ctx)
		s.setState(ctx, session.AuthState{})
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		s.setState(ctx, session.AuthState{})
		if errors.Is(err, apperrors.ErrNotFound) {
			s.dropPersisted(ctx)
			return nil
		}
		return err
	}

	sess := &session.Session{
		User:      session.Identity{ID: user.ID, Email: user.Email},
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	s.setState(ctx, session.AuthState{Session: sess})
	s.logger.Info("Сессия восстановлена", zap.String("userID", user.ID))
	return nil
}

func (s *AuthService) dropPersisted(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, repositories.SessionCacheKey); err != nil {
		s.logger.Warn("Не удалось удалить сессию из кеша", zap.Error(err))
	}
}
