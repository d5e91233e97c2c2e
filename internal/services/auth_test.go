package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

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

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const (
	testEmail    = "ana.cruz@unc.edu.ph"
	testPassword = "Sup3r$ecretPw"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	users  *fakeUserRepo
	cache  *fakeCache
	jwt    service.JWTService
	svc    *AuthService
	mu     sync.Mutex
	states []session.AuthState
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = newFakeUserRepo()
	s.cache = newFakeCache()
	s.jwt = service.NewJWTService("test-secret", "https://tracker.example.com", time.Hour)
	s.states = nil

	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v, customvalidator.Options{AllowedEmailDomain: "unc.edu.ph"}))

	bus := eventbus.New(zap.NewNop())
	bus.Subscribe(events.SessionChangedEventName, func(_ context.Context, e eventbus.Event) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.states = append(s.states, e.(events.SessionChangedEvent).State)
		return nil
	})

	cfg := &config.AuthConfig{
		SessionTTL:           time.Hour,
		VerificationTokenTTL: 24 * time.Hour,
		AllowedEmailDomain:   "unc.edu.ph",
	}
	s.svc = NewAuthService(s.users, s.cache, s.jwt, bus, v, zap.NewNop(), cfg, "https://tracker.example.com/")
}

func (s *AuthServiceTestSuite) addUser(confirmed bool) *entities.User {
	hash, err := utils.HashPassword(testPassword)
	s.Require().NoError(err)
	u := entities.User{Email: testEmail, Password: hash, Role: entities.RoleUser}
	if confirmed {
		u.EmailConfirmedAt = null.TimeFrom(time.Now())
	}
	return s.users.add(u)
}

func (s *AuthServiceTestSuite) published() []session.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]session.AuthState(nil), s.states...)
}

func (s *AuthServiceTestSuite) TestStartsLoading() {
	s.True(s.svc.State().Loading)
	_, ok := s.svc.CurrentUser()
	s.False(ok)
}

func (s *AuthServiceTestSuite) TestSignInSuccess() {
	user := s.addUser(true)

	sess, err := s.svc.SignIn(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword})
	s.Require().NoError(err)
	s.Equal(user.ID, sess.User.ID)

	id, ok := s.svc.CurrentUser()
	s.True(ok)
	s.Equal(user.ID, id.ID)

	stored, err := s.cache.Get(s.ctx, repositories.SessionCacheKey)
	s.Require().NoError(err)
	s.Equal(sess.Token, stored)

	states := s.published()
	s.Require().Len(states, 1)
	s.True(states[0].Present())
	s.False(states[0].Loading)
}

func (s *AuthServiceTestSuite) TestSignInWrongPassword() {
	s.addUser(true)
	_, err := s.svc.SignIn(s.ctx, dto.LoginDTO{Email: testEmail, Password: "Wr0ng$Password"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
	s.Empty(s.published())
}

func (s *AuthServiceTestSuite) TestSignInUnknownUser() {
	_, err := s.svc.SignIn(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestSignInUnconfirmedEmail() {
	s.addUser(false)
	_, err := s.svc.SignIn(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword})
	s.ErrorIs(err, apperrors.ErrEmailNotConfirmed)
	s.Equal("Email not confirmed", err.Error())
}

func (s *AuthServiceTestSuite) TestFormValidation() {
	_, err := s.svc.SignIn(s.ctx, dto.LoginDTO{Email: "ana@gmail.com", Password: testPassword})
	var verr *apperrors.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Equal([]string{"email"}, verr.Fields)
	s.Equal("Only @unc.edu.ph email addresses are allowed", verr.Err.Error())

	err = s.svc.SignUp(s.ctx, dto.LoginDTO{Email: testEmail, Password: "short"})
	s.Require().True(errors.As(err, &verr))
	s.Equal("Password must be at least 12 characters", verr.Err.Error())
	s.Empty(s.users.users)
}

func (s *AuthServiceTestSuite) TestSignUpThenVerifyThenSignIn() {
	s.Require().NoError(s.svc.SignUp(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword}))

	_, err := s.svc.SignIn(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword})
	s.ErrorIs(err, apperrors.ErrEmailNotConfirmed)

	keys := s.cache.keysWithPrefix(repositories.VerificationCacheKey(""))
	s.Require().Len(keys, 1)
	token := strings.TrimPrefix(keys[0], repositories.VerificationCacheKey(""))
	s.Equal(24*time.Hour, s.cache.ttls[keys[0]])
	s.Equal("https://tracker.example.com/auth/verify?token="+token, s.svc.VerificationLink(token))

	s.Require().NoError(s.svc.VerifyEmail(s.ctx, token))
	s.ErrorIs(s.svc.VerifyEmail(s.ctx, token), apperrors.ErrInvalidVerification)

	_, err = s.svc.SignIn(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword})
	s.NoError(err)
}

func (s *AuthServiceTestSuite) TestSignUpDuplicate() {
	s.addUser(true)
	err := s.svc.SignUp(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword})
	s.ErrorIs(err, apperrors.ErrUserAlreadyExists)
}

func (s *AuthServiceTestSuite) TestSignOut() {
	s.addUser(true)
	_, err := s.svc.SignIn(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.SignOut(s.ctx))
	_, ok := s.svc.CurrentUser()
	s.False(ok)
	_, err = s.cache.Get(s.ctx, repositories.SessionCacheKey)
	s.ErrorIs(err, apperrors.ErrNotFound)

	states := s.published()
	s.Require().Len(states, 2)
	s.False(states[1].Present())
}

func (s *AuthServiceTestSuite) TestRestoreWithoutPersistedSession() {
	s.Require().NoError(s.svc.Restore(s.ctx))
	state := s.svc.State()
	s.False(state.Loading)
	s.False(state.Present())
	s.Len(s.published(), 1)
}

func (s *AuthServiceTestSuite) TestRestorePersistedSession() {
	user := s.addUser(true)
	token, _, err := s.jwt.GenerateSessionToken(user.ID, user.Email)
	s.Require().NoError(err)
	s.Require().NoError(s.cache.Set(s.ctx, repositories.SessionCacheKey, token, time.Hour))

	s.Require().NoError(s.svc.Restore(s.ctx))
	id, ok := s.svc.CurrentUser()
	s.True(ok)
	s.Equal(user.ID, id.ID)
	s.False(s.svc.State().Loading)
}

func (s *AuthServiceTestSuite) TestRestoreDropsInvalidToken() {
	s.Require().NoError(s.cache.Set(s.ctx, repositories.SessionCacheKey, "garbage", time.Hour))

	s.Require().NoError(s.svc.Restore(s.ctx))
	s.False(s.svc.State().Present())
	_, err := s.cache.Get(s.ctx, repositories.SessionCacheKey)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AuthServiceTestSuite) TestRestoreStorageFailureResolvesAbsent() {
	s.cache.getErr = errors.New("connection refused")
	s.Error(s.svc.Restore(s.ctx))
	state := s.svc.State()
	s.False(state.Loading)
	s.False(state.Present())
}

func (s *AuthServiceTestSuite) TestPublishOrderMatchesStateWrites() {
	s.addUser(true)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.svc.SignIn(s.ctx, dto.LoginDTO{Email: testEmail, Password: testPassword})
		}()
		go func() {
			defer wg.Done()
			_ = s.svc.SignOut(s.ctx)
		}()
	}
	wg.Wait()

	states := s.published()
	s.Require().NotEmpty(states)
	s.Equal(s.svc.State().Present(), states[len(states)-1].Present(),
		"последнее событие совпадает с текущим состоянием")
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
