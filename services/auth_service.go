package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"salestrack/database"
	"salestrack/mail"
	"salestrack/models"
	"salestrack/periods"
	repository "salestrack/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	resetTokenTTL = time.Hour
	// bcrypt input limit
	maxPasswordBytes = 72
)

type AuthOptions struct {
	JWTSecret string
	TokenTTL  time.Duration
	// ResetURL is the front-end page that receives ?token=.
	ResetURL string
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

type AuthService interface {
	SignUp(ctx context.Context, req *models.SignUpRequest, role string) (*models.Session, error)
	SignIn(ctx context.Context, req *models.LoginRequest) (*models.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	UpdateProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.User, error)
	CurrentUser(ctx context.Context, uid string) (*models.User, error)
	// ParseToken validates a token and checks it was issued for purpose.
	ParseToken(token, purpose string) (*models.Claims, error)
}

type authService struct {
	users       repository.UserRepository
	credentials repository.CredentialRepository
	stats       repository.StatsRepository
	mailer      mail.Sender
	opts        AuthOptions
	cal         Calendar
	logger      *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	credentials repository.CredentialRepository,
	stats repository.StatsRepository,
	mailer mail.Sender,
	opts AuthOptions,
	cal Calendar,
	logger *zap.Logger,
) AuthService {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &authService{
		users:       users,
		credentials: credentials,
		stats:       stats,
		mailer:      mailer,
		opts:        opts,
		cal:         cal,
		logger:      logger,
	}
}

func (s *authService) SignUp(ctx context.Context, req *models.SignUpRequest, role string) (*models.Session, error) {
	email := normalizeEmail(req.Email)

	taken, err := s.credentials.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.cal.Now()
	user := &models.User{
		UID:        uuid.NewString(),
		Email:      email,
		Name:       strings.TrimSpace(req.Name),
		Role:       role,
		IsActive:   true,
		JoinedDate: now,
		LastLogin:  now,
	}

	// The credential goes first so a half-finished sign-up can still sign in
	// and have its user document recreated.
	err = s.credentials.Create(ctx, &models.Credential{
		UID:          user.UID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.seedRollups(ctx, user.UID, now); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.UID), zap.String("role", role))
	return s.newSession(user)
}

// seedRollups makes sure the current week and month rollups exist.
func (s *authService) seedRollups(ctx context.Context, uid string, now time.Time) error {
	keys := s.cal.Today()
	for _, p := range []struct {
		kind, key string
		bounds    func(time.Time) (time.Time, time.Time)
	}{
		{database.StatsWeekly, keys.Week, periods.WeekBounds},
		{database.StatsMonthly, keys.Month, periods.MonthBounds},
	} {
		start, end := p.bounds(now)
		_, err := applyRollup(ctx, s.stats, uid, p.kind, p.key, rollupChange{
			seed: models.StatsRollup{StartDate: start, EndDate: end},
		}, now)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *authService) SignIn(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	email := normalizeEmail(req.Email)

	cred, err := s.credentials.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.cal.Now()
	user, err := s.users.GetByID(ctx, cred.UID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		user = &models.User{
			UID:        cred.UID,
			Email:      email,
			Name:       strings.Split(email, "@")[0],
			Role:       models.RoleEmployee,
			IsActive:   true,
			JoinedDate: now,
			LastLogin:  now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		if err := s.seedRollups(ctx, user.UID, now); err != nil {
			return nil, err
		}
		s.logger.Warn("recreated missing user document", zap.String("user_id", user.UID))
	case err != nil:
		return nil, err
	default:
		if !user.IsActive {
			return nil, ErrAccountDisabled
		}
		if err := s.users.Update(ctx, user.UID, map[string]any{"lastLogin": now}); err != nil {
			return nil, err
		}
		user.LastLogin = now
	}

	return s.newSession(user)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	cred, err := s.credentials.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		s.logger.Debug("password reset for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	name := ""
	if user, err := s.users.GetByID(ctx, cred.UID); err == nil {
		name = user.Name
	}

	token, err := s.sign(&models.Claims{
		UID:     cred.UID,
		Email:   email,
		Purpose: models.TokenPurposeReset,
	}, resetTokenTTL)
	if err != nil {
		return err
	}

	link, err := resetLink(s.opts.ResetURL, token)
	if err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(ctx, email, name, link); err != nil {
		return fmt.Errorf("failed to send password reset: %w", err)
	}
	return nil
}

func resetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid password reset url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.ParseToken(token, models.TokenPurposeReset)
	if err != nil {
		return err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.credentials.UpdatePasswordHash(ctx, claims.Email, string(hash), s.cal.Now()); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", claims.UID))
	return nil
}

func (s *authService) UpdateProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]any{"name": strings.TrimSpace(req.Name)}
	if req.PhotoURL != nil {
		fields["profilePictureUrl"] = *req.PhotoURL
	}
	if err := s.users.Update(ctx, uid, fields); err != nil {
		return nil, err
	}
	return s.CurrentUser(ctx, uid)
}

func (s *authService) CurrentUser(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, uid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *authService) newSession(user *models.User) (*models.Session, error) {
	token, err := s.sign(&models.Claims{
		UID:     user.UID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role,
		Purpose: models.TokenPurposeSession,
	}, s.opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &models.Session{Token: token, User: *user}, nil
}

func (s *authService) sign(claims *models.Claims, ttl time.Duration) (string, error) {
	now := s.cal.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.opts.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) ParseToken(tokenString, purpose string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.cal.Now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// hashPassword enforces bcrypt's 72-byte input limit, which the validator's
// rune-based max cannot guarantee for multi-byte passwords.
func (s *authService) hashPassword(password string) ([]byte, error) {
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
