package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/spendcast-backend/internal/domain"
	"github.com/simaogato/spendcast-backend/internal/logging"
)

// TokenIssuer signs session tokens for an authenticated owner
type TokenIssuer interface {
	Issue(ownerID uuid.UUID) (string, error)
}

// SignupInput represents the input for creating an account
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// EditInput carries the profile fields to change; nil fields are left untouched
type EditInput struct {
	Name          *string
	Email         *string
	AvatarImage   *string
	MonthlyIncome *decimal.Decimal
}

// Session is an authenticated user together with its bearer token
type Session struct {
	User  *domain.User
	Token string
}

// Service handles account and owner profile operations
type Service struct {
	UserRepo domain.UserRepository
	Tokens   TokenIssuer
	HashCost int
	Now      func() time.Time
	log      logrus.FieldLogger
}

// NewService creates a new profile Service instance.
// log may be nil.
func NewService(userRepo domain.UserRepository, tokens TokenIssuer, log logrus.FieldLogger) *Service {
	return &Service{
		UserRepo: userRepo,
		Tokens:   tokens,
		HashCost: bcrypt.DefaultCost,
		Now:      time.Now,
		log:      logging.OrDiscard(log),
	}
}

// Signup creates an account and returns a session for it
// Logic:
//  1. Validate the password length
//  2. Reject an email that already has an account
//  3. Hash the password with bcrypt and persist the user
//  4. Issue a token
func (s *Service) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	// 1. Password
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", domain.MinPasswordLength))
	}

	email := normalizeEmail(input.Email)

	// 2. Uniqueness
	if _, err := s.UserRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	// 3. Hash and persist
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user signed up")

	// 4. Token
	return s.session(user)
}

// Login verifies the credentials and returns a session.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.UserRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return s.session(user)
}

// GetProfile returns the owner's profile
func (s *Service) GetProfile(ctx context.Context, ownerID uuid.UUID) (*domain.User, error) {
	return s.UserRepo.GetByID(ctx, ownerID)
}

// EditUser updates a profile. Owners may only edit their own profile.
// Logic:
//  1. actor != userID -> ErrForbidden
//  2. Apply the non-nil fields; a changed email must be unused
//  3. Re-validate and persist
func (s *Service) EditUser(ctx context.Context, actorID, userID uuid.UUID, input EditInput) (*domain.User, error) {
	// 1. Self only
	if actorID != userID {
		return nil, domain.ErrForbidden
	}

	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. Apply
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.AvatarImage != nil {
		user.AvatarImage = *input.AvatarImage
	}
	if input.MonthlyIncome != nil {
		income := *input.MonthlyIncome
		user.MonthlyIncome = &income
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			existing, err := s.UserRepo.GetByEmail(ctx, email)
			switch {
			case err == nil && existing.ID != user.ID:
				return nil, domain.ErrEmailInUse
			case err != nil && !errors.Is(err, domain.ErrNotFound):
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	user.UpdatedAt = s.Now().UTC()

	// 3. Persist
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("profile updated")
	return user, nil
}

func (s *Service) session(user *domain.User) (*Session, error) {
	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
