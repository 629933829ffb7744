package account

import (
	"context"
	"fmt"
	"time"

	otpapp "github.com/naholgroupsclkln/nexora-backend/internal/application/otp"
	"github.com/naholgroupsclkln/nexora-backend/internal/domain"
	"github.com/naholgroupsclkln/nexora-backend/internal/pkg/id"
	"github.com/naholgroupsclkln/nexora-backend/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// Service implements signup and signin on top of the account store and the
// verification-code lifecycle.
type Service interface {
	// Signup creates the account and issues a verification code to its email.
	// When the account was created but the code could not be delivered, the
	// account is returned together with an error wrapping
	// domain.ErrDeliveryFailed — the account is never rolled back.
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.Account, error)
	Signin(ctx context.Context, req domain.SigninRequest) (*domain.Account, error)
}

type accountStore interface {
	Put(ctx context.Context, a *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type service struct {
	repo   accountStore
	otpSvc otpapp.Service
}

type ServiceDeps struct {
	AccountRepo accountStore
	OTPService  otpapp.Service
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.AccountRepo, otpSvc: deps.OTPService}
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Account, error) {
	// All nine fields are required; nothing is written before this passes.
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBadRequest, err)
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	a := &domain.Account{
		AccountID:    id.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		FullName:     req.FullName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		DOB:          req.DOB,
		Gender:       req.Gender,
		Region:       req.Region,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}

	if err := s.otpSvc.Issue(ctx, a.Email); err != nil {
		// The account already exists at this point; hand it back alongside
		// the error so the caller can decide how loudly to fail.
		return a, err
	}
	return a, nil
}

func (s *service) Signin(ctx context.Context, req domain.SigninRequest) (*domain.Account, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBadRequest, err)
	}

	a, err := s.repo.GetByUsername(ctx, req.Identifier)
	if err != nil {
		a, err = s.repo.GetByEmail(ctx, req.Identifier)
		if err != nil {
			return nil, fmt.Errorf("no account for %q: %w", req.Identifier, domain.ErrNotFound)
		}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("wrong password: %w", domain.ErrUnauthorized)
	}
	return a, nil
}
