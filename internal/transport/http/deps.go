package http

import (
	"context"

	"github.com/naholgroupsclkln/nexora-backend/internal/domain"
	"github.com/naholgroupsclkln/nexora-backend/internal/infrastructure/smtp"
)

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	Put(ctx context.Context, a *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// CodeRepository is the minimal interface the router requires from a verification-code store.
type CodeRepository interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	GetByEmailAndCode(ctx context.Context, email, code string) (*domain.VerificationCode, error)
	Delete(ctx context.Context, email, codeID string) error
	DeleteAllByEmail(ctx context.Context, email string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo AccountRepository
	CodeRepo    CodeRepository
	Mailer      smtp.Mailer
}
