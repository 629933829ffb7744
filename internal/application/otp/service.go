package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/naholgroupsclkln/nexora-backend/internal/domain"
	"github.com/naholgroupsclkln/nexora-backend/internal/infrastructure/smtp"
	"github.com/naholgroupsclkln/nexora-backend/internal/pkg/id"
	pkgotp "github.com/naholgroupsclkln/nexora-backend/internal/pkg/otp"
)

const (
	emailSubject  = "NEXORA Email Verification Code"
	emailBodyTmpl = "Your verification code is: %s"
)

// Service owns the lifecycle of one-time verification codes. A code is
// issued and mailed out, stays valid until its TTL or until a reissue
// replaces it, and is consumed exactly once on verify.
type Service interface {
	Issue(ctx context.Context, email string) error
	Reissue(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

type codeStore interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	GetByEmailAndCode(ctx context.Context, email, code string) (*domain.VerificationCode, error)
	Delete(ctx context.Context, email, codeID string) error
	DeleteAllByEmail(ctx context.Context, email string) error
}

type service struct {
	codeRepo codeStore
	mailer   smtp.Mailer
	ttl      time.Duration
	now      func() time.Time
	newCode  func() (string, error)
}

type ServiceDeps struct {
	CodeRepo codeStore
	Mailer   smtp.Mailer
	TTL      time.Duration
	// Now and NewCode are overridable for tests; nil picks the defaults.
	Now     func() time.Time
	NewCode func() (string, error)
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		codeRepo: deps.CodeRepo,
		mailer:   deps.Mailer,
		ttl:      deps.TTL,
		now:      deps.Now,
		newCode:  deps.NewCode,
	}
	if s.ttl <= 0 {
		s.ttl = 5 * time.Minute
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newCode == nil {
		s.newCode = pkgotp.NewCode
	}
	return s
}

// Issue invalidates any outstanding codes for the address and mails out a
// fresh one. Signup and resend share these semantics so that at most one
// code per address is live at a time.
func (s *service) Issue(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email required: %w", domain.ErrBadRequest)
	}

	// Prior codes may legitimately not exist; a failed cleanup is logged
	// but does not block issuing the replacement.
	if err := s.codeRepo.DeleteAllByEmail(ctx, email); err != nil {
		slog.Warn("failed to clear prior verification codes", "email", email, "err", err)
	}

	code, err := s.newCode()
	if err != nil {
		return err
	}
	now := s.now().UTC()
	v := &domain.VerificationCode{
		Email:     email,
		CodeID:    id.New(),
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	if err := s.codeRepo.Put(ctx, v); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	// The stored record is deliberately not rolled back on a send failure:
	// the code remains valid and a resend will replace it anyway.
	if err := s.mailer.SendEmail(email, emailSubject, fmt.Sprintf(emailBodyTmpl, code)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// Reissue replaces whatever code is outstanding for the address.
func (s *service) Reissue(ctx context.Context, email string) error {
	return s.Issue(ctx, email)
}

// Verify consumes the code matching the exact (email, code) pair. A missing
// record, a wrong code and an expired code all report domain.ErrCodeInvalid.
func (s *service) Verify(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return fmt.Errorf("email and code required: %w", domain.ErrBadRequest)
	}
	v, err := s.codeRepo.GetByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCodeInvalid
		}
		return err
	}
	if v.Expired(s.now()) {
		// The TTL janitor has not caught up yet; drop the record now.
		if err := s.codeRepo.Delete(ctx, v.Email, v.CodeID); err != nil {
			slog.Warn("failed to delete expired verification code", "email", email, "err", err)
		}
		return domain.ErrCodeInvalid
	}
	// Delete by identity, not by email, so a concurrently issued code for
	// the same address survives.
	if err := s.codeRepo.Delete(ctx, v.Email, v.CodeID); err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	return nil
}
