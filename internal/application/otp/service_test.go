package otp

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/naholgroupsclkln/nexora-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

// --- mocks ---

type mockCodeStore struct{ mock.Mock }

func (m *mockCodeStore) Put(ctx context.Context, v *domain.VerificationCode) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockCodeStore) GetByEmailAndCode(ctx context.Context, email, code string) (*domain.VerificationCode, error) {
	args := m.Called(ctx, email, code)
	if v, _ := args.Get(0).(*domain.VerificationCode); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCodeStore) Delete(ctx context.Context, email, codeID string) error {
	return m.Called(ctx, email, codeID).Error(0)
}
func (m *mockCodeStore) DeleteAllByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- in-memory fake for lifecycle scenarios ---

type memCodeStore struct {
	codes []*domain.VerificationCode
}

func (s *memCodeStore) Put(_ context.Context, v *domain.VerificationCode) error {
	cp := *v
	s.codes = append(s.codes, &cp)
	return nil
}

func (s *memCodeStore) GetByEmailAndCode(_ context.Context, email, code string) (*domain.VerificationCode, error) {
	for _, v := range s.codes {
		if v.Email == email && v.Code == code {
			cp := *v
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memCodeStore) Delete(_ context.Context, email, codeID string) error {
	for i, v := range s.codes {
		if v.Email == email && v.CodeID == codeID {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memCodeStore) DeleteAllByEmail(_ context.Context, email string) error {
	kept := s.codes[:0]
	for _, v := range s.codes {
		if v.Email != email {
			kept = append(kept, v)
		}
	}
	s.codes = kept
	return nil
}

// recordingMailer keeps the last body so tests can pull the code out of it.
type recordingMailer struct {
	bodies []string
	err    error
}

func (m *recordingMailer) SendEmail(_, _, body string) error {
	if m.err != nil {
		return m.err
	}
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *recordingMailer) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.bodies)
	code := sixDigits.FindString(m.bodies[len(m.bodies)-1][len("Your verification code is: "):])
	require.NotEmpty(t, code)
	return code
}

// --- Issue ---

func TestIssue_EmptyEmail(t *testing.T) {
	svc := NewService(ServiceDeps{})
	err := svc.Issue(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestIssue_HappyPath_StoresAndSends(t *testing.T) {
	cs := &mockCodeStore{}
	ml := &mockMailer{}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	var stored *domain.VerificationCode
	cs.On("DeleteAllByEmail", mock.Anything, "a@x.com").Return(nil)
	cs.On("Put", mock.Anything, mock.AnythingOfType("*domain.VerificationCode")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.VerificationCode) }).
		Return(nil)
	ml.On("SendEmail", "a@x.com", "NEXORA Email Verification Code", mock.Anything).Return(nil)

	svc := NewService(ServiceDeps{
		CodeRepo: cs,
		Mailer:   ml,
		TTL:      300 * time.Second,
		Now:      func() time.Time { return now },
	})
	require.NoError(t, svc.Issue(context.Background(), "a@x.com"))

	require.NotNil(t, stored)
	assert.Regexp(t, sixDigits, stored.Code)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.NotEmpty(t, stored.CodeID)
	assert.Equal(t, now, stored.CreatedAt)
	assert.Equal(t, now.Add(300*time.Second).Unix(), stored.ExpiresAt)
	cs.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestIssue_ClearFailure_StillIssues(t *testing.T) {
	cs := &mockCodeStore{}
	ml := &mockMailer{}
	cs.On("DeleteAllByEmail", mock.Anything, "a@x.com").Return(errors.New("throttled"))
	cs.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", "a@x.com", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(ServiceDeps{CodeRepo: cs, Mailer: ml})
	require.NoError(t, svc.Issue(context.Background(), "a@x.com"))
	cs.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestIssue_StoreFailure_NoMailSent(t *testing.T) {
	cs := &mockCodeStore{}
	ml := &mockMailer{}
	cs.On("DeleteAllByEmail", mock.Anything, "a@x.com").Return(nil)
	cs.On("Put", mock.Anything, mock.Anything).Return(errors.New("table missing"))

	svc := NewService(ServiceDeps{CodeRepo: cs, Mailer: ml})
	err := svc.Issue(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrDeliveryFailed))
	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssue_DeliveryFailure_RecordKept(t *testing.T) {
	cs := &mockCodeStore{}
	ml := &mockMailer{}
	cs.On("DeleteAllByEmail", mock.Anything, "a@x.com").Return(nil)
	cs.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", "a@x.com", mock.Anything, mock.Anything).Return(errors.New("smtp refused"))

	svc := NewService(ServiceDeps{CodeRepo: cs, Mailer: ml})
	err := svc.Issue(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDeliveryFailed))
	// The stored record is not rolled back.
	cs.AssertCalled(t, "Put", mock.Anything, mock.Anything)
	cs.AssertNumberOfCalls(t, "DeleteAllByEmail", 1)
}

// --- Verify ---

func TestVerify_EmptyInputs(t *testing.T) {
	cs := &mockCodeStore{}
	svc := NewService(ServiceDeps{CodeRepo: cs})

	for _, tc := range [][2]string{{"", "123456"}, {"a@x.com", ""}, {"", ""}} {
		err := svc.Verify(context.Background(), tc[0], tc[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
	}
	cs.AssertNotCalled(t, "GetByEmailAndCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_NoMatch_ReportsInvalid(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("GetByEmailAndCode", mock.Anything, "a@x.com", "123456").Return(nil, domain.ErrNotFound)

	svc := NewService(ServiceDeps{CodeRepo: cs})
	err := svc.Verify(context.Background(), "a@x.com", "123456")
	assert.True(t, errors.Is(err, domain.ErrCodeInvalid))
}

func TestVerify_StoreFailure_NotConflatedWithInvalid(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("GetByEmailAndCode", mock.Anything, "a@x.com", "123456").Return(nil, errors.New("timeout"))

	svc := NewService(ServiceDeps{CodeRepo: cs})
	err := svc.Verify(context.Background(), "a@x.com", "123456")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrCodeInvalid))
}

func TestVerify_Expired_ReportsInvalidAndDeletes(t *testing.T) {
	cs := &mockCodeStore{}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cs.On("GetByEmailAndCode", mock.Anything, "a@x.com", "123456").Return(&domain.VerificationCode{
		Email:     "a@x.com",
		CodeID:    "c1",
		Code:      "123456",
		ExpiresAt: now.Add(-time.Second).Unix(),
	}, nil)
	cs.On("Delete", mock.Anything, "a@x.com", "c1").Return(nil)

	svc := NewService(ServiceDeps{CodeRepo: cs, Now: func() time.Time { return now }})
	err := svc.Verify(context.Background(), "a@x.com", "123456")
	assert.True(t, errors.Is(err, domain.ErrCodeInvalid))
	cs.AssertExpectations(t)
}

func TestVerify_HappyPath_DeletesByIdentity(t *testing.T) {
	cs := &mockCodeStore{}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cs.On("GetByEmailAndCode", mock.Anything, "a@x.com", "123456").Return(&domain.VerificationCode{
		Email:     "a@x.com",
		CodeID:    "c1",
		Code:      "123456",
		ExpiresAt: now.Add(time.Minute).Unix(),
	}, nil)
	cs.On("Delete", mock.Anything, "a@x.com", "c1").Return(nil)

	svc := NewService(ServiceDeps{CodeRepo: cs, Now: func() time.Time { return now }})
	require.NoError(t, svc.Verify(context.Background(), "a@x.com", "123456"))
	cs.AssertExpectations(t)
}

// --- lifecycle scenarios against the in-memory store ---

func TestLifecycle_VerifyConsumesExactlyOnce(t *testing.T) {
	store := &memCodeStore{}
	ml := &recordingMailer{}
	svc := NewService(ServiceDeps{CodeRepo: store, Mailer: ml})
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	code := ml.lastCode(t)

	require.NoError(t, svc.Verify(ctx, "a@x.com", code))
	err := svc.Verify(ctx, "a@x.com", code)
	assert.True(t, errors.Is(err, domain.ErrCodeInvalid), "a consumed code must not replay")
}

func TestLifecycle_ReissueInvalidatesOldCode(t *testing.T) {
	store := &memCodeStore{}
	ml := &recordingMailer{}
	// Deterministic generator so the old and new codes are known to differ.
	seq := []string{"111111", "222222"}
	svc := NewService(ServiceDeps{
		CodeRepo: store,
		Mailer:   ml,
		NewCode: func() (string, error) {
			code := seq[0]
			seq = seq[1:]
			return code, nil
		},
	})
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	require.NoError(t, svc.Reissue(ctx, "a@x.com"))

	err := svc.Verify(ctx, "a@x.com", "111111")
	assert.True(t, errors.Is(err, domain.ErrCodeInvalid), "an unconsumed but replaced code must not verify")

	require.NoError(t, svc.Verify(ctx, "a@x.com", "222222"))
	assert.True(t, errors.Is(svc.Verify(ctx, "a@x.com", "222222"), domain.ErrCodeInvalid))
}

func TestLifecycle_CodeExpiresAfterTTL(t *testing.T) {
	store := &memCodeStore{}
	ml := &recordingMailer{}
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(ServiceDeps{
		CodeRepo: store,
		Mailer:   ml,
		TTL:      300 * time.Second,
		Now:      func() time.Time { return clock },
	})
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	code := ml.lastCode(t)

	clock = clock.Add(301 * time.Second)
	err := svc.Verify(ctx, "a@x.com", code)
	assert.True(t, errors.Is(err, domain.ErrCodeInvalid), "a code older than the TTL must not verify")
}

func TestLifecycle_OnlyOneActiveCodePerEmail(t *testing.T) {
	store := &memCodeStore{}
	ml := &recordingMailer{}
	svc := NewService(ServiceDeps{CodeRepo: store, Mailer: ml})
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	require.NoError(t, svc.Reissue(ctx, "a@x.com"))

	assert.Len(t, store.codes, 1)
}
