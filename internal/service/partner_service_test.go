package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/otp"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/pkg/token"
)

// memoryOTPStore is an in-memory otp.Store for tests.
type memoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{codes: make(map[string]string)}
}

func (s *memoryOTPStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = code
	return nil
}

func (s *memoryOTPStore) Verify(ctx context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.codes[phone]
	if !ok {
		return otp.ErrOTPNotFound
	}
	if stored != code {
		return otp.ErrOTPMismatch
	}
	delete(s.codes, phone)
	return nil
}

func (s *memoryOTPStore) Close() error { return nil }

func (s *memoryOTPStore) code(phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[phone]
}

// recordingSender captures sent SMS messages.
type recordingSender struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingSender) Send(ctx context.Context, phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func newPartnerFixture(t *testing.T, partners *fakePartnerRepo) (PartnerService, *memoryOTPStore, *recordingSender) {
	t.Helper()
	tokens, err := token.NewManager("test-secret", "wave-backend", time.Hour)
	require.NoError(t, err)

	otps := newMemoryOTPStore()
	sender := &recordingSender{}
	svc := NewPartnerService(partners, otps, sender, tokens, nil, config.OTPConfig{TTL: 10 * time.Minute})
	return svc, otps, sender
}

func TestSendLoginOTPRegistersNewPartner(t *testing.T) {
	partners := newFakePartnerRepo()
	svc, otps, sender := newPartnerFixture(t, partners)
	ctx := context.Background()

	require.NoError(t, svc.SendLoginOTP(ctx, "9876543210"))

	partner, err := partners.GetByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, domain.PartnerStatusPending, partner.Status)

	assert.Len(t, otps.code("9876543210"), 6)
	assert.Equal(t, 1, sender.count())
}

func TestSendLoginOTPExistingPartnerReplacesCode(t *testing.T) {
	partners := newFakePartnerRepo(approvedPartner("p1"))
	svc, otps, sender := newPartnerFixture(t, partners)
	ctx := context.Background()

	phone := "9p1"
	require.NoError(t, svc.SendLoginOTP(ctx, phone))
	first := otps.code(phone)
	require.NoError(t, svc.SendLoginOTP(ctx, phone))
	second := otps.code(phone)

	assert.Len(t, second, 6)
	assert.Equal(t, 2, sender.count())
	// Only the latest code is stored.
	if first == second {
		t.Log("generated codes collided, still a single stored code")
	}
}

func TestVerifyLoginOTP(t *testing.T) {
	partners := newFakePartnerRepo()
	svc, otps, _ := newPartnerFixture(t, partners)
	ctx := context.Background()

	require.NoError(t, svc.SendLoginOTP(ctx, "9876543210"))
	code := otps.code("9876543210")

	result, err := svc.VerifyLoginOTP(ctx, "9876543210", code)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "9876543210", result.Partner.Phone)

	// Code is consumed; replay fails.
	_, err = svc.VerifyLoginOTP(ctx, "9876543210", code)
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyLoginOTPWrongCode(t *testing.T) {
	partners := newFakePartnerRepo()
	svc, _, _ := newPartnerFixture(t, partners)
	ctx := context.Background()

	require.NoError(t, svc.SendLoginOTP(ctx, "9876543210"))

	_, err := svc.VerifyLoginOTP(ctx, "9876543210", "000000")
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyLoginOTPUnknownPhone(t *testing.T) {
	svc, _, _ := newPartnerFixture(t, newFakePartnerRepo())

	_, err := svc.VerifyLoginOTP(context.Background(), "0000000000", "123456")
	assert.ErrorIs(t, err, repository.ErrPartnerNotFound)
}

func TestCompleteProfile(t *testing.T) {
	partner := &domain.Partner{ID: "p1", Phone: "91", Status: domain.PartnerStatusPending}
	partners := newFakePartnerRepo(partner)
	svc, _, _ := newPartnerFixture(t, partners)

	updated, err := svc.CompleteProfile(context.Background(), "p1", &domain.CompleteProfileRequest{
		Name:    "Asha",
		Email:   "asha@example.com",
		Address: "12 Hill Road",
		City:    "Pune",
	})
	require.NoError(t, err)
	assert.True(t, updated.ProfileCompleted)
	assert.Equal(t, "Asha", updated.Profile.Name)
}

func TestUpdateStatusApproveRequiresProfileAndKYC(t *testing.T) {
	partner := &domain.Partner{ID: "p1", Phone: "91", Status: domain.PartnerStatusUnderReview}
	partners := newFakePartnerRepo(partner)
	svc, _, _ := newPartnerFixture(t, partners)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, "admin1", "p1", &domain.UpdatePartnerStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrProfileIncomplete)

	partner.ProfileCompleted = true
	require.NoError(t, partners.Update(ctx, partner))
	_, err = svc.UpdateStatus(ctx, "admin1", "p1", &domain.UpdatePartnerStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrKYCNotVerified)

	partner.KYC.IsVerified = true
	require.NoError(t, partners.Update(ctx, partner))
	updated, err := svc.UpdateStatus(ctx, "admin1", "p1", &domain.UpdatePartnerStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.PartnerStatusApproved, updated.Status)
	assert.Equal(t, "admin1", updated.StatusUpdatedBy)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	partners := newFakePartnerRepo(approvedPartner("p1"))
	svc, _, _ := newPartnerFixture(t, partners)

	_, err := svc.UpdateStatus(context.Background(), "admin1", "p1", &domain.UpdatePartnerStatusRequest{Status: "frozen"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestVerifyKYCApprove(t *testing.T) {
	partner := &domain.Partner{ID: "p1", Phone: "91", Status: domain.PartnerStatusUnderReview}
	partners := newFakePartnerRepo(partner)
	svc, _, _ := newPartnerFixture(t, partners)

	updated, err := svc.VerifyKYC(context.Background(), "admin1", "p1", &domain.VerifyKYCRequest{Approve: true})
	require.NoError(t, err)
	assert.True(t, updated.KYC.IsVerified)
	assert.Equal(t, "admin1", updated.KYC.VerifiedBy)
	assert.NotNil(t, updated.KYC.VerifiedAt)
}

func TestVerifyKYCReject(t *testing.T) {
	partner := &domain.Partner{
		ID:     "p1",
		Phone:  "91",
		Status: domain.PartnerStatusUnderReview,
		KYC:    domain.KYCDetails{IsVerified: true},
	}
	partners := newFakePartnerRepo(partner)
	svc, _, _ := newPartnerFixture(t, partners)

	updated, err := svc.VerifyKYC(context.Background(), "admin1", "p1", &domain.VerifyKYCRequest{Approve: false, Note: "blurry scan"})
	require.NoError(t, err)
	assert.False(t, updated.KYC.IsVerified)
	assert.Equal(t, "blurry scan", updated.KYC.RejectionNote)
}

func TestUpdateBankDetails(t *testing.T) {
	partners := newFakePartnerRepo(approvedPartner("p1"))
	svc, _, _ := newPartnerFixture(t, partners)

	updated, err := svc.UpdateBankDetails(context.Background(), "p1", &domain.UpdateBankDetailsRequest{
		AccountHolder: "Asha K",
		AccountNumber: "1234567890",
		IFSCCode:      "HDFC0001234",
		BankName:      "HDFC",
	})
	require.NoError(t, err)
	assert.Equal(t, "HDFC0001234", updated.Bank.IFSCCode)
}

func TestListPendingKYCOnlyUnderReview(t *testing.T) {
	pending := &domain.Partner{ID: "p1", Phone: "91", Status: domain.PartnerStatusPending}
	reviewing := &domain.Partner{ID: "p2", Phone: "92", Status: domain.PartnerStatusUnderReview}
	partners := newFakePartnerRepo(pending, reviewing, approvedPartner("p3"))
	svc, _, _ := newPartnerFixture(t, partners)

	got, total, err := svc.ListPendingKYC(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestGenerateCodeFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := otp.GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
