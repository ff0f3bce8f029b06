package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Harshkesharwani789/wave-backend/internal/audit"
	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/otp"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/internal/sms"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
	"github.com/Harshkesharwani789/wave-backend/pkg/storage"
	"github.com/Harshkesharwani789/wave-backend/pkg/token"
)

var (
	ErrOTPInvalid = errors.New("otp is invalid or expired")
)

type partnerService struct {
	partners repository.PartnerRepository
	otps     otp.Store
	sender   sms.Sender
	tokens   *token.Manager
	files    storage.Storage
	otpTTL   time.Duration
}

func NewPartnerService(
	partners repository.PartnerRepository,
	otps otp.Store,
	sender sms.Sender,
	tokens *token.Manager,
	files storage.Storage,
	otpCfg config.OTPConfig,
) PartnerService {
	return &partnerService{
		partners: partners,
		otps:     otps,
		sender:   sender,
		tokens:   tokens,
		files:    files,
		otpTTL:   otpCfg.TTL,
	}
}

// SendLoginOTP issues a login code for the phone, registering the
// partner on first contact.
func (s *partnerService) SendLoginOTP(ctx context.Context, phone string) error {
	l := log.Ctx(ctx)

	partner, err := s.partners.GetByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, repository.ErrPartnerNotFound) {
			return err
		}
		partner = &domain.Partner{
			Phone:  phone,
			Status: domain.PartnerStatusPending,
		}
		if err := s.partners.Create(ctx, partner); err != nil {
			return err
		}
		l.Info().Str(log.FieldPartnerID, partner.ID).Msg("new partner registered")
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	if err := s.otps.Save(ctx, phone, code, s.otpTTL); err != nil {
		return err
	}

	message := fmt.Sprintf("Your login code is %s. It expires in %d minutes.", code, int(s.otpTTL.Minutes()))
	if err := s.sender.Send(ctx, phone, message); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionOTPSent, partner.ID, "login otp sent")
	return nil
}

// VerifyLoginOTP checks the code and returns the partner with a session
// token. The code is consumed on success.
func (s *partnerService) VerifyLoginOTP(ctx context.Context, phone, code string) (*domain.PartnerLoginResult, error) {
	partner, err := s.partners.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if err := s.otps.Verify(ctx, phone, code); err != nil {
		if errors.Is(err, otp.ErrOTPNotFound) || errors.Is(err, otp.ErrOTPMismatch) {
			audit.Log(ctx, audit.ActionOTPFailed, partner.ID, "otp verification failed")
			return nil, ErrOTPInvalid
		}
		return nil, err
	}

	jwt, err := s.tokens.Generate(partner.ID, token.RolePartner)
	if err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionOTPVerified, partner.ID, "partner logged in")
	return &domain.PartnerLoginResult{
		Partner: partner,
		Token:   jwt,
	}, nil
}

func (s *partnerService) GetProfile(ctx context.Context, partnerID string) (*domain.Partner, error) {
	return s.partners.GetByID(ctx, partnerID)
}

func (s *partnerService) CompleteProfile(ctx context.Context, partnerID string, req *domain.CompleteProfileRequest) (*domain.Partner, error) {
	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	partner.Profile = domain.PartnerProfile{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		City:    req.City,
		Pincode: req.Pincode,
	}
	partner.ProfileCompleted = true

	if err := s.partners.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) SelectCategory(ctx context.Context, partnerID string, req *domain.SelectCategoryRequest) (*domain.Partner, error) {
	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	partner.CategoryID = req.CategoryID
	partner.ServiceIDs = req.ServiceIDs

	if err := s.partners.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// UpdateKYC stores the partner's identity numbers and document scans.
// Submitting new documents resets verification and moves the partner to
// under_review.
func (s *partnerService) UpdateKYC(ctx context.Context, partnerID string, req *domain.UpdateKYCRequest, aadharDoc, panDoc *multipart.FileHeader) (*domain.Partner, error) {
	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if req.AadharNumber != "" {
		partner.KYC.AadharNumber = req.AadharNumber
	}
	if req.PanNumber != "" {
		partner.KYC.PanNumber = req.PanNumber
	}

	if aadharDoc != nil {
		key, err := s.storeDocument(ctx, partnerID, "aadhar", aadharDoc)
		if err != nil {
			return nil, err
		}
		partner.KYC.AadharDocKey = key
	}
	if panDoc != nil {
		key, err := s.storeDocument(ctx, partnerID, "pan", panDoc)
		if err != nil {
			return nil, err
		}
		partner.KYC.PanDocKey = key
	}

	partner.KYC.IsVerified = false
	partner.KYC.VerifiedAt = nil
	partner.KYC.VerifiedBy = ""
	partner.KYC.RejectionNote = ""
	partner.Status = domain.PartnerStatusUnderReview

	if err := s.partners.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) storeDocument(ctx context.Context, partnerID, kind string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded document: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("kyc/%s/%s-%s%s", partnerID, kind, uuid.New().String(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := s.files.Write(ctx, key, src, file.Size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

func (s *partnerService) UpdateBankDetails(ctx context.Context, partnerID string, req *domain.UpdateBankDetailsRequest) (*domain.Partner, error) {
	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	partner.Bank = domain.BankDetails{
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		BankName:      req.BankName,
	}

	if err := s.partners.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// VerifyKYC records the admin's verdict on the partner's documents.
func (s *partnerService) VerifyKYC(ctx context.Context, adminID, partnerID string, req *domain.VerifyKYCRequest) (*domain.Partner, error) {
	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.Approve {
		partner.KYC.IsVerified = true
		partner.KYC.VerifiedAt = &now
		partner.KYC.VerifiedBy = adminID
		partner.KYC.RejectionNote = ""
	} else {
		partner.KYC.IsVerified = false
		partner.KYC.VerifiedAt = nil
		partner.KYC.VerifiedBy = ""
		partner.KYC.RejectionNote = req.Note
	}

	if err := s.partners.Update(ctx, partner); err != nil {
		return nil, err
	}

	audit.LogWithTarget(ctx, audit.ActionKYCVerified, adminID, partnerID, "partner kyc reviewed")
	return partner, nil
}

// UpdateStatus transitions the partner's approval state. Approval
// requires a completed profile and verified KYC.
func (s *partnerService) UpdateStatus(ctx context.Context, adminID, partnerID string, req *domain.UpdatePartnerStatusRequest) (*domain.Partner, error) {
	if !domain.ValidPartnerStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	newStatus := domain.PartnerStatus(req.Status)
	if newStatus == domain.PartnerStatusApproved {
		if !partner.ProfileCompleted {
			return nil, ErrProfileIncomplete
		}
		if !partner.KYC.IsVerified {
			return nil, ErrKYCNotVerified
		}
	}

	now := time.Now().UTC()
	partner.Status = newStatus
	partner.StatusRemarks = req.Remarks
	partner.StatusUpdatedAt = &now
	partner.StatusUpdatedBy = adminID

	if err := s.partners.Update(ctx, partner); err != nil {
		return nil, err
	}

	audit.LogWithTarget(ctx, audit.ActionStatusChanged, adminID, partnerID, "partner status changed")
	return partner, nil
}

func (s *partnerService) ListPartners(ctx context.Context, status string, page, pageSize int) ([]domain.Partner, int, error) {
	return s.partners.List(ctx, status, page, pageSize)
}

// ListPendingKYC lists partners whose documents await an admin verdict.
// KYC submission moves a partner to under_review, so that status is the
// review queue.
func (s *partnerService) ListPendingKYC(ctx context.Context, page, pageSize int) ([]domain.Partner, int, error) {
	return s.partners.List(ctx, string(domain.PartnerStatusUnderReview), page, pageSize)
}
