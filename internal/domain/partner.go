package domain

import "time"

// PartnerStatus is the onboarding/approval state of a partner.
type PartnerStatus string

const (
	PartnerStatusPending     PartnerStatus = "pending"
	PartnerStatusUnderReview PartnerStatus = "under_review"
	PartnerStatusApproved    PartnerStatus = "approved"
	PartnerStatusRejected    PartnerStatus = "rejected"
	PartnerStatusBlocked     PartnerStatus = "blocked"
)

// ValidPartnerStatus reports whether s is a known partner status.
func ValidPartnerStatus(s string) bool {
	switch PartnerStatus(s) {
	case PartnerStatusPending, PartnerStatusUnderReview, PartnerStatusApproved,
		PartnerStatusRejected, PartnerStatusBlocked:
		return true
	}
	return false
}

// PartnerProfile is the partner-provided profile information.
type PartnerProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// KYCDetails holds the partner's identity documents and verification state.
type KYCDetails struct {
	AadharNumber   string     `json:"aadharNumber,omitempty"`
	PanNumber      string     `json:"panNumber,omitempty"`
	AadharDocKey   string     `json:"aadharDocKey,omitempty"`
	PanDocKey      string     `json:"panDocKey,omitempty"`
	IsVerified     bool       `json:"isVerified"`
	VerifiedAt     *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy     string     `json:"verifiedBy,omitempty"`
	RejectionNote  string     `json:"rejectionNote,omitempty"`
}

// BankDetails holds the partner's payout account.
type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	BankName      string `json:"bankName"`
}

// Partner is a service provider on the platform.
type Partner struct {
	ID               string         `json:"id"`
	Phone            string         `json:"phone"`
	Status           PartnerStatus  `json:"status"`
	StatusRemarks    string         `json:"statusRemarks,omitempty"`
	StatusUpdatedAt  *time.Time     `json:"statusUpdatedAt,omitempty"`
	StatusUpdatedBy  string         `json:"statusUpdatedBy,omitempty"`
	Profile          PartnerProfile `json:"profile"`
	ProfileCompleted bool           `json:"profileCompleted"`
	CategoryID       string         `json:"categoryId,omitempty"`
	ServiceIDs       []string       `json:"serviceIds,omitempty"`
	KYC              KYCDetails     `json:"kycDetails"`
	Bank             BankDetails    `json:"bankDetails"`
	WalletBalance    float64        `json:"walletBalance"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// Request payloads for the partner auth/profile flows.

type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type CompleteProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

type SelectCategoryRequest struct {
	CategoryID string   `json:"categoryId" binding:"required"`
	ServiceIDs []string `json:"serviceIds" binding:"required"`
}

type UpdateKYCRequest struct {
	AadharNumber string `json:"aadharNumber"`
	PanNumber    string `json:"panNumber"`
}

type UpdateBankDetailsRequest struct {
	AccountHolder string `json:"accountHolder" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	IFSCCode      string `json:"ifscCode" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
}

type UpdatePartnerStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

type VerifyKYCRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// PartnerLoginResult is returned after successful OTP verification.
type PartnerLoginResult struct {
	Partner *Partner `json:"partner"`
	Token   string   `json:"token"`
}
