package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// PartnerModel is the GORM model for the partners table.
type PartnerModel struct {
	ID              string `gorm:"type:varchar(36);primaryKey"`
	Phone           string `gorm:"type:varchar(20);uniqueIndex;not null"`
	Status          string `gorm:"type:varchar(20);index;not null;default:'pending'"`
	StatusRemarks   string `gorm:"type:text"`
	StatusUpdatedAt *time.Time
	StatusUpdatedBy string `gorm:"type:varchar(36)"`

	Name    string `gorm:"type:varchar(100)"`
	Email   string `gorm:"type:varchar(150)"`
	Address string `gorm:"type:varchar(300)"`
	City    string `gorm:"type:varchar(100)"`
	Pincode string `gorm:"type:varchar(12)"`

	ProfileCompleted bool   `gorm:"not null;default:false"`
	CategoryID       string `gorm:"type:varchar(36);index"`
	ServiceIDs       string `gorm:"type:text"` // comma-separated service ids

	AadharNumber    string `gorm:"type:varchar(20)"`
	PanNumber       string `gorm:"type:varchar(20)"`
	AadharDocKey    string `gorm:"type:varchar(255)"`
	PanDocKey       string `gorm:"type:varchar(255)"`
	KYCVerified     bool   `gorm:"not null;default:false"`
	KYCVerifiedAt   *time.Time
	KYCVerifiedBy   string `gorm:"type:varchar(36)"`
	KYCRejectedNote string `gorm:"type:text"`

	BankAccountHolder string `gorm:"type:varchar(100)"`
	BankAccountNumber string `gorm:"type:varchar(30)"`
	BankIFSCCode      string `gorm:"type:varchar(15)"`
	BankName          string `gorm:"type:varchar(100)"`

	WalletBalance float64 `gorm:"not null;default:0"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for PartnerModel.
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts PartnerModel to a domain Partner.
func (m *PartnerModel) ToDomain() *Partner {
	var serviceIDs []string
	if m.ServiceIDs != "" {
		serviceIDs = strings.Split(m.ServiceIDs, ",")
	}

	return &Partner{
		ID:              m.ID,
		Phone:           m.Phone,
		Status:          PartnerStatus(m.Status),
		StatusRemarks:   m.StatusRemarks,
		StatusUpdatedAt: m.StatusUpdatedAt,
		StatusUpdatedBy: m.StatusUpdatedBy,
		Profile: PartnerProfile{
			Name:    m.Name,
			Email:   m.Email,
			Address: m.Address,
			City:    m.City,
			Pincode: m.Pincode,
		},
		ProfileCompleted: m.ProfileCompleted,
		CategoryID:       m.CategoryID,
		ServiceIDs:       serviceIDs,
		KYC: KYCDetails{
			AadharNumber:  m.AadharNumber,
			PanNumber:     m.PanNumber,
			AadharDocKey:  m.AadharDocKey,
			PanDocKey:     m.PanDocKey,
			IsVerified:    m.KYCVerified,
			VerifiedAt:    m.KYCVerifiedAt,
			VerifiedBy:    m.KYCVerifiedBy,
			RejectionNote: m.KYCRejectedNote,
		},
		Bank: BankDetails{
			AccountHolder: m.BankAccountHolder,
			AccountNumber: m.BankAccountNumber,
			IFSCCode:      m.BankIFSCCode,
			BankName:      m.BankName,
		},
		WalletBalance: m.WalletBalance,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// PartnerToModel converts a domain Partner to PartnerModel.
func PartnerToModel(p *Partner) *PartnerModel {
	return &PartnerModel{
		ID:                p.ID,
		Phone:             p.Phone,
		Status:            string(p.Status),
		StatusRemarks:     p.StatusRemarks,
		StatusUpdatedAt:   p.StatusUpdatedAt,
		StatusUpdatedBy:   p.StatusUpdatedBy,
		Name:              p.Profile.Name,
		Email:             p.Profile.Email,
		Address:           p.Profile.Address,
		City:              p.Profile.City,
		Pincode:           p.Profile.Pincode,
		ProfileCompleted:  p.ProfileCompleted,
		CategoryID:        p.CategoryID,
		ServiceIDs:        strings.Join(p.ServiceIDs, ","),
		AadharNumber:      p.KYC.AadharNumber,
		PanNumber:         p.KYC.PanNumber,
		AadharDocKey:      p.KYC.AadharDocKey,
		PanDocKey:         p.KYC.PanDocKey,
		KYCVerified:       p.KYC.IsVerified,
		KYCVerifiedAt:     p.KYC.VerifiedAt,
		KYCVerifiedBy:     p.KYC.VerifiedBy,
		KYCRejectedNote:   p.KYC.RejectionNote,
		BankAccountHolder: p.Bank.AccountHolder,
		BankAccountNumber: p.Bank.AccountNumber,
		BankIFSCCode:      p.Bank.IFSCCode,
		BankName:          p.Bank.BankName,
		WalletBalance:     p.WalletBalance,
		CreatedAt:         p.CreatedAt,
	}
}
