package domain

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleParticipant Role = "participant"
	RoleCoordinator Role = "coordinator"
	RoleFaculty     Role = "faculty"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Name         string `gorm:"not null" json:"name"`
	Phone        string `gorm:"index" json:"phone"`
	College      string `json:"college"`
	Department   string `json:"department"`
	Role         Role   `gorm:"type:varchar(20);not null;default:participant" json:"role"`

	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null;default:pending" json:"verification_status"`
	PaymentStatus      PaymentStatus      `gorm:"type:varchar(20);not null;default:pending" json:"payment_status"`

	// PaymentReference is nullable so unverified rows do not collide on the
	// unique index. The index is what makes the duplicate guard race-free.
	PaymentReference *string    `gorm:"uniqueIndex" json:"payment_reference,omitempty"`
	OrderReference   *string    `json:"order_reference,omitempty"`
	AmountPaid       float64    `json:"amount_paid"`
	ReceiptURL       string     `gorm:"type:text" json:"receipt_url,omitempty"`
	RejectionReason  string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	VerifiedBy       *uint      `json:"verified_by,omitempty"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`

	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
