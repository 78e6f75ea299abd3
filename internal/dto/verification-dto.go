package dto

type UserSummary struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	VerificationStatus string `json:"verification_status"`
}

type ReceiptVerifyResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	EmailSent bool        `json:"email_sent"`
	User      UserSummary `json:"user"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type PendingUserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	College      string `json:"college"`
	Department   string `json:"department"`
	RegisteredAt string `json:"registered_at"`
}
