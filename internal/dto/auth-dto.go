package dto

// RegisterRequest carries no password: credentials are generated and mailed
// once the registration payment is verified.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	College    string `json:"college"`
	Department string `json:"department"`
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	UserID uint    `json:"user_id"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	Expiry float64 `json:"expiry"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type SetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
