package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CodeLoginRequest signs in an admin-created member by unique code.
type CodeLoginRequest struct {
	UniqueCode string `json:"unique_code" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token  string          `json:"token"`
	Role   string          `json:"role"`
	Member *MemberResponse `json:"member,omitempty"`
}
