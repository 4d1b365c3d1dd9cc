package models

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,min=3"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
	Address  string `json:"address" form:"address" binding:"omitempty"`
	Answer   string `json:"answer" form:"answer" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email       string `json:"email" form:"email" binding:"required,email"`
	Answer      string `json:"answer" form:"answer" binding:"required"`
	NewPassword string `json:"new_password" form:"new_password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword string `json:"new_password" form:"new_password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Role    string `json:"role" form:"role" binding:"omitempty,oneof=customer admin"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

type ProcessPaymentRequest struct {
	Nonce string     `json:"nonce" binding:"required"`
	Cart  []CartLine `json:"cart"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
