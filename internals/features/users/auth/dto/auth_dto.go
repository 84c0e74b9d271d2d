package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}
