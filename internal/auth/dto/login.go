package dto

type LoginInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type LogoutInput struct {
	RefreshToken string `json:"refresh_token"`
	All          bool   `json:"all"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
