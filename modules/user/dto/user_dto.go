package dto

type SignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	TimeZone  string `json:"timeZone,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
}

type TimeZoneResponse struct {
	TimeZone string `json:"timeZone"`
}

type UpdateTimeZoneRequest struct {
	TimeZone string `json:"timeZone"`
}
