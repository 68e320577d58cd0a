package auth

// LoginRequest is the customer login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginRequest is the admin login payload. Remember persists the
// credentials for form prefill on the next visit.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// RegisterRequest is the customer registration payload. Age arrives as the
// raw form string so non-numeric input gets its own validation message. The
// service validates every field itself so each failure carries its exact
// reason, so no validate tags here.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	Age             string `json:"age"`
}
