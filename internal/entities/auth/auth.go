package auth

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
	}

	// Principal is the authenticated caller taken from a verified token
	Principal struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
)
