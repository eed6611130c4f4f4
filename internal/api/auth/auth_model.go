package auth

// SignUpResponse is returned after a successful sign-up.
type SignUpResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Response is a generic message body.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

const minPasswordLength = 8
