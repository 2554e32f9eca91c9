package operator_login

// Request carries the operator credential.
type Request struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response carries the issued bearer token.
type Response struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
