package operator_login

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBadCredentials     = "unknown operator or wrong password"
)

// Credential is one configured operator login. PasswordHash is a bcrypt
// hash, never plaintext.
type Credential struct {
	Username     string
	PasswordHash string
}

type Handler struct {
	credentials map[string]string // username -> bcrypt hash
	secret      []byte
	tokenTTL    time.Duration
	logger      Logger
}

func NewHandler(credentials []Credential, secret []byte, tokenTTL time.Duration, logger Logger) *Handler {
	byName := make(map[string]string, len(credentials))
	for _, c := range credentials {
		byName[c.Username] = c.PasswordHash
	}
	return &Handler{
		credentials: byName,
		secret:      secret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	hash, ok := h.credentials[req.Username]
	if !ok {
		h.logger.Warn("POST /auth/login - unknown operator %q", req.Username)
		handlers.RespondUnauthorized(w, msgBadCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		h.logger.Warn("POST /auth/login - wrong password for %q", req.Username)
		handlers.RespondUnauthorized(w, msgBadCredentials)
		return
	}

	expiresAt := time.Now().Add(h.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(h.secret)
	if err != nil {
		h.logger.Error("POST /auth/login - failed to sign token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/login - token issued for %q", req.Username)
	handlers.RespondJSON(w, http.StatusOK, Response{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
