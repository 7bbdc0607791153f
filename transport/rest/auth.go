package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

type identityKey struct{}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (that *handlers) register(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "register")

	var req credentialsRequest
	if err := that.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := that.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		that.writeServiceError(w, log, err, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User created successfully",
		UserID:  user.ID,
	})
}

func (that *handlers) login(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "login")

	var req credentialsRequest
	if err := that.decode(w, r, &req); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, user, err := that.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		that.writeServiceError(w, log, err, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		Username: user.Username,
	})
}

func (that *handlers) logout(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "logout")

	if err := that.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		that.writeServiceError(w, log, err, "Logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authenticate resolves the bearer token and stores the identity in the request context.
func (that *handlers) authenticate(next http.Handler) http.Handler {
	log := that.logger.With("method", "authenticate")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := that.auth.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			that.writeServiceError(w, log, err, "Authentication failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, *identity)))
	})
}

func identityFrom(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(entity.Identity)

	return identity, ok
}

func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}
