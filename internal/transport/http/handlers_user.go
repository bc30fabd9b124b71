package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"truedial/internal/platform/metrics"
	"truedial/internal/user"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

type UserService interface {
	Signup(ctx context.Context, req user.SignupRequest) (user.User, error)
	Login(ctx context.Context, req user.LoginRequest) (user.User, bool, error)
}

type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, phoneNumber string) (string, error)
}

type UserHandler struct {
	users   UserService
	tokens  TokenIssuer
	metrics *metrics.Metrics
}

type signupRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
}

type userResponse struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email,omitempty"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		PhoneNumber: u.PhoneNumber,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
	}
}

func (h *UserHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	u, err := h.users.Signup(r.Context(), user.SignupRequest{
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementUsersCreated()
	}
	respond(w, http.StatusCreated, toUserResponse(u))
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
	Created     bool         `json:"created"`
}

func (h *UserHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	u, created, err := h.users.Login(r.Context(), user.LoginRequest{
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(u.ID, u.PhoneNumber)
	if err != nil {
		writeError(w, dErrors.Wrap(err, dErrors.CodeInternal, "issue token"))
		return
	}

	if created && h.metrics != nil {
		h.metrics.IncrementUsersCreated()
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(w, status, loginResponse{AccessToken: token, User: toUserResponse(u), Created: created})
}
