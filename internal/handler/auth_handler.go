package handler

import (
	"encoding/json"
	"net/http"

	"chronoseal-server/internal/domain"
	"chronoseal-server/internal/service"
	"chronoseal-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.authService.Register(r.Context(), &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.Created(w, map[string]string{
		"message": "User registered successfully. Please login.",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	loginResp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	response.Success(w, loginResp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tokenResp, err := h.authService.RefreshToken(&req)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	response.Success(w, tokenResp)
}
