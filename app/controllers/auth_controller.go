package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
	jwtutil "github.com/Stefan-migo/businessManagementApp-sub001/app/jwt"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/services"
)

type AuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{Users: users, Signer: signer}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "missing credentials")
		return
	}
	u, err := c.Users.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username, u.Role)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}
