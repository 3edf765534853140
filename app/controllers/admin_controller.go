package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/services"
)

type AdminController struct{ Users *services.UserService }

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{Users: users}
}

type createUserReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (c *AdminController) CreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req createUserReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "missing username or password")
		return
	}
	if err := c.Users.CreateUser(req.Username, req.Email, req.Password, req.Role); err != nil {
		writeJSONError(w, http.StatusConflict, "user already exists")
		return
	}
	w.WriteHeader(http.StatusCreated)
}
