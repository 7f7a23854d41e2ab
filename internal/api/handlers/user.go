package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rohits-web03/minitracker/internal/profile"
	"github.com/rohits-web03/minitracker/internal/utils"
)

// Users serves the informational user endpoints. There is no login; the
// returned id is sent back in X-User-ID to attribute actions.
type Users struct {
	profiles *profile.Service
	log      zerolog.Logger
}

func NewUsers(profiles *profile.Service, log zerolog.Logger) *Users {
	return &Users{profiles: profiles, log: log}
}

type registerUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// POST /api/v1/users
// RegisterUser godoc
// @Summary Register a user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body registerUserRequest true "User to create"
// @Success 201 {object} utils.Payload{data=models.User}
// @Failure 400 {object} utils.Payload
// @Failure 409 {object} utils.Payload "Username is already taken"
// @Router /api/v1/users [post]
func (h *Users) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid input")
		return
	}

	u, err := h.profiles.Register(r.Context(), req.Username, req.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
		Data:    u,
	})
}

// GET /api/v1/users/{id}
// GetProfile godoc
// @Summary User profile
// @Description Returns the user with the number of files created and peers simulated.
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} utils.Payload{data=profile.Profile}
// @Failure 404 {object} utils.Payload "User not found"
// @Router /api/v1/users/{id} [get]
func (h *Users) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile retrieved successfully",
		Data:    p,
	})
}
