package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/service"
)

type ProfileHandler struct {
	userService service.UserService
}

func NewProfileHandler(userService service.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

type profileResponse struct {
	User  *domain.User        `json:"user"`
	Stats domain.ProfileStats `json:"stats"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Me returns the caller's own profile, credits included.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.respondProfile(w, r, userIDFromContext(r.Context()))
}

// Get returns another user's profile by id.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondProfile(w, r, mux.Vars(r)["id"])
}

func (h *ProfileHandler) respondProfile(w http.ResponseWriter, r *http.Request, userID string) {
	user, stats, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, profileResponse{User: user, Stats: stats})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrInvalidInput)
		return
	}

	if err := h.userService.UpdateProfile(r.Context(), userIDFromContext(r.Context()), req.Name, req.Image); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}
