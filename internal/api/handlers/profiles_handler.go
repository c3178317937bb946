package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arcians/profile-registry/internal/api/types"
	"github.com/arcians/profile-registry/internal/services"
	appErr "github.com/arcians/profile-registry/pkg/errors"
)

type ProfilesHandler struct {
	svc services.ProfileService
}

func NewProfilesHandler(svc services.ProfileService) *ProfilesHandler {
	return &ProfilesHandler{svc: svc}
}

// List godoc
// @Summary  List profiles
// @Description Returns at most 1000 profiles in store order.
// @Tags     profiles
// @Produce  json
// @Success  200 {array}  models.Profile
// @Failure  500 {object} types.ErrorResponse
// @Router   /profiles [get]
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListProfiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create godoc
// @Summary  Create a profile
// @Tags     profiles
// @Accept   json
// @Produce  json
// @Param    profile body     types.CreateProfileRequest true "profile fields"
// @Success  200     {object} models.Profile
// @Failure  422     {object} types.ErrorResponse
// @Failure  500     {object} types.ErrorResponse
// @Router   /profiles [post]
func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, appErr.Wrap(err, appErr.CodeInvalid, "invalid json body"))
		return
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		writeError(w, appErr.New(appErr.CodeInvalid, "missing required fields: "+strings.Join(missing, ", ")).
			WithMeta("fields", missing))
		return
	}

	// a client that hangs up does not abort the write
	p, err := h.svc.CreateProfile(context.WithoutCancel(r.Context()), &services.CreateProfileInput{
		Name:     *req.Name,
		Bio:      req.Bio,
		Role:     *req.Role,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Get godoc
// @Summary  Get a profile by id
// @Tags     profiles
// @Produce  json
// @Param    id  path     string true "profile id"
// @Success  200 {object} models.Profile
// @Failure  404 {object} types.ErrorResponse
// @Failure  500 {object} types.ErrorResponse
// @Router   /profiles/{id} [get]
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
