package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
	"github.com/jeanmvides21/academic-back/internal/service"
)

type UserAPI interface {
	Create(ctx context.Context, in service.CreateUserInput) (*model.User, error)
	Update(ctx context.Context, id int64, in service.UpdateUserInput) (*model.User, error)
	Remove(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

type UserHandler struct {
	users  UserAPI
	logger *zap.Logger
}

func NewUserHandler(users UserAPI, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, h.logger, apperror.Validationf("invalid request body"))
		return
	}

	user, err := h.users.Create(r.Context(), in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}

	respondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var in service.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, h.logger, apperror.Validationf("invalid request body"))
		return
	}

	user, err := h.users.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.users.Remove(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "user deleted successfully"})
}
