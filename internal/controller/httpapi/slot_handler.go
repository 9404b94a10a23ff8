package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jeanmvides21/academic-back/internal/apperror"
	"github.com/jeanmvides21/academic-back/internal/model"
	"github.com/jeanmvides21/academic-back/internal/service"
)

// SlotAPI операции движка расписания, нужные транспорту
type SlotAPI interface {
	Create(ctx context.Context, in service.CreateSlotInput) (*model.SlotView, error)
	Update(ctx context.Context, id int64, in service.UpdateSlotInput) (*model.SlotView, error)
	Remove(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.SlotView, error)
	List(ctx context.Context) ([]*model.SlotView, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.SlotView, error)
}

type SlotHandler struct {
	slots  SlotAPI
	logger *zap.Logger
}

func NewSlotHandler(slots SlotAPI, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{slots: slots, logger: logger}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.Validationf("%s must be a positive integer", name)
	}
	return id, nil
}

func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSlotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, h.logger, apperror.Validationf("invalid request body"))
		return
	}

	view, err := h.slots.Create(r.Context(), in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.slots.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if views == nil {
		views = []*model.SlotView{}
	}

	respondJSON(w, http.StatusOK, views)
}

func (h *SlotHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	views, err := h.slots.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if views == nil {
		views = []*model.SlotView{}
	}

	respondJSON(w, http.StatusOK, views)
}

func (h *SlotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	view, err := h.slots.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *SlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var in service.UpdateSlotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, h.logger, apperror.Validationf("invalid request body"))
		return
	}

	view, err := h.slots.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *SlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.slots.Remove(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "schedule slot deleted successfully"})
}
