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

type SubjectAPI interface {
	Create(ctx context.Context, in service.CreateSubjectInput) (*model.Subject, error)
	Update(ctx context.Context, id int64, in service.UpdateSubjectInput) (*model.Subject, error)
	Remove(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Subject, error)
	List(ctx context.Context) ([]*model.Subject, error)
}

type SubjectHandler struct {
	subjects SubjectAPI
	logger   *zap.Logger
}

func NewSubjectHandler(subjects SubjectAPI, logger *zap.Logger) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, logger: logger}
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSubjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, h.logger, apperror.Validationf("invalid request body"))
		return
	}

	subject, err := h.subjects.Create(r.Context(), in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, subject)
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if subjects == nil {
		subjects = []*model.Subject{}
	}

	respondJSON(w, http.StatusOK, subjects)
}

func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	subject, err := h.subjects.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, subject)
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var in service.UpdateSubjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, h.logger, apperror.Validationf("invalid request body"))
		return
	}

	subject, err := h.subjects.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, subject)
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.subjects.Remove(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "subject deleted successfully"})
}
