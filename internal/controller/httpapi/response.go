package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jeanmvides21/academic-back/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError переводит класс ошибки в HTTP-статус.
// Внутренние ошибки не показываем клиенту, только логируем.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	kind := apperror.KindOf(err)

	var status int
	switch kind {
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindValidation:
		status = http.StatusBadRequest
	case apperror.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	message := "internal server error"
	var appErr *apperror.Error
	if errors.As(err, &appErr) && kind != apperror.KindInternal {
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}

	respondJSON(w, status, errorResponse{Error: message, Kind: string(kind)})
}
