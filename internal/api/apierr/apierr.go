package apierr

import (
	"errors"
	"net/http"

	"prize_wheel/internal/model"
	"prize_wheel/pkg/resp"
)

// Status HTTP-статус для ошибки сервиса
func Status(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidResultShape):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Write пишет ошибку сервиса. Текст внутренних ошибок наружу не отдается
func Write(w http.ResponseWriter, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	resp.WriteError(w, status, msg)
}
