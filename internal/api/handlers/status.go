package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// StatusFromError сопоставляет класс ошибки планировщика HTTP статусу
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAdmissibility), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCollaborator):
		return http.StatusServiceUnavailable
	default:
		// ErrConfiguration, ErrInvalidInput и неклассифицированные ошибки
		return http.StatusInternalServerError
	}
}

// StatusMessage текст ошибки для статуса, если у обработчика нет более точного
func StatusMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "ресурс не найден"
	case http.StatusBadRequest:
		return "некорректный запрос"
	case http.StatusConflict:
		return "выбранное время больше недоступно"
	case http.StatusServiceUnavailable:
		return "сервис временно недоступен, повторите попытку"
	default:
		return msgInternalError
	}
}
