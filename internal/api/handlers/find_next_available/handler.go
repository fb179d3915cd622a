package find_next_available

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
)

const (
	msgInvalidHostID       = "некорректный ID хоста"
	msgInvalidMeetingType  = "некорректный тип встречи"
	msgInvalidQuery        = "некорректные параметры поиска"
	msgMeetingTypeNotFound = "тип встречи не найден"
)

type Handler struct {
	useCase FindNextAvailableUseCase
	logger  Logger
}

func NewHandler(useCase FindNextAvailableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/hosts/{hostId}/meeting-types/{meetingTypeId}/next-available
// Query params: from, days, time, horizon (все необязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/next-available - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	ref, err := handlers.MeetingTypeRefFromPath(r)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/next-available - Invalid meeting type: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingType)
		return
	}

	useCaseReq, err := ToUseCaseRequest(hostID, ref, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/next-available - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrMeetingTypeNotFound):
			h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/next-available - Meeting type not found: host_id=%d, meeting_type_id=%d",
				hostID, ref.ID)
			handlers.RespondNotFound(w, msgMeetingTypeNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/next-available - Invalid request: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			status := handlers.StatusFromError(err)
			h.logger.Error("GET /hosts/{id}/meeting-types/{id}/next-available - Search failed: host_id=%d, meeting_type_id=%d, error=%v",
				hostID, ref.ID, err)
			handlers.RespondError(w, status, handlers.StatusMessage(status))
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/meeting-types/{id}/next-available - Search finished: host_id=%d, found=%t",
		hostID, result.Found)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(hostID, result))
}
