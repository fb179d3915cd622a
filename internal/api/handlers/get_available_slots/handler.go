package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidHostID        = "некорректный ID хоста"
	msgInvalidMeetingType   = "некорректный тип встречи"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast           = "дата уже прошла"
	msgDateTooFar           = "дата слишком далеко в будущем"
	msgMeetingTypeNotFound  = "тип встречи не найден"
	msgInvalidCustomMeeting = "некорректные параметры произвольной встречи"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/hosts/{hostId}/meeting-types/{meetingTypeId}/slots
// Query params: date (required, YYYY-MM-DD); duration и platform для meetingTypeId=custom
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/slots - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	ref, err := handlers.MeetingTypeRefFromPath(r)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/slots - Invalid meeting type: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingType)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(hostID, ref, dateStr)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/slots - Date in past: host_id=%d, date=%s", hostID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/slots - Date too far: host_id=%d, date=%s", hostID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, scheduling.ErrMeetingTypeNotFound):
			h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/slots - Meeting type not found: host_id=%d, meeting_type_id=%d",
				hostID, ref.ID)
			handlers.RespondNotFound(w, msgMeetingTypeNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /hosts/{id}/meeting-types/{id}/slots - Invalid request: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidCustomMeeting)

		default:
			status := handlers.StatusFromError(err)
			h.logger.Error("GET /hosts/{id}/meeting-types/{id}/slots - Failed to get slots: host_id=%d, meeting_type_id=%d, date=%s, error=%v",
				hostID, ref.ID, dateStr, err)
			handlers.RespondError(w, status, handlers.StatusMessage(status))
		}
		return
	}

	response := FromUseCaseResponse(hostID, result)

	h.logger.Info("GET /hosts/{id}/meeting-types/{id}/slots - Slots retrieved successfully: host_id=%d, date=%s, slots_count=%d, available=%d",
		hostID, dateStr, len(result.Slots), result.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
