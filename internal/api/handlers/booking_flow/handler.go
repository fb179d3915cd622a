package booking_flow

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
	bookingFlow "github.com/m04kA/SMC-SchedulingService/internal/usecase/booking_flow"
)

const (
	msgInvalidHostID       = "некорректный ID хоста"
	msgInvalidFlowID       = "некорректный ID сценария"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStart        = "некорректные параметры сценария"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingStartTime    = "время начала слота обязательно"
	msgMeetingTypeNotFound = "тип встречи не найден"
	msgFlowNotFound        = "сценарий не найден или истек"
	msgIllegalTransition   = "действие недоступно на текущем шаге"
	msgSlotNotOffered      = "выбранный слот недоступен"
	msgInvalidDetails      = "проверьте введенные данные"
	msgSlotTaken           = "выбранное время больше недоступно, выберите другое"
	msgTryAgain            = "не удалось завершить бронирование, повторите попытку"
)

type Handler struct {
	useCase BookingFlowUseCase
	logger  Logger
}

func NewHandler(useCase BookingFlowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Start POST /api/v1/hosts/{hostId}/flows
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("POST /hosts/{id}/flows - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	var req StartFlowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /hosts/{id}/flows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(hostID)
	if err != nil {
		h.logger.Warn("POST /hosts/{id}/flows - Invalid start parameters: host_id=%d, error=%v", hostID, err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	id, view, err := h.useCase.Start(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrMeetingTypeNotFound):
			h.logger.Warn("POST /hosts/{id}/flows - Meeting type not found: host_id=%d, meeting_type_id=%d",
				hostID, useCaseReq.MeetingType.ID)
			handlers.RespondNotFound(w, msgMeetingTypeNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /hosts/{id}/flows - Invalid start parameters: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidStart)

		default:
			status := handlers.StatusFromError(err)
			h.logger.Error("POST /hosts/{id}/flows - Failed to start flow: host_id=%d, error=%v", hostID, err)
			handlers.RespondError(w, status, handlers.StatusMessage(status))
		}
		return
	}

	h.logger.Info("POST /hosts/{id}/flows - Flow started: host_id=%d, flow_id=%s", hostID, id)
	handlers.RespondJSON(w, http.StatusCreated, FromView(id, view))
}

// Get GET /api/v1/flows/{flowId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flowID(w, r)
	if !ok {
		return
	}

	view, err := h.useCase.Get(id)
	h.respond(w, "GET /flows/{id}", id, view, err)
}

// SelectDate POST /api/v1/flows/{flowId}/date
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flowID(w, r)
	if !ok {
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flows/{id}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := domain.ParseCivilDate(req.Date)
	if err != nil {
		h.logger.Warn("POST /flows/{id}/date - Invalid date: flow_id=%s, date=%q", id, req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	view, err := h.useCase.SelectDate(r.Context(), id, date)
	h.respond(w, "POST /flows/{id}/date", id, view, err)
}

// SelectSlot POST /api/v1/flows/{flowId}/slot
func (h *Handler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flowID(w, r)
	if !ok {
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flows/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.StartTime.IsZero() {
		h.logger.Warn("POST /flows/{id}/slot - Missing start time: flow_id=%s", id)
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	view, err := h.useCase.SelectSlot(id, req.StartTime)
	h.respond(w, "POST /flows/{id}/slot", id, view, err)
}

// SubmitDetails POST /api/v1/flows/{flowId}/details
func (h *Handler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flowID(w, r)
	if !ok {
		return
	}

	var req DetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flows/{id}/details - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.useCase.SubmitDetails(r.Context(), id, req.ToDetailsForm())
	h.respond(w, "POST /flows/{id}/details", id, view, err)
}

// Back POST /api/v1/flows/{flowId}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flowID(w, r)
	if !ok {
		return
	}

	view, err := h.useCase.Back(id)
	h.respond(w, "POST /flows/{id}/back", id, view, err)
}

// Done POST /api/v1/flows/{flowId}/done
func (h *Handler) Done(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flowID(w, r)
	if !ok {
		return
	}

	view, err := h.useCase.Done(id)
	h.respond(w, "POST /flows/{id}/done", id, view, err)
}

func (h *Handler) flowID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["flowId"]
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("%s %s - Invalid flow ID: %q", r.Method, r.URL.Path, raw)
		handlers.RespondBadRequest(w, msgInvalidFlowID)
		return uuid.Nil, false
	}
	return id, true
}

// respond отправляет состояние сценария, при ошибке события - вместе с ошибкой
func (h *Handler) respond(w http.ResponseWriter, op string, id uuid.UUID, view bookingFlow.View, err error) {
	if err == nil {
		h.logger.Info("%s - OK: flow_id=%s, step=%s", op, id, view.Step)
		handlers.RespondJSON(w, http.StatusOK, FromView(id, view))
		return
	}

	var (
		status  int
		message string
		fields  map[string]string
	)

	switch {
	case errors.Is(err, domain.ErrNotFound) && view.Step == "":
		status, message = http.StatusNotFound, msgFlowNotFound

	case bookingFlow.IsIllegalTransition(err):
		status, message = http.StatusConflict, msgIllegalTransition

	case errors.Is(err, bookingFlow.ErrInvalidDetails):
		status, message = http.StatusUnprocessableEntity, msgInvalidDetails
		if view.Failure != nil {
			fields = view.Failure.Fields
		}

	case errors.Is(err, bookingFlow.ErrSlotNotOffered):
		status, message = http.StatusBadRequest, msgSlotNotOffered

	case errors.Is(err, domain.ErrAdmissibility), errors.Is(err, domain.ErrConflict):
		status, message = http.StatusConflict, msgSlotTaken

	case errors.Is(err, domain.ErrCollaborator):
		status, message = http.StatusServiceUnavailable, msgTryAgain

	default:
		status = handlers.StatusFromError(err)
		message = handlers.StatusMessage(status)
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("%s - Failed: flow_id=%s, status=%d, error=%v", op, id, status, err)
	} else {
		h.logger.Warn("%s - Rejected: flow_id=%s, status=%d, error=%v", op, id, status, err)
	}

	resp := FlowErrorResponse{Error: message, Fields: fields}
	if view.Step != "" {
		resp.Flow = FromView(id, view)
	}
	handlers.RespondJSON(w, status, resp)
}
