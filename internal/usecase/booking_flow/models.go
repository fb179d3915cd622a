package booking_flow

import (
	"errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Step шаг сценария бронирования
type Step string

const (
	StepSelectingDateTime Step = "selecting_date_time"
	StepEnteringDetails   Step = "entering_details"
	StepConfirmed         Step = "confirmed"
	StepFailed            Step = "failed"
	StepClosed            Step = "closed"
)

// FailureKind класс ошибки, переводящей сценарий в Failed
type FailureKind string

const (
	FailureValidation    FailureKind = "validation"
	FailureAdmissibility FailureKind = "admissibility"
	FailureConflict      FailureKind = "conflict"
	FailureCollaborator  FailureKind = "collaborator"
)

// Recoverable returns true if the details can be resubmitted without picking a new slot
func (k FailureKind) Recoverable() bool {
	return k == FailureValidation || k == FailureCollaborator
}

// failureKindOf классифицирует ошибку по таксономии domain
func failureKindOf(err error) FailureKind {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return FailureValidation
	case errors.Is(err, domain.ErrConflict):
		return FailureConflict
	case errors.Is(err, domain.ErrAdmissibility):
		return FailureAdmissibility
	default:
		return FailureCollaborator
	}
}

// Failure причина перехода в Failed
type Failure struct {
	Kind   FailureKind
	Reason string
	// Fields ошибки по полям формы, только для FailureValidation
	Fields map[string]string
}

// DetailsForm данные, введенные гостем
type DetailsForm struct {
	Name    string
	Email   string
	Phone   string
	Answers map[string]string // ID вопроса -> ответ
	Notes   string
}

// NextAvailableMode режим "ближайший свободный слот"
type NextAvailableMode struct {
	Days domain.WeekdaySet
	Time domain.TimeFilter
}

// StartRequest модель запроса на запуск сценария
type StartRequest struct {
	HostID        int64
	MeetingType   domain.MeetingTypeRef
	NextAvailable *NextAvailableMode
}

// View снимок состояния сценария для отображения
type View struct {
	Step           Step
	HostID         int64
	MeetingType    *domain.MeetingType
	NextAvailable  *NextAvailableMode
	Date           domain.CivilDate
	Slots          []domain.CandidateSlot
	AvailableCount int
	// NoneFound явное пустое состояние поиска ближайшего слота
	NoneFound    bool
	SelectedSlot *domain.CandidateSlot
	Form         DetailsForm
	Failure      *Failure
	Booking      *domain.Booking
}
