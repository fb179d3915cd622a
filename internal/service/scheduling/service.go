package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	meetingTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/meetingtype"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// Service единая точка доступа сценария бронирования к данным хоста и внешним системам.
// Все ошибки ввода-вывода оборачиваются в domain.ErrCollaborator
type Service struct {
	rules        RuleRepository
	meetingTypes MeetingTypeRepository
	bookings     BookingRepository
	committer    BookingCommitter
	links        MeetingLinkCreator
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	rules RuleRepository,
	meetingTypes MeetingTypeRepository,
	bookings BookingRepository,
	committer BookingCommitter,
	links MeetingLinkCreator,
	logger Logger,
) *Service {
	return &Service{
		rules:        rules,
		meetingTypes: meetingTypes,
		bookings:     bookings,
		committer:    committer,
		links:        links,
		logger:       logger,
	}
}

// GetActiveRules возвращает активные правила хоста.
// Карантинные правила остаются в списке, Evaluator их пропускает
func (s *Service) GetActiveRules(ctx context.Context, hostID int64) ([]domain.Rule, error) {
	rules, err := s.rules.GetActiveByHost(ctx, hostID)
	if err != nil {
		s.logger.Error("Scheduling: failed to get rules for host=%d: %v", hostID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrStorage, err)
	}

	for i := range rules {
		if rules[i].IsQuarantined() {
			s.logger.Warn("Scheduling: rule id=%d of host=%d quarantined: %s",
				rules[i].ID, hostID, rules[i].QuarantineReason)
		}
	}

	return rules, nil
}

// GetMeetingType возвращает активный тип встречи хоста
func (s *Service) GetMeetingType(ctx context.Context, hostID, meetingTypeID int64) (*domain.MeetingType, error) {
	mt, err := s.meetingTypes.GetByID(ctx, hostID, meetingTypeID)
	if err != nil {
		if errors.Is(err, meetingTypeRepo.ErrMeetingTypeNotFound) {
			s.logger.Warn("Scheduling: meeting type id=%d not found for host=%d", meetingTypeID, hostID)
			return nil, ErrMeetingTypeNotFound
		}
		s.logger.Error("Scheduling: failed to get meeting type id=%d: %v", meetingTypeID, err)
		return nil, fmt.Errorf("%w: failed to get meeting type: %v", ErrStorage, err)
	}

	if !mt.Active {
		s.logger.Warn("Scheduling: meeting type id=%d is inactive", meetingTypeID)
		return nil, ErrMeetingTypeNotFound
	}

	if err := mt.Validate(); err != nil {
		s.logger.Error("Scheduling: meeting type id=%d is invalid: %v", meetingTypeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidMeetingType, err)
	}

	return mt, nil
}

// ResolveMeetingType возвращает сохраненный тип встречи или строит произвольный
func (s *Service) ResolveMeetingType(ctx context.Context, hostID int64, ref domain.MeetingTypeRef) (*domain.MeetingType, error) {
	if !ref.IsCustom() {
		return s.GetMeetingType(ctx, hostID, ref.ID)
	}
	return domain.NewAdHocMeetingType(hostID, ref.CustomDurationMinutes, ref.CustomPlatform)
}

// GetBookings возвращает активные бронирования хоста, пересекающие [from, to)
func (s *Service) GetBookings(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error) {
	bookings, err := s.bookings.GetByHostAndRange(ctx, hostID, from, to)
	if err != nil {
		s.logger.Error("Scheduling: failed to get bookings for host=%d: %v", hostID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrStorage, err)
	}
	return bookings, nil
}

// CreateBooking фиксирует черновик.
// Ошибки возвращаются в классах domain.ErrValidation, ErrAdmissibility, ErrConflict, ErrCollaborator
func (s *Service) CreateBooking(ctx context.Context, hostID int64, draft *domain.BookingDraft) (*domain.Booking, error) {
	resp, err := s.committer.Execute(ctx, &create_booking.Request{HostID: hostID, Draft: draft})
	if err != nil {
		return nil, err
	}
	return resp.Booking, nil
}

// CreateMeetingLink создает ссылку на конференцию, nil для платформ без ссылки
func (s *Service) CreateMeetingLink(
	ctx context.Context,
	platform domain.Platform,
	title string,
	start time.Time,
	durationMinutes int,
) (*string, error) {
	link, err := s.links.CreateMeetingLink(ctx, platform, title, start, durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMeetingLink, err)
	}
	return link, nil
}

// RevokeMeetingLink отзывает ссылку, созданную для бронирования, которое не удалось зафиксировать
func (s *Service) RevokeMeetingLink(ctx context.Context, platform domain.Platform, link string) error {
	if err := s.links.RevokeMeetingLink(ctx, platform, link); err != nil {
		return fmt.Errorf("%w: %v", ErrMeetingLink, err)
	}
	return nil
}
