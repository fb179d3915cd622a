package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с подтвержденными бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// CalendarInvite возвращает приглашение .ics для активного бронирования
func (s *Service) CalendarInvite(ctx context.Context, id uuid.UUID) ([]byte, error) {
	s.logger.Info("CalendarInvite: building invite for booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CalendarInvite: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CalendarInvite: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: CalendarInvite - repository error: %v", ErrInternal, err)
	}

	if !booking.IsActive() {
		s.logger.Warn("CalendarInvite: booking id=%s has status=%s", id, booking.Status)
		return nil, ErrBookingCancelled
	}

	return []byte(BuildInvite(booking, s.now())), nil
}
