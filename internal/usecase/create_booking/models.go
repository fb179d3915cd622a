package create_booking

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Request модель запроса на фиксацию бронирования
type Request struct {
	HostID int64                // ID хоста
	Draft  *domain.BookingDraft // Черновик, собранный сценарием бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
