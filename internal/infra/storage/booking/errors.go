package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда вставка нарушила ограничение исключения по времени хоста
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrDuplicateBooking возвращается при повторной вставке бронирования с тем же ID
	ErrDuplicateBooking = errors.New("booking.repository: booking already exists")

	// ErrNotInTransaction возвращается, когда блокировка хоста запрошена вне транзакции
	ErrNotInTransaction = errors.New("booking.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
