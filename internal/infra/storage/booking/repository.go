package booking

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Коды ошибок postgres
const (
	codeExclusionViolation = "23P01"
	codeUniqueViolation    = "23505"
)

var bookingColumns = []string{
	"id",
	"host_id",
	"meeting_type_id",
	"meeting_name",
	"guest_name",
	"guest_email",
	"guest_phone",
	"start_time",
	"duration_minutes",
	"status",
	"platform",
	"meeting_link",
	"notes",
	"answers",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение с активным бронированием хоста отсекается ограничением исключения
// bookings_no_overlap и возвращается как ErrSlotNotAvailable
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	answers, err := json.Marshal(answersOrEmpty(booking.Answers))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal answers: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"host_id",
			"meeting_type_id",
			"meeting_name",
			"guest_name",
			"guest_email",
			"guest_phone",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"platform",
			"meeting_link",
			"notes",
			"answers",
		).
		Values(
			booking.ID,
			booking.HostID,
			booking.MeetingTypeID,
			booking.MeetingName,
			booking.GuestName,
			booking.GuestEmail,
			booking.GuestPhone,
			booking.StartTime.UTC(),
			booking.EndTime().UTC(),
			booking.DurationMinutes,
			booking.Status,
			booking.Platform,
			booking.MeetingLink,
			booking.Notes,
			answers,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case codeExclusionViolation:
				return nil, fmt.Errorf("%w: %s", ErrSlotNotAvailable, pqErr.Message)
			case codeUniqueViolation:
				return nil, fmt.Errorf("%w: id=%s", ErrDuplicateBooking, booking.ID)
			}
		}
		// Ошибки сериализации возвращаются как есть, их классифицирует менеджер транзакций
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByHostAndRange получает активные бронирования хоста, пересекающие [from, to)
// Внутри транзакции строки блокируются (FOR UPDATE) для финальной проверки перед вставкой
func (r *Repository) GetByHostAndRange(ctx context.Context, hostID int64, from, to time.Time) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"host_id": hostID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		Where(squirrel.Gt{"end_time": from.UTC()}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHostAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHostAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByHostAndRange - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByHostAndRange - rows iteration: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// LockHost берет транзакционную advisory-блокировку хоста
// Конкурирующие коммиты одного хоста выполняются последовательно до конца транзакции
func (r *Repository) LockHost(ctx context.Context, hostID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", hostID); err != nil {
		return fmt.Errorf("%w: LockHost - advisory lock: %w", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		meetingTypeID        sql.NullInt64
		guestPhone           sql.NullString
		meetingLink          sql.NullString
		notes                sql.NullString
		answers              []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.HostID,
		&meetingTypeID,
		&booking.MeetingName,
		&booking.GuestName,
		&booking.GuestEmail,
		&guestPhone,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.Platform,
		&meetingLink,
		&notes,
		&answers,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if meetingTypeID.Valid {
		booking.MeetingTypeID = &meetingTypeID.Int64
	}
	if guestPhone.Valid {
		booking.GuestPhone = &guestPhone.String
	}
	if meetingLink.Valid {
		booking.MeetingLink = &meetingLink.String
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	if booking.Answers, err = decodeAnswers(answers); err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// decodeAnswers разбирает JSONB ответов, пустое значение и пустой объект означают отсутствие ответов
func decodeAnswers(raw []byte) ([]domain.QuestionAnswer, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var answers []domain.QuestionAnswer
	if err := json.Unmarshal(trimmed, &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %v", err)
	}
	return answers, nil
}

func answersOrEmpty(answers []domain.QuestionAnswer) []domain.QuestionAnswer {
	if answers == nil {
		return []domain.QuestionAnswer{}
	}
	return answers
}
