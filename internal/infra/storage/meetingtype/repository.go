package meetingtype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var (
	// ErrMeetingTypeNotFound возвращается, когда тип встречи не найден у хоста
	ErrMeetingTypeNotFound = errors.New("meetingtype.repository: meeting type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("meetingtype.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("meetingtype.repository: failed to scan row")
)

// storedQuestion вопрос в JSONB колонке questions
type storedQuestion struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Required bool   `json:"required"`
	Type     string `json:"type"`
}

// Repository репозиторий типов встреч (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов встреч
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип встречи хоста по ID
func (r *Repository) GetByID(ctx context.Context, hostID, id int64) (*domain.MeetingType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"host_id",
		"name",
		"description",
		"duration_minutes",
		"buffer_before_minutes",
		"buffer_after_minutes",
		"advance_notice_minutes",
		"max_advance_booking_days",
		"platform",
		"active",
		"questions",
		"created_at",
		"updated_at",
	).
		From("meeting_types").
		Where(squirrel.Eq{"id": id, "host_id": hostID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		mt                   domain.MeetingType
		description          sql.NullString
		questions            []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&mt.ID,
		&mt.HostID,
		&mt.Name,
		&description,
		&mt.DurationMinutes,
		&mt.BufferBeforeMinutes,
		&mt.BufferAfterMinutes,
		&mt.AdvanceNoticeMinutes,
		&mt.MaxAdvanceBookingDays,
		&mt.Platform,
		&mt.Active,
		&questions,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMeetingTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan meeting type: %v", ErrScanRow, err)
	}

	mt.Description = description.String
	mt.CreatedAt = createdAt.Time
	mt.UpdatedAt = updatedAt.Time

	if mt.Questions, err = decodeQuestions(questions); err != nil {
		return nil, fmt.Errorf("%w: GetByID - questions of meeting type id=%d: %v", ErrScanRow, id, err)
	}

	return &mt, nil
}

func decodeQuestions(data []byte) ([]domain.CustomQuestion, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var stored []storedQuestion
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}

	questions := make([]domain.CustomQuestion, 0, len(stored))
	for _, q := range stored {
		kind := domain.AnswerKind(q.Type)
		if kind != domain.AnswerKindTextarea {
			kind = domain.AnswerKindText
		}
		questions = append(questions, domain.CustomQuestion{
			ID:         q.ID,
			Text:       q.Text,
			Required:   q.Required,
			AnswerKind: kind,
		})
	}
	return questions, nil
}
