package rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/rules"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rule.repository: failed to scan row")
)

// Repository репозиторий правил планирования (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByHost получает активные правила хоста.
// Правила с нечитаемыми условиями возвращаются помеченными как карантинные, а не ошибкой
func (r *Repository) GetActiveByHost(ctx context.Context, hostID int64) ([]domain.Rule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "host_id", "name", "type", "active", "conditions").
		From("scheduling_rules").
		Where(squirrel.Eq{"host_id": hostID, "active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByHost - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByHost - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Rule, 0)
	for rows.Next() {
		var (
			raw        rules.RawRule
			conditions []byte
		)
		if err := rows.Scan(&raw.ID, &raw.HostID, &raw.Name, &raw.Type, &raw.Active, &conditions); err != nil {
			return nil, fmt.Errorf("%w: GetActiveByHost - scan rule: %v", ErrScanRow, err)
		}

		decoded, err := rules.DecodeJSON(raw, conditions)
		if err != nil {
			decoded = rules.Quarantine(decoded, err)
		}
		result = append(result, decoded)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByHost - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}
