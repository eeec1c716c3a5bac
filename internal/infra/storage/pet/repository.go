package pet

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
)

// Repository репозиторий питомцев клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория питомцев
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs возвращает питомцев клиента с указанными ID
// Чужие питомцы в результат не попадают
func (r *Repository) GetByIDs(ctx context.Context, clientID int64, ids []int64) ([]domain.Pet, error) {
	if len(ids) == 0 {
		return []domain.Pet{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "client_id", "name", "species", "weight_range", "coat_type").
		From("pets").
		Where(squirrel.Eq{"client_id": clientID, "id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pets := make([]domain.Pet, 0, len(ids))
	for rows.Next() {
		var p domain.Pet
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Species, &p.WeightRange, &p.CoatType); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		pets = append(pets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return pets, nil
}
