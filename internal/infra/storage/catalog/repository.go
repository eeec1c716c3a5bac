package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг и их модификаторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServicesByIDs возвращает услуги организации вместе с модификаторами.
// Неактивные услуги тоже возвращаются: решение о них принимает расчет цены.
// Отсутствующие ID просто не попадают в результат.
func (r *Repository) GetServicesByIDs(ctx context.Context, organizationID int64, ids []int64) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"organization_id",
		"name",
		"category",
		"base_duration",
		"base_price",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"organization_id": organizationID, "id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0, len(ids))
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.Name, &s.Category, &s.BaseDuration, &s.BasePrice, &s.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetServicesByIDs - scan row: %v", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - rows error: %v", ErrScanRow, err)
	}

	if len(services) == 0 {
		return services, nil
	}

	modifiers, err := r.getModifiers(ctx, executor, services)
	if err != nil {
		return nil, err
	}
	for i := range services {
		services[i].Modifiers = modifiers[services[i].ID]
	}

	return services, nil
}

// getModifiers загружает модификаторы услуг, сгруппированные по service_id
func (r *Repository) getModifiers(ctx context.Context, executor DBExecutor, services []domain.Service) (map[int64][]domain.ServiceModifier, error) {
	serviceIDs := make([]int64, len(services))
	for i, s := range services {
		serviceIDs[i] = s.ID
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"type",
		"duration_delta",
		"price_delta",
		"is_percentage",
		"condition_weight_ranges",
		"condition_coat_types",
	).
		From("service_modifiers").
		Where(squirrel.Eq{"service_id": serviceIDs}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getModifiers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getModifiers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.ServiceModifier, len(services))
	for rows.Next() {
		var (
			m           domain.ServiceModifier
			weightRange pq.StringArray
			coatTypes   pq.StringArray
		)

		err := rows.Scan(
			&m.ID,
			&m.ServiceID,
			&m.Name,
			&m.Type,
			&m.DurationDelta,
			&m.PriceDelta,
			&m.IsPercentage,
			&weightRange,
			&coatTypes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getModifiers - scan row: %v", ErrScanRow, err)
		}

		m.Condition = toCondition(weightRange, coatTypes)
		result[m.ServiceID] = append(result[m.ServiceID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getModifiers - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// toCondition возвращает nil, если ни одно поле условия не задано
func toCondition(weightRanges, coatTypes []string) *domain.ModifierCondition {
	if len(weightRanges) == 0 && len(coatTypes) == 0 {
		return nil
	}

	cond := &domain.ModifierCondition{}
	for _, w := range weightRanges {
		cond.WeightRanges = append(cond.WeightRanges, domain.WeightRange(w))
	}
	for _, c := range coatTypes {
		cond.CoatTypes = append(cond.CoatTypes, domain.CoatType(c))
	}
	return cond
}
