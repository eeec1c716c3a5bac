package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
)

// Repository репозиторий политик бронирования организаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOrganization получает политики организации
func (r *Repository) GetByOrganization(ctx context.Context, organizationID int64) (*domain.BookingPolicies, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"organization_id",
		"timezone",
		"new_client_mode",
		"existing_client_mode",
		"deposit_required",
		"deposit_percentage",
		"deposit_minimum",
		"no_show_fee_percentage",
		"cancellation_window_hours",
		"late_cancellation_fee_percentage",
		"max_pets_per_appointment",
		"min_advance_booking_hours",
		"max_advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("booking_policies").
		Where(squirrel.Eq{"organization_id": organizationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrganization - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.BookingPolicies
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.OrganizationID,
		&p.Timezone,
		&p.NewClientMode,
		&p.ExistingClientMode,
		&p.DepositRequired,
		&p.DepositPercentage,
		&p.DepositMinimum,
		&p.NoShowFeePercentage,
		&p.CancellationWindowHours,
		&p.LateCancellationFeePercentage,
		&p.MaxPetsPerAppointment,
		&p.MinAdvanceBookingHours,
		&p.MaxAdvanceBookingDays,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPoliciesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrganization - scan policies: %v", ErrScanRow, err)
	}

	return &p, nil
}

// Upsert создает или полностью перезаписывает политики организации
func (r *Repository) Upsert(ctx context.Context, p *domain.BookingPolicies) (*domain.BookingPolicies, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns(
			"organization_id",
			"timezone",
			"new_client_mode",
			"existing_client_mode",
			"deposit_required",
			"deposit_percentage",
			"deposit_minimum",
			"no_show_fee_percentage",
			"cancellation_window_hours",
			"late_cancellation_fee_percentage",
			"max_pets_per_appointment",
			"min_advance_booking_hours",
			"max_advance_booking_days",
		).
		Values(
			p.OrganizationID,
			p.Timezone,
			p.NewClientMode,
			p.ExistingClientMode,
			p.DepositRequired,
			p.DepositPercentage,
			p.DepositMinimum,
			p.NoShowFeePercentage,
			p.CancellationWindowHours,
			p.LateCancellationFeePercentage,
			p.MaxPetsPerAppointment,
			p.MinAdvanceBookingHours,
			p.MaxAdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (organization_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			new_client_mode = EXCLUDED.new_client_mode,
			existing_client_mode = EXCLUDED.existing_client_mode,
			deposit_required = EXCLUDED.deposit_required,
			deposit_percentage = EXCLUDED.deposit_percentage,
			deposit_minimum = EXCLUDED.deposit_minimum,
			no_show_fee_percentage = EXCLUDED.no_show_fee_percentage,
			cancellation_window_hours = EXCLUDED.cancellation_window_hours,
			late_cancellation_fee_percentage = EXCLUDED.late_cancellation_fee_percentage,
			max_pets_per_appointment = EXCLUDED.max_pets_per_appointment,
			min_advance_booking_hours = EXCLUDED.min_advance_booking_hours,
			max_advance_booking_days = EXCLUDED.max_advance_booking_days,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return p, nil
}
