package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

// Repository репозиторий расписаний и отгулов сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAvailability получает настройки доступности сотрудника.
// Недельное расписание всегда содержит 7 дней: недостающие и некорректные
// строки считаются выходными.
func (r *Repository) GetAvailability(ctx context.Context, staffID int64) (*domain.StaffAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"staff_id",
		"organization_id",
		"max_appointments_per_day",
		"buffer_minutes",
		"updated_at",
	).
		From("staff_availability").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - build select query: %v", ErrBuildQuery, err)
	}

	var availability domain.StaffAvailability
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&availability.StaffID,
		&availability.OrganizationID,
		&availability.MaxAppointmentsPerDay,
		&availability.BufferMinutesBetweenAppointments,
		&availability.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - scan availability: %v", ErrScanRow, err)
	}

	days, err := r.getDaySchedules(ctx, executor, staffID)
	if err != nil {
		return nil, err
	}
	availability.WeeklySchedule = domain.NormalizeWeeklySchedule(days)

	return &availability, nil
}

func (r *Repository) getDaySchedules(ctx context.Context, executor DBExecutor, staffID int64) ([]domain.DaySchedule, error) {
	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_working_day",
		"start_time",
		"end_time",
		"break_start",
		"break_end",
	).
		From("staff_day_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getDaySchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getDaySchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.DaySchedule, 0, domain.DaysPerWeek)
	for rows.Next() {
		var (
			day                  domain.DaySchedule
			dayOfWeek            int
			breakStart, breakEnd types.TimeString
		)

		err := rows.Scan(&dayOfWeek, &day.IsWorkingDay, &day.StartTime, &day.EndTime, &breakStart, &breakEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: getDaySchedules - scan row: %v", ErrScanRow, err)
		}

		day.DayOfWeek = time.Weekday(dayOfWeek)
		if !breakStart.IsZero() {
			day.BreakStart = &breakStart
		}
		if !breakEnd.IsZero() {
			day.BreakEnd = &breakEnd
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getDaySchedules - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// UpsertAvailability перезаписывает настройки и все 7 дней расписания.
// Должен вызываться в транзакции.
func (r *Repository) UpsertAvailability(ctx context.Context, a *domain.StaffAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_availability").
		Columns("staff_id", "organization_id", "max_appointments_per_day", "buffer_minutes", "updated_at").
		Values(a.StaffID, a.OrganizationID, a.MaxAppointmentsPerDay, a.BufferMinutesBetweenAppointments, a.UpdatedAt.UTC()).
		Suffix(`ON CONFLICT (staff_id) DO UPDATE SET
			organization_id = EXCLUDED.organization_id,
			max_appointments_per_day = EXCLUDED.max_appointments_per_day,
			buffer_minutes = EXCLUDED.buffer_minutes,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertAvailability - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertAvailability - execute upsert: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("staff_day_schedules").
		Where(squirrel.Eq{"staff_id": a.StaffID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertAvailability - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertAvailability - delete days: %v", ErrExecQuery, err)
	}

	insert := psqlbuilder.Insert("staff_day_schedules").
		Columns("staff_id", "day_of_week", "is_working_day", "start_time", "end_time", "break_start", "break_end")
	for _, d := range a.WeeklySchedule {
		insert = insert.Values(a.StaffID, int(d.DayOfWeek), d.IsWorkingDay, d.StartTime, d.EndTime, d.BreakStart, d.BreakEnd)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertAvailability - build days insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertAvailability - insert days: %v", ErrExecQuery, err)
	}

	return nil
}

// GetApprovedTimeOff возвращает одобренные отгулы сотрудника, пересекающие даты [from, to]
func (r *Repository) GetApprovedTimeOff(ctx context.Context, staffID int64, from, to time.Time) ([]domain.TimeOffRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "start_date", "end_date", "status", "reason").
		From("time_off_requests").
		Where(squirrel.Eq{"staff_id": staffID, "status": string(domain.TimeOffApproved)}).
		Where(squirrel.LtOrEq{"start_date": to.Format(domain.DateFormat)}).
		Where(squirrel.GtOrEq{"end_date": from.Format(domain.DateFormat)}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]domain.TimeOffRequest, 0)
	for rows.Next() {
		var (
			req    domain.TimeOffRequest
			reason sql.NullString
		)
		if err := rows.Scan(&req.ID, &req.StaffID, &req.StartDate, &req.EndDate, &req.Status, &reason); err != nil {
			return nil, fmt.Errorf("%w: GetApprovedTimeOff - scan row: %v", ErrScanRow, err)
		}
		if reason.Valid {
			req.Reason = &reason.String
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
