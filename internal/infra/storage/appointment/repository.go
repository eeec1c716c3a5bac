package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"organization_id",
	"client_id",
	"groomer_id",
	"start_time",
	"end_time",
	"buffer_minutes",
	"status",
	"deposit_amount",
	"deposit_paid",
	"total_amount",
	"cancellation_fee",
	"no_show_fee",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на груминг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись вместе с услугами по каждому питомцу.
// Пересечение с другой активной записью сотрудника (с учетом буфера) отклоняется
// ограничением appointments_no_overlap и возвращается как ErrOverlap.
// Должен вызываться в транзакции, иначе запись может сохраниться без услуг.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"organization_id",
			"client_id",
			"groomer_id",
			"start_time",
			"end_time",
			"blocked_until",
			"buffer_minutes",
			"status",
			"deposit_amount",
			"deposit_paid",
			"total_amount",
		).
		Values(
			a.OrganizationID,
			a.ClientID,
			a.GroomerID,
			a.StartTime.UTC(),
			a.EndTime.UTC(),
			a.BlockedUntil().UTC(),
			a.BufferMinutes,
			a.Status,
			a.DepositAmount,
			a.DepositPaid,
			a.TotalAmount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if mapped := classify(err); mapped != nil {
			return nil, fmt.Errorf("%w: Create - insert appointment: %v", mapped, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertServices(ctx, executor, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) insertServices(ctx context.Context, executor DBExecutor, a *domain.Appointment) error {
	builder := psqlbuilder.Insert("appointment_services").
		Columns("appointment_id", "pet_id", "service_id", "applied_modifier_ids", "final_duration", "final_price")

	rows := 0
	for _, p := range a.Pets {
		for _, s := range p.Services {
			ids := s.AppliedModifierIDs
			if ids == nil {
				ids = []int64{}
			}
			builder = builder.Values(a.ID, p.PetID, s.ServiceID, pq.Array(ids), s.FinalDuration, s.FinalPrice)
			rows++
		}
	}
	if rows == 0 {
		return nil
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build services insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if mapped := classify(err); mapped != nil {
			return fmt.Errorf("%w: Create - insert services: %v", mapped, err)
		}
		return fmt.Errorf("%w: Create - insert services: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает запись по ID вместе с услугами
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrAppointmentNotFound
	}

	a := appointments[0]
	if err := r.loadServices(ctx, executor, []*domain.Appointment{&a}); err != nil {
		return nil, err
	}

	return &a, nil
}

// GetByStaffInRange возвращает записи сотрудника, занятое время которых (с буфером)
// пересекает [filter.From, filter.To). Услуги не загружаются: для расчета
// свободного времени достаточно интервалов.
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельная запись
// на тот же день дождалась завершения текущей.
func (r *Repository) GetByStaffInRange(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"groomer_id": filter.GroomerID}).
		Where(squirrel.Lt{"start_time": filter.To.UTC()}).
		Where(squirrel.Gt{"blocked_until": filter.From.UTC()}).
		OrderBy("start_time ASC")

	if !filter.IncludeCancelled {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		builder = builder.Where(squirrel.NotEq{"status": inactive})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if mapped := classify(err); mapped != nil {
			return nil, fmt.Errorf("%w: GetByStaffInRange - execute query: %v", mapped, err)
		}
		return nil, fmt.Errorf("%w: GetByStaffInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// CountByClient считает не отмененные записи клиента в организации
// Клиент без таких записей считается новым
func (r *Repository) CountByClient(ctx context.Context, organizationID, clientID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"organization_id": organizationID, "client_id": clientID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByClient - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByClient - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Cancel переводит запись в статус cancelled и сохраняет штраф за позднюю отмену.
// Отмененная запись перестает участвовать в ограничении appointments_no_overlap.
func (r *Repository) Cancel(ctx context.Context, id int64, fee decimal.Decimal, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancellable := []string{
		string(domain.StatusRequested),
		string(domain.StatusConfirmed),
		string(domain.StatusCheckedIn),
	}

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_fee", fee).
		Set("cancelled_at", at.UTC()).
		Set("updated_at", at.UTC()).
		Where(squirrel.Eq{"id": id, "status": cancellable}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "Cancel", id, query, args)
}

// MarkNoShow переводит запись в статус no_show и сохраняет штраф за неявку
func (r *Repository) MarkNoShow(ctx context.Context, id int64, fee decimal.Decimal, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	markable := []string{
		string(domain.StatusRequested),
		string(domain.StatusConfirmed),
	}

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusNoShow).
		Set("no_show_fee", fee).
		Set("updated_at", at.UTC()).
		Where(squirrel.Eq{"id": id, "status": markable}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNoShow - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, "MarkNoShow", id, query, args)
}

func (r *Repository) execTransition(ctx context.Context, executor DBExecutor, op string, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		// Либо записи нет, либо статус не допускает перехода
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidTransition
	}

	return nil
}

// loadServices догружает услуги для записей одним запросом
func (r *Repository) loadServices(ctx context.Context, executor DBExecutor, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]int64, len(appointments))
	byID := make(map[int64]*domain.Appointment, len(appointments))
	for i, a := range appointments {
		ids[i] = a.ID
		byID[a.ID] = a
	}

	query, args, err := psqlbuilder.Select(
		"appointment_id",
		"pet_id",
		"service_id",
		"applied_modifier_ids",
		"final_duration",
		"final_price",
	).
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			appointmentID, petID int64
			modifierIDs          pq.Int64Array
			service              domain.AppointmentService
		)

		err := rows.Scan(
			&appointmentID,
			&petID,
			&service.ServiceID,
			&modifierIDs,
			&service.FinalDuration,
			&service.FinalPrice,
		)
		if err != nil {
			return fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}
		service.AppliedModifierIDs = []int64(modifierIDs)

		a, ok := byID[appointmentID]
		if !ok {
			continue
		}
		appendService(a, petID, service)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// appendService группирует услуги по питомцам в порядке первого появления
func appendService(a *domain.Appointment, petID int64, s domain.AppointmentService) {
	for i := range a.Pets {
		if a.Pets[i].PetID == petID {
			a.Pets[i].Services = append(a.Pets[i].Services, s)
			return
		}
	}
	a.Pets = append(a.Pets, domain.AppointmentPet{PetID: petID, Services: []domain.AppointmentService{s}})
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]domain.Appointment, error) {
	appointments := make([]domain.Appointment, 0)

	for rows.Next() {
		var (
			a               domain.Appointment
			groomerID       sql.NullInt64
			cancellationFee decimal.NullDecimal
			noShowFee       decimal.NullDecimal
			cancelledAt     sql.NullTime
		)

		err := rows.Scan(
			&a.ID,
			&a.OrganizationID,
			&a.ClientID,
			&groomerID,
			&a.StartTime,
			&a.EndTime,
			&a.BufferMinutes,
			&a.Status,
			&a.DepositAmount,
			&a.DepositPaid,
			&a.TotalAmount,
			&cancellationFee,
			&noShowFee,
			&cancelledAt,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrAppointmentNotFound
			}
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		if groomerID.Valid {
			id := groomerID.Int64
			a.GroomerID = &id
		}
		if cancellationFee.Valid {
			fee := cancellationFee.Decimal
			a.CancellationFee = &fee
		}
		if noShowFee.Valid {
			fee := noShowFee.Decimal
			a.NoShowFee = &fee
		}
		if cancelledAt.Valid {
			t := cancelledAt.Time
			a.CancelledAt = &t
		}

		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
