package repository

import (
	"context"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func (r *Repository) CreateAppointment(appointment *domain.Appointment) error {
	query := `
		INSERT INTO appointments (staff_id, service_id, client_name, client_phone, start_time, duration, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{appointment.StaffID, appointment.ServiceID, appointment.ClientName, appointment.ClientPhone, appointment.StartTime, appointment.Duration, appointment.Status}
	dst := []any{&appointment.ID, &appointment.CreatedAt, &appointment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	query := `
		SELECT staff_id, service_id, client_name, client_phone, start_time, duration, status, created_at, version
		FROM appointments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	appointment := &domain.Appointment{
		ID: id,
	}

	dst := []any{&appointment.StaffID, &appointment.ServiceID, &appointment.ClientName, &appointment.ClientPhone, &appointment.StartTime, &appointment.Duration, &appointment.Status, &appointment.CreatedAt, &appointment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (r *Repository) scanAppointments(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{}
		dst := []any{&appointment.ID, &appointment.StaffID, &appointment.ServiceID, &appointment.ClientName, &appointment.ClientPhone, &appointment.StartTime, &appointment.Duration, &appointment.Status, &appointment.CreatedAt, &appointment.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *Repository) GetAllAppointments() ([]*domain.Appointment, error) {
	query := `
		SELECT id, staff_id, service_id, client_name, client_phone, start_time, duration, status, created_at, version
		FROM appointments ORDER BY start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanAppointments(ctx, query)
}

// GetAppointmentsByDateRange 查询指定闭区间内开始的全部预约，区间端点为 "2006-01-02"。
func (r *Repository) GetAppointmentsByDateRange(startDate, endDate string) ([]*domain.Appointment, error) {
	query := `
		SELECT id, staff_id, service_id, client_name, client_phone, start_time, duration, status, created_at, version
		FROM appointments
		WHERE start_time >= $1::date AND start_time < $2::date + INTERVAL '1 day'
		ORDER BY start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanAppointments(ctx, query, startDate, endDate)
}

func (r *Repository) GetAppointmentsByStaff(staffID int64) ([]*domain.Appointment, error) {
	query := `
		SELECT id, staff_id, service_id, client_name, client_phone, start_time, duration, status, created_at, version
		FROM appointments WHERE staff_id = $1 ORDER BY start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanAppointments(ctx, query, staffID)
}

func (r *Repository) UpdateAppointmentStatus(appointment *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{appointment.Status, appointment.ID, appointment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appointment.Version); err != nil {
		return err
	}

	return nil
}
