package repository

import (
	"context"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func (r *Repository) GetWorkingHoursByEmployee(employeeID int64) ([]*domain.WorkingHours, error) {
	query := `
		SELECT id, day_of_week, is_working_day, start_time, end_time
		FROM working_hours WHERE employee_id = $1 ORDER BY day_of_week
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workingHours := make([]*domain.WorkingHours, 0, 7)
	for rows.Next() {
		row := &domain.WorkingHours{
			EmployeeID: employeeID,
		}
		dst := []any{&row.ID, &row.DayOfWeek, &row.IsWorkingDay, &row.StartTime, &row.EndTime}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		workingHours = append(workingHours, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workingHours, nil
}

func (r *Repository) GetAllWorkingHours() ([]*domain.WorkingHours, error) {
	query := `
		SELECT id, employee_id, day_of_week, is_working_day, start_time, end_time
		FROM working_hours ORDER BY employee_id, day_of_week
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workingHours := make([]*domain.WorkingHours, 0)
	for rows.Next() {
		row := &domain.WorkingHours{}
		dst := []any{&row.ID, &row.EmployeeID, &row.DayOfWeek, &row.IsWorkingDay, &row.StartTime, &row.EndTime}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		workingHours = append(workingHours, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workingHours, nil
}

// ReplaceEmployeeWorkingHours 在事务中整体替换某员工的每周排班。
func (r *Repository) ReplaceEmployeeWorkingHours(employeeID int64, workingHours []*domain.WorkingHours) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		DELETE FROM working_hours WHERE employee_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, employeeID); err != nil {
		return err
	}

	for _, row := range workingHours {
		query := `
			INSERT INTO working_hours (employee_id, day_of_week, is_working_day, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`
		args := []any{employeeID, row.DayOfWeek, row.IsWorkingDay, row.StartTime, row.EndTime}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
