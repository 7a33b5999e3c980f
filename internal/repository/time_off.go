package repository

import (
	"context"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func (r *Repository) CreateTimeOffEntry(entry *domain.TimeOffEntry) error {
	query := `
		INSERT INTO time_off_entries (employee_id, type, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{entry.EmployeeID, entry.Type, entry.StartDate, entry.EndDate}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllTimeOffEntries() ([]*domain.TimeOffEntry, error) {
	query := `
		SELECT id, employee_id, type, start_date, end_date, created_at
		FROM time_off_entries ORDER BY start_date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.TimeOffEntry, 0)
	for rows.Next() {
		entry := &domain.TimeOffEntry{}
		dst := []any{&entry.ID, &entry.EmployeeID, &entry.Type, &entry.StartDate, &entry.EndDate, &entry.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) GetTimeOffEntriesByEmployee(employeeID int64) ([]*domain.TimeOffEntry, error) {
	query := `
		SELECT id, type, start_date, end_date, created_at
		FROM time_off_entries WHERE employee_id = $1 ORDER BY start_date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.TimeOffEntry, 0)
	for rows.Next() {
		entry := &domain.TimeOffEntry{
			EmployeeID: employeeID,
		}
		dst := []any{&entry.ID, &entry.Type, &entry.StartDate, &entry.EndDate, &entry.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) DeleteTimeOffEntry(id int64) error {
	query := `
		DELETE FROM time_off_entries WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
