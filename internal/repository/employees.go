package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
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
		INSERT INTO employees (username, password_hash, full_name, email, avatar, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{employee.Username, employee.PasswordHash, employee.FullName, employee.Email, employee.Avatar, employee.Role, employee.Status}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&employee.ID, &employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	for _, specID := range employee.SpecializationIDs {
		query := `
			INSERT INTO employee_specializations (employee_id, specialization_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, employee.ID, specID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) getEmployeeSpecializationIDs(ctx context.Context, employeeID int64) ([]int64, error) {
	query := `
		SELECT specialization_id FROM employee_specializations WHERE employee_id = $1 ORDER BY specialization_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specIDs := make([]int64, 0)
	for rows.Next() {
		var specID int64
		if err := rows.Scan(&specID); err != nil {
			return nil, err
		}
		specIDs = append(specIDs, specID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return specIDs, nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT username, password_hash, full_name, email, avatar, role, status, created_at, version
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		ID: id,
	}

	dst := []any{&employee.Username, &employee.PasswordHash, &employee.FullName, &employee.Email, &employee.Avatar, &employee.Role, &employee.Status, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	specIDs, err := r.getEmployeeSpecializationIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	employee.SpecializationIDs = specIDs

	return employee, nil
}

func (r *Repository) GetEmployeeByUsername(username string) (*domain.Employee, error) {
	query := `
		SELECT id, password_hash, full_name, email, avatar, role, status, created_at, version
		FROM employees WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		Username: username,
	}

	dst := []any{&employee.ID, &employee.PasswordHash, &employee.FullName, &employee.Email, &employee.Avatar, &employee.Role, &employee.Status, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	specIDs, err := r.getEmployeeSpecializationIDs(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	employee.SpecializationIDs = specIDs

	return employee, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT
			e.id, e.username, e.full_name, e.email, e.avatar, e.role, e.status, e.created_at, e.version,
			es.specialization_id
		FROM employees e
		LEFT JOIN employee_specializations es ON e.id = es.employee_id
		ORDER BY e.id, es.specialization_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employeesMap := make(map[int64]*domain.Employee)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			id        int64
			username  string
			fullName  string
			email     string
			avatar    string
			role      domain.Role
			status    domain.EmployeeStatus
			createdAt time.Time
			version   int32
			specID    sql.NullInt64
		}

		dst := []any{&row.id, &row.username, &row.fullName, &row.email, &row.avatar, &row.role, &row.status, &row.createdAt, &row.version, &row.specID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := employeesMap[row.id]; !exists {
			employeesMap[row.id] = &domain.Employee{
				ID:                row.id,
				Username:          row.username,
				FullName:          row.fullName,
				Email:             row.email,
				Avatar:            row.avatar,
				Role:              row.role,
				Status:            row.status,
				SpecializationIDs: make([]int64, 0),
				CreatedAt:         row.createdAt,
				Version:           row.version,
			}
			order = append(order, row.id)
		}

		if row.specID.Valid {
			employee := employeesMap[row.id]
			employee.SpecializationIDs = append(employee.SpecializationIDs, row.specID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	employees := make([]*domain.Employee, 0, len(order))
	for _, id := range order {
		employees = append(employees, employeesMap[id])
	}

	return employees, nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
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
		UPDATE employees
		SET
			password_hash = $1,
			email = $2,
			avatar = $3,
			role = $4,
			status = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING username, full_name, created_at, version
	`

	args := []any{employee.PasswordHash, employee.Email, employee.Avatar, employee.Role, employee.Status, employee.ID, employee.Version}
	dst := []any{&employee.Username, &employee.FullName, &employee.CreatedAt, &employee.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	// 专长集合整体替换
	query = `DELETE FROM employee_specializations WHERE employee_id = $1`
	if _, err := tx.ExecContext(ctx, query, employee.ID); err != nil {
		return err
	}

	for _, specID := range employee.SpecializationIDs {
		query := `
			INSERT INTO employee_specializations (employee_id, specialization_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, employee.ID, specID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
