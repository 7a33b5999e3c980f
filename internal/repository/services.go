package repository

import (
	"context"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func (r *Repository) GetAllSpecializations() ([]*domain.Specialization, error) {
	query := `
		SELECT id, name FROM specializations ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specializations := make([]*domain.Specialization, 0)
	for rows.Next() {
		specialization := &domain.Specialization{}
		if err := rows.Scan(&specialization.ID, &specialization.Name); err != nil {
			return nil, err
		}
		specializations = append(specializations, specialization)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return specializations, nil
}

func (r *Repository) CreateSpecialization(specialization *domain.Specialization) error {
	query := `
		INSERT INTO specializations (name) VALUES ($1) RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, specialization.Name).Scan(&specialization.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllServices() ([]*domain.Service, error) {
	query := `
		SELECT id, name, duration, price FROM services ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service := &domain.Service{}
		dst := []any{&service.ID, &service.Name, &service.Duration, &service.Price}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) GetServiceByID(id int64) (*domain.Service, error) {
	query := `
		SELECT name, duration, price FROM services WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	service := &domain.Service{
		ID: id,
	}

	dst := []any{&service.Name, &service.Duration, &service.Price}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return service, nil
}

func (r *Repository) GetServicesByIDs(ids []int64) ([]*domain.Service, error) {
	query := `
		SELECT id, name, duration, price FROM services WHERE id = ANY($1) ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]*domain.Service, 0, len(ids))
	for rows.Next() {
		service := &domain.Service{}
		dst := []any{&service.ID, &service.Name, &service.Duration, &service.Price}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) CreateService(service *domain.Service) error {
	query := `
		INSERT INTO services (name, duration, price) VALUES ($1, $2, $3) RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{service.Name, service.Duration, service.Price}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&service.ID); err != nil {
		return err
	}

	return nil
}

// GetAllServiceRelationships 返回专长与可提供服务之间的映射。
func (r *Repository) GetAllServiceRelationships() ([]*domain.ServiceRelationship, error) {
	query := `
		SELECT specialization_id, service_id
		FROM specialization_services
		ORDER BY specialization_id, service_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	relationshipsMap := make(map[int64]*domain.ServiceRelationship)
	order := make([]int64, 0)

	for rows.Next() {
		var specializationID, serviceID int64
		if err := rows.Scan(&specializationID, &serviceID); err != nil {
			return nil, err
		}

		if _, exists := relationshipsMap[specializationID]; !exists {
			relationshipsMap[specializationID] = &domain.ServiceRelationship{
				SpecializationID: specializationID,
				ServiceIDs:       make([]int64, 0),
			}
			order = append(order, specializationID)
		}
		relationship := relationshipsMap[specializationID]
		relationship.ServiceIDs = append(relationship.ServiceIDs, serviceID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	relationships := make([]*domain.ServiceRelationship, 0, len(order))
	for _, id := range order {
		relationships = append(relationships, relationshipsMap[id])
	}

	return relationships, nil
}

func (r *Repository) SetSpecializationServices(specializationID int64, serviceIDs []int64) error {
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
		DELETE FROM specialization_services WHERE specialization_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, specializationID); err != nil {
		return err
	}

	for _, serviceID := range serviceIDs {
		query := `
			INSERT INTO specialization_services (specialization_id, service_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, specializationID, serviceID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
