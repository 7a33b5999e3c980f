package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func (r *Repository) CreateWorkOffer(offer *domain.WorkOffer) error {
	query := `
		INSERT INTO work_offers (request_id, target_staff_id, offered_by_id, coverage, compensation, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	coverageJSON, err := json.Marshal(offer.Coverage)
	if err != nil {
		return err
	}
	compensationJSON, err := json.Marshal(offer.Compensation)
	if err != nil {
		return err
	}

	args := []any{offer.RequestID, offer.TargetStaffID, offer.OfferedByID, coverageJSON, compensationJSON, offer.Status, offer.ExpiresAt}
	dst := []any{&offer.ID, &offer.CreatedAt, &offer.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkOfferByID(id int64) (*domain.WorkOffer, error) {
	query := `
		SELECT
			wo.request_id, wo.target_staff_id, target.full_name, wo.offered_by_id, sender.full_name,
			wo.coverage, wo.compensation, wo.status, wo.created_at, wo.expires_at, wo.responded_at, wo.version
		FROM work_offers wo
		INNER JOIN employees target ON wo.target_staff_id = target.id
		INNER JOIN employees sender ON wo.offered_by_id = sender.id
		WHERE wo.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	offer := &domain.WorkOffer{
		ID: id,
	}

	var coverageRaw, compensationRaw []byte
	dst := []any{&offer.RequestID, &offer.TargetStaffID, &offer.TargetStaffName, &offer.OfferedByID, &offer.OfferedByName, &coverageRaw, &compensationRaw, &offer.Status, &offer.CreatedAt, &offer.ExpiresAt, &offer.RespondedAt, &offer.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(coverageRaw, &offer.Coverage); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(compensationRaw, &offer.Compensation); err != nil {
		return nil, err
	}

	return offer, nil
}

func (r *Repository) scanWorkOffers(ctx context.Context, query string, args ...any) ([]*domain.WorkOffer, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]*domain.WorkOffer, 0)
	for rows.Next() {
		offer := &domain.WorkOffer{}
		var coverageRaw, compensationRaw []byte
		dst := []any{&offer.ID, &offer.RequestID, &offer.TargetStaffID, &offer.TargetStaffName, &offer.OfferedByID, &offer.OfferedByName, &coverageRaw, &compensationRaw, &offer.Status, &offer.CreatedAt, &offer.ExpiresAt, &offer.RespondedAt, &offer.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(coverageRaw, &offer.Coverage); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(compensationRaw, &offer.Compensation); err != nil {
			return nil, err
		}

		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *Repository) GetWorkOffersByRequest(requestID int64) ([]*domain.WorkOffer, error) {
	query := `
		SELECT
			wo.id, wo.request_id, wo.target_staff_id, target.full_name, wo.offered_by_id, sender.full_name,
			wo.coverage, wo.compensation, wo.status, wo.created_at, wo.expires_at, wo.responded_at, wo.version
		FROM work_offers wo
		INNER JOIN employees target ON wo.target_staff_id = target.id
		INNER JOIN employees sender ON wo.offered_by_id = sender.id
		WHERE wo.request_id = $1
		ORDER BY wo.created_at DESC, wo.id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanWorkOffers(ctx, query, requestID)
}

func (r *Repository) GetWorkOffersByTargetStaff(targetStaffID int64) ([]*domain.WorkOffer, error) {
	query := `
		SELECT
			wo.id, wo.request_id, wo.target_staff_id, target.full_name, wo.offered_by_id, sender.full_name,
			wo.coverage, wo.compensation, wo.status, wo.created_at, wo.expires_at, wo.responded_at, wo.version
		FROM work_offers wo
		INNER JOIN employees target ON wo.target_staff_id = target.id
		INNER JOIN employees sender ON wo.offered_by_id = sender.id
		WHERE wo.target_staff_id = $1
		ORDER BY wo.created_at DESC, wo.id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanWorkOffers(ctx, query, targetStaffID)
}

// UpdateWorkOfferResponse 以乐观锁写入员工的答复，版本不匹配时返回 sql.ErrNoRows。
func (r *Repository) UpdateWorkOfferResponse(offer *domain.WorkOffer) error {
	query := `
		UPDATE work_offers
		SET status = $1, responded_at = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{offer.Status, offer.RespondedAt, offer.ID, offer.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&offer.Version); err != nil {
		return err
	}

	return nil
}
