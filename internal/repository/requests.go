package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// 请求的冲突处理状态整体存为 jsonb，读写时在这里做编解码
func marshalConflicts(conflicts *domain.RequestConflicts) (any, error) {
	if conflicts == nil {
		return nil, nil
	}
	return json.Marshal(conflicts)
}

func unmarshalConflicts(raw []byte) (*domain.RequestConflicts, error) {
	if raw == nil {
		return nil, nil
	}
	conflicts := &domain.RequestConflicts{}
	if err := json.Unmarshal(raw, conflicts); err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *Repository) CreateRequest(request *domain.Request) error {
	query := `
		INSERT INTO requests (requester_id, type, time_off_type, start_date, end_date, reason, status, conflicts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	conflictsJSON, err := marshalConflicts(request.Conflicts)
	if err != nil {
		return err
	}

	args := []any{request.RequesterID, request.Type, request.TimeOffType, request.StartDate, request.EndDate, request.Reason, request.Status, conflictsJSON}
	dst := []any{&request.ID, &request.CreatedAt, &request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRequestByID(id int64) (*domain.Request, error) {
	query := `
		SELECT
			rq.requester_id, e.full_name, rq.type, rq.time_off_type,
			rq.start_date, rq.end_date, rq.reason, rq.status, rq.conflicts,
			rq.created_at, rq.version
		FROM requests rq
		INNER JOIN employees e ON rq.requester_id = e.id
		WHERE rq.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	request := &domain.Request{
		ID: id,
	}

	var conflictsRaw []byte
	dst := []any{&request.RequesterID, &request.RequesterName, &request.Type, &request.TimeOffType, &request.StartDate, &request.EndDate, &request.Reason, &request.Status, &conflictsRaw, &request.CreatedAt, &request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	conflicts, err := unmarshalConflicts(conflictsRaw)
	if err != nil {
		return nil, err
	}
	request.Conflicts = conflicts

	return request, nil
}

func (r *Repository) scanRequests(ctx context.Context, query string, args ...any) ([]*domain.Request, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.Request, 0)
	for rows.Next() {
		request := &domain.Request{}
		var conflictsRaw []byte
		dst := []any{&request.ID, &request.RequesterID, &request.RequesterName, &request.Type, &request.TimeOffType, &request.StartDate, &request.EndDate, &request.Reason, &request.Status, &conflictsRaw, &request.CreatedAt, &request.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		conflicts, err := unmarshalConflicts(conflictsRaw)
		if err != nil {
			return nil, err
		}
		request.Conflicts = conflicts

		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) GetAllRequests() ([]*domain.Request, error) {
	query := `
		SELECT
			rq.id, rq.requester_id, e.full_name, rq.type, rq.time_off_type,
			rq.start_date, rq.end_date, rq.reason, rq.status, rq.conflicts,
			rq.created_at, rq.version
		FROM requests rq
		INNER JOIN employees e ON rq.requester_id = e.id
		ORDER BY rq.created_at DESC, rq.id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanRequests(ctx, query)
}

func (r *Repository) GetRequestsByRequester(requesterID int64) ([]*domain.Request, error) {
	query := `
		SELECT
			rq.id, rq.requester_id, e.full_name, rq.type, rq.time_off_type,
			rq.start_date, rq.end_date, rq.reason, rq.status, rq.conflicts,
			rq.created_at, rq.version
		FROM requests rq
		INNER JOIN employees e ON rq.requester_id = e.id
		WHERE rq.requester_id = $1
		ORDER BY rq.created_at DESC, rq.id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanRequests(ctx, query, requesterID)
}

// UpdateRequestConflicts 以乐观锁覆盖冲突处理状态，版本不匹配时返回 sql.ErrNoRows。
func (r *Repository) UpdateRequestConflicts(request *domain.Request) error {
	query := `
		UPDATE requests
		SET conflicts = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	conflictsJSON, err := marshalConflicts(request.Conflicts)
	if err != nil {
		return err
	}

	args := []any{conflictsJSON, request.ID, request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateRequestStatus(request *domain.Request) error {
	query := `
		UPDATE requests
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{request.Status, request.ID, request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		return err
	}

	return nil
}

// ApproveRequestWithTimeOff 在同一事务中批准请求、写入对应的缺勤记录，
// 并把冲突预约改派给各自的接手员工。请求版本不匹配时整个事务回滚，
// 不会留下只改派了一半的中间状态。
func (r *Repository) ApproveRequestWithTimeOff(request *domain.Request, entry *domain.TimeOffEntry, reassignments map[int64][]int64) error {
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
		UPDATE requests
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	args := []any{domain.RequestApproved, request.ID, request.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		return err
	}
	request.Status = domain.RequestApproved

	query = `
		INSERT INTO time_off_entries (employee_id, type, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	args = []any{entry.EmployeeID, entry.Type, entry.StartDate, entry.EndDate}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return err
	}

	query = `
		UPDATE appointments
		SET staff_id = $1, version = version + 1
		WHERE id = $2
	`
	for staffID, appointmentIDs := range reassignments {
		for _, appointmentID := range appointmentIDs {
			if _, err := tx.ExecContext(ctx, query, staffID, appointmentID); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
