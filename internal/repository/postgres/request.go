package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
	"eventreg-request-service/internal/repository"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const (
	insertRequestQuery = `INSERT INTO requests (id, requester_id, event_id, created, status)
	                      VALUES ($1, $2, $3, $4, $5)`
	countRequestsQuery = `SELECT count(*) FROM requests WHERE event_id = $1 AND status = $2`
	lockEventQuery     = `SELECT pg_advisory_xact_lock($1)`
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	_, err := r.db.ExecContext(ctx, insertRequestQuery, req.ID, req.RequesterID, req.EventID, req.CreatedAt, string(req.Status))
	return translateInsertError(err)
}

// CreateWithinLimit serialises confirmations per event with a transaction
// scoped advisory lock, so the count it reads cannot change before the insert.
func (r *requestRepository) CreateWithinLimit(ctx context.Context, req *domain.Request, limit int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, lockEventQuery, req.EventID); err != nil {
		return err
	}

	var confirmed int64
	if err := tx.QueryRowContext(ctx, countRequestsQuery, req.EventID, string(domain.RequestStatusConfirmed)).Scan(&confirmed); err != nil {
		return err
	}
	if confirmed >= int64(limit) {
		return repository.ErrLimitReached
	}

	if _, err := tx.ExecContext(ctx, insertRequestQuery, req.ID, req.RequesterID, req.EventID, req.CreatedAt, string(req.Status)); err != nil {
		return translateInsertError(err)
	}

	return tx.Commit()
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	query := `SELECT id, requester_id, event_id, created, status FROM requests WHERE id = $1`
	req := &domain.Request{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.RequesterID, &req.EventID, &req.CreatedAt, &req.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("Request", id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// GetByIDs returns the requests that exist among ids, in no particular order.
func (r *requestRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Request, error) {
	query := `SELECT id, requester_id, event_id, created, status FROM requests WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	query := `UPDATE requests SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFound("Request", id)
	}
	return nil
}

func (r *requestRepository) ApplyBatch(ctx context.Context, eventID int64, reqs []domain.Request, limit int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, lockEventQuery, eventID); err != nil {
		return err
	}

	query := `UPDATE requests SET status = $1 WHERE id = $2 AND event_id = $3 AND status = $4`
	var total int64
	for _, req := range reqs {
		res, err := tx.ExecContext(ctx, query, string(req.Status), req.ID, eventID, string(domain.RequestStatusPending))
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 1 {
			return repository.ErrStaleStatus
		}
		total += n
	}

	if limit > 0 {
		var confirmed int64
		if err := tx.QueryRowContext(ctx, countRequestsQuery, eventID, string(domain.RequestStatusConfirmed)).Scan(&confirmed); err != nil {
			return err
		}
		if confirmed > int64(limit) {
			return repository.ErrLimitReached
		}
	}

	err = tx.Commit()
	logger.DatabaseResult("ApplyBatch", total, err, "event_id", eventID)
	return err
}

func (r *requestRepository) ExistsActive(ctx context.Context, requesterID, eventID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM requests WHERE requester_id = $1 AND event_id = $2 AND status <> $3)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, requesterID, eventID, string(domain.RequestStatusCanceled)).Scan(&exists)
	return exists, err
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.Request, error) {
	query := `SELECT id, requester_id, event_id, created, status FROM requests WHERE requester_id = $1 ORDER BY created`
	return r.list(ctx, query, requesterID)
}

func (r *requestRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Request, error) {
	query := `SELECT id, requester_id, event_id, created, status FROM requests WHERE event_id = $1 ORDER BY created`
	return r.list(ctx, query, eventID)
}

func (r *requestRepository) CountByEventAndStatus(ctx context.Context, eventID int64, status domain.RequestStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, countRequestsQuery, eventID, string(status)).Scan(&count)
	return count, err
}

func (r *requestRepository) list(ctx context.Context, query string, args ...any) ([]domain.Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := []domain.Request{}
	for rows.Next() {
		var req domain.Request
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.EventID, &req.CreatedAt, &req.Status); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func translateInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrDuplicateRequest
	}
	return err
}
