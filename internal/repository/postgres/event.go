package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT id, initiator_id, participant_limit, request_moderation, state, published_on FROM events WHERE id = $1`
	e := &domain.Event{}
	var publishedOn sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.InitiatorID, &e.ParticipantLimit, &e.RequestModeration, &e.State, &publishedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("Event", id)
	}
	if err != nil {
		return nil, err
	}
	if publishedOn.Valid {
		e.PublishedOn = &publishedOn.Time
	}
	return e, nil
}

func (r *eventRepository) UpdateState(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET state = $1, published_on = $2 WHERE id = $3`
	var publishedOn sql.NullTime
	if e.PublishedOn != nil {
		publishedOn = sql.NullTime{Time: *e.PublishedOn, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, query, string(e.State), publishedOn, e.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFound("Event", e.ID)
	}
	return nil
}

// ListOverbooked returns limited events whose confirmed requests exceed the limit.
func (r *eventRepository) ListOverbooked(ctx context.Context) ([]domain.OverbookedEvent, error) {
	query := `SELECT e.id, e.participant_limit, count(r.id)
	          FROM events e
	          JOIN requests r ON r.event_id = e.id AND r.status = $1
	          WHERE e.participant_limit > 0
	          GROUP BY e.id, e.participant_limit
	          HAVING count(r.id) > e.participant_limit
	          ORDER BY e.id`
	rows, err := r.db.QueryContext(ctx, query, string(domain.RequestStatusConfirmed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.OverbookedEvent
	for rows.Next() {
		var e domain.OverbookedEvent
		if err := rows.Scan(&e.EventID, &e.ParticipantLimit, &e.ConfirmedCount); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
