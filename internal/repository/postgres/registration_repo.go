package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"eventregistration/internal/domain"
)

// tokenConstraint is the unique index backing the capability-token invariant.
const tokenConstraint = "event_registrations_token_key"

// deadlineColumns whitelists the events columns a stale predicate may reference.
var deadlineColumns = map[domain.DeadlineField]string{
	domain.DeadlineRegistrationTimeLimit: "registration_time_limit",
	domain.DeadlineConfirmTimeLimit:      "confirm_time_limit",
}

// purgeTxOptions gives a purge pass one snapshot for its select and its mutations.
var purgeTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead}

type registrationRepository struct {
	db *sql.DB // nil when bound to a transaction
	q  querier
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{db: db, q: db}
}

func NewPurgeStore(db *sql.DB) domain.PurgeStore {
	return &registrationRepository{db: db, q: db}
}

// atomic runs fn in a new transaction, or directly when the repository is already bound to one.
func (r *registrationRepository) atomic(ctx context.Context, opts *sql.TxOptions, fn func(q querier) error) error {
	if r.db == nil {
		return fn(r.q)
	}
	return inTx(ctx, r.db, opts, fn)
}

func (r *registrationRepository) Insert(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO event_registrations
			(occurrence_id, member_id, name, email, status, total_amount, total_currency, token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.atomic(ctx, nil, func(q querier) error {
		var id string
		err := q.QueryRowContext(ctx, query,
			reg.OccurrenceID, reg.MemberID, reg.Name, reg.Email, string(reg.Status),
			reg.Total.Amount, reg.Total.Currency, reg.Token, reg.CreatedAt, reg.UpdatedAt,
		).Scan(&id)
		if err != nil {
			return mapConstraintError(err)
		}
		if err := insertTickets(ctx, q, id, reg.Tickets); err != nil {
			return err
		}
		reg.ID = id
		return nil
	})
}

func insertTickets(ctx context.Context, q querier, registrationID string, tickets []domain.TicketLine) error {
	if len(tickets) == 0 {
		return nil
	}
	query := `
		INSERT INTO registration_tickets (registration_id, ticket_id, title, quantity)
		SELECT $1, t.ticket_id, t.title, t.quantity
		FROM unnest($2::text[], $3::text[], $4::int[]) AS t(ticket_id, title, quantity)
	`
	ids := lo.Map(tickets, func(t domain.TicketLine, _ int) string { return t.TicketID })
	titles := lo.Map(tickets, func(t domain.TicketLine, _ int) string { return t.Title })
	quantities := lo.Map(tickets, func(t domain.TicketLine, _ int) int64 { return int64(t.Quantity) })
	if _, err := q.ExecContext(ctx, query, registrationID, pq.Array(ids), pq.Array(titles), pq.Array(quantities)); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// mapConstraintError converts unique violations into domain constraint errors.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgerrcode.UniqueViolation {
		if pqErr.Constraint == tokenConstraint {
			return domain.ErrTokenCollision
		}
		return fmt.Errorf("%w: %s", domain.ErrConstraintViolation, pqErr.Constraint)
	}
	return err
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `
		SELECT id, occurrence_id, member_id, name, email, status, total_amount, total_currency, token, created_at, updated_at
		FROM event_registrations
		WHERE id = $1
	`
	reg, err := scanRegistration(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	tickets, err := r.listTickets(ctx, reg.ID)
	if err != nil {
		return nil, err
	}
	reg.Tickets = tickets
	return reg, nil
}

func (r *registrationRepository) List(ctx context.Context, f domain.RegistrationFilter, page domain.PaginationParams) ([]*domain.Registration, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM event_registrations
		WHERE occurrence_id = $1 AND ($2::text = '' OR status = $2)
	`
	var total int
	if err := r.q.QueryRowContext(ctx, countQuery, f.OccurrenceID, string(f.Status)).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT id, occurrence_id, member_id, name, email, status, total_amount, total_currency, token, created_at, updated_at
		FROM event_registrations
		WHERE occurrence_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.q.QueryContext(ctx, query, f.OccurrenceID, string(f.Status), page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.attachTickets(ctx, regs); err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

// attachTickets loads the ticket lines of every registration in one query.
func (r *registrationRepository) attachTickets(ctx context.Context, regs []*domain.Registration) error {
	if len(regs) == 0 {
		return nil
	}
	query := `
		SELECT registration_id, ticket_id, title, quantity
		FROM registration_tickets
		WHERE registration_id = ANY($1)
		ORDER BY registration_id, ticket_id
	`
	byID := lo.KeyBy(regs, func(reg *domain.Registration) string { return reg.ID })
	ids := lo.Map(regs, func(reg *domain.Registration, _ int) string { return reg.ID })
	rows, err := r.q.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for _, reg := range regs {
		reg.Tickets = make([]domain.TicketLine, 0)
	}
	for rows.Next() {
		var registrationID string
		var t domain.TicketLine
		if err := rows.Scan(&registrationID, &t.TicketID, &t.Title, &t.Quantity); err != nil {
			return err
		}
		if reg, ok := byID[registrationID]; ok {
			reg.Tickets = append(reg.Tickets, t)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var memberID sql.NullString
	var status string
	if err := row.Scan(
		&reg.ID, &reg.OccurrenceID, &memberID, &reg.Name, &reg.Email, &status,
		&reg.Total.Amount, &reg.Total.Currency, &reg.Token, &reg.CreatedAt, &reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	reg.Status = domain.Status(status)
	if memberID.Valid {
		reg.MemberID = &memberID.String
	}
	return reg, nil
}

func (r *registrationRepository) listTickets(ctx context.Context, registrationID string) ([]domain.TicketLine, error) {
	query := `
		SELECT ticket_id, title, quantity
		FROM registration_tickets
		WHERE registration_id = $1
		ORDER BY ticket_id
	`
	rows, err := r.q.QueryContext(ctx, query, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets := make([]domain.TicketLine, 0)
	for rows.Next() {
		var t domain.TicketLine
		if err := rows.Scan(&t.TicketID, &t.Title, &t.Quantity); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status, updatedAt time.Time) error {
	query := `
		UPDATE event_registrations SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.q.ExecContext(ctx, query, string(to), updatedAt, id, string(from))
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	// Nothing matched: either the row is gone or its status moved on.
	var current string
	err = r.q.QueryRowContext(ctx, `SELECT status FROM event_registrations WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return fmt.Errorf("%w: registration is %s", domain.ErrInvalidTransition, current)
}

func (r *registrationRepository) ReplaceTickets(ctx context.Context, id string, tickets []domain.TicketLine, total domain.Money, updatedAt time.Time) error {
	return r.atomic(ctx, nil, func(q querier) error {
		result, err := q.ExecContext(ctx, `
			UPDATE event_registrations SET total_amount = $1, total_currency = $2, updated_at = $3
			WHERE id = $4 AND status <> $5
		`, total.Amount, total.Currency, updatedAt, id, string(domain.StatusCanceled))
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM registration_tickets WHERE registration_id = $1`, id); err != nil {
			return err
		}
		return insertTickets(ctx, q, id, tickets)
	})
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	return r.atomic(ctx, nil, func(q querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM registration_tickets WHERE registration_id = $1`, id); err != nil {
			return err
		}
		result, err := q.ExecContext(ctx, `DELETE FROM event_registrations WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// FindStale evaluates the deadline with database interval arithmetic against the AsOf parameter.
func (r *registrationRepository) FindStale(ctx context.Context, p domain.StalePredicate) ([]string, error) {
	column, ok := deadlineColumns[p.Deadline]
	if !ok {
		return nil, fmt.Errorf("%w: unknown deadline field %q", domain.ErrInvalidInput, p.Deadline)
	}
	query := fmt.Sprintf(`
		SELECT r.id
		FROM event_registrations r
		JOIN event_occurrences o ON o.id = r.occurrence_id
		JOIN events e ON e.id = o.event_id
		WHERE r.status = $1
			AND e.%[1]s > 0
			AND r.created_at + make_interval(secs => e.%[1]s) < $2
		ORDER BY r.id
	`, column)
	rows, err := r.q.QueryContext(ctx, query, string(p.Status), p.AsOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *registrationRepository) BulkDelete(ctx context.Context, ids []string, status domain.Status) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int64
	err := r.atomic(ctx, purgeTxOptions, func(q querier) error {
		_, err := q.ExecContext(ctx, `
			DELETE FROM registration_tickets t
			USING event_registrations r
			WHERE t.registration_id = r.id AND r.id = ANY($1) AND r.status = $2
		`, pq.Array(ids), string(status))
		if err != nil {
			return err
		}
		result, err := q.ExecContext(ctx, `
			DELETE FROM event_registrations
			WHERE id = ANY($1) AND status = $2
		`, pq.Array(ids), string(status))
		if err != nil {
			return err
		}
		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *registrationRepository) BulkUpdateStatus(ctx context.Context, ids []string, from, to domain.Status, updatedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.q.ExecContext(ctx, `
		UPDATE event_registrations SET status = $1, updated_at = $2
		WHERE id = ANY($3) AND status = $4
	`, string(to), updatedAt, pq.Array(ids), string(from))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// InTx retries the pass once when a concurrent write to a selected row aborts the snapshot.
func (r *registrationRepository) InTx(ctx context.Context, fn func(domain.PurgeStore) error) error {
	run := func() error {
		return r.atomic(ctx, purgeTxOptions, func(q querier) error {
			return fn(&registrationRepository{q: q})
		})
	}
	err := run()
	if r.db != nil && isSerializationFailure(err) {
		err = run()
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) &&
		(pqErr.Code == pgerrcode.SerializationFailure || pqErr.Code == pgerrcode.DeadlockDetected)
}
