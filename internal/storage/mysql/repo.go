package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"ashoka_frontdesk/internal/domain"
)

func valDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(domain.DateLayout)
}

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valJSONList(xs []string) string {
	if xs == nil {
		xs = []string{}
	}
	b, _ := json.Marshal(xs)
	return string(b)
}

// Repo is the MySQL submission journal.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Record(ctx context.Context, s domain.Submission) error {
	_, err := r.db.ExecContext(ctx, insertSubmissionSQL,
		s.ID,
		s.IdempotencyKey,
		s.GuestName,
		valDate(s.CheckIn),
		valDate(s.CheckOut),
		valJSONList(s.RoomNumbers),
		s.GrandTotal,
		s.TotalAdvance,
		s.BalanceDue,
		string(s.Outcome),
		valJSONList(s.InvoiceNumbers),
		valStr(s.Error),
		s.CreatedAt.UTC(),
	)
	return err
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, recentSubmissionsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Submission{}
	for rows.Next() {
		var (
			s                 domain.Submission
			checkIn, checkOut sql.NullTime
			roomsRaw, invRaw  []byte
			outcome           string
			errText           sql.NullString
		)
		if err := rows.Scan(
			&s.ID,
			&s.IdempotencyKey,
			&s.GuestName,
			&checkIn,
			&checkOut,
			&roomsRaw,
			&s.GrandTotal,
			&s.TotalAdvance,
			&s.BalanceDue,
			&outcome,
			&invRaw,
			&errText,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		if checkIn.Valid {
			s.CheckIn = checkIn.Time
		}
		if checkOut.Valid {
			s.CheckOut = checkOut.Time
		}
		s.Outcome = domain.Outcome(outcome)
		_ = json.Unmarshal(roomsRaw, &s.RoomNumbers)
		_ = json.Unmarshal(invRaw, &s.InvoiceNumbers)
		if errText.Valid {
			s.Error = errText.String
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping backs the journal entry of /healthz.
func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }
