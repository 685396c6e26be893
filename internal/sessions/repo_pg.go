package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, s Session, questions []Question) error {
	object, err := json.Marshal(s.Object)
	if err != nil {
		return fmt.Errorf("encode object json: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const sessionQuery = `
INSERT INTO estimation_sessions (id, user_id, image_id, object_label, object_summary, object_json, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, sessionQuery, s.ID, s.UserID, s.ImageID, s.ObjectLabel, s.ObjectSummary,
		object, string(s.Status), s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	const questionQuery = `
INSERT INTO session_questions (id, session_id, seq, text, answer_type, unit, options, required)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, q := range questions {
		options, err := json.Marshal(nonNilOptions(q.Options))
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, questionQuery, q.ID, s.ID, q.Seq, q.Text, q.AnswerType, q.Unit, options, q.Required); err != nil {
			return fmt.Errorf("insert question %d: %w", q.Seq, err)
		}
	}
	return tx.Commit()
}

func (r *PGRepo) Get(ctx context.Context, userID, sessionID string) (Aggregate, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return Aggregate{}, ErrNotFound
	}
	query := `SELECT ` + sessionColumns + ` FROM estimation_sessions WHERE id = $1 AND user_id = $2`
	s, err := scanSession(r.DB.QueryRowContext(ctx, query, sessionID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Aggregate{}, ErrNotFound
	}
	if err != nil {
		return Aggregate{}, err
	}
	agg := Aggregate{Session: s}
	if agg.Questions, err = r.questions(ctx, sessionID); err != nil {
		return Aggregate{}, err
	}
	if agg.Answers, err = r.answers(ctx, sessionID); err != nil {
		return Aggregate{}, err
	}
	return agg, nil
}

func (r *PGRepo) questions(ctx context.Context, sessionID string) ([]Question, error) {
	const query = `
SELECT id, session_id, seq, text, answer_type, unit, options, required
FROM session_questions WHERE session_id = $1 ORDER BY seq`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Question, 0)
	for rows.Next() {
		var q Question
		var options []byte
		if err := rows.Scan(&q.ID, &q.SessionID, &q.Seq, &q.Text, &q.AnswerType, &q.Unit, &options, &q.Required); err != nil {
			return nil, err
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &q.Options); err != nil {
				return nil, fmt.Errorf("decode options: %w", err)
			}
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *PGRepo) answers(ctx context.Context, sessionID string) ([]Answer, error) {
	const query = `
SELECT id, session_id, question_id, value_text, value_number, value_boolean, value_json, created_at, updated_at
FROM session_answers WHERE session_id = $1 ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Answer, 0)
	for rows.Next() {
		var a Answer
		var num sql.NullFloat64
		var b sql.NullBool
		var raw []byte
		if err := rows.Scan(&a.ID, &a.SessionID, &a.QuestionID, &a.ValueText, &num, &b, &raw, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		if num.Valid {
			v := num.Float64
			a.ValueNumber = &v
		}
		if b.Valid {
			v := b.Bool
			a.ValueBoolean = &v
		}
		a.ValueJSON = json.RawMessage(raw)
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveAnswers clears the value fields not being written so a question never
// carries two typed values.
func (r *PGRepo) SaveAnswers(ctx context.Context, sessionID string, answers []Answer, status Status, at time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Locks the session row before any answer is written.
	if err := advanceStatus(ctx, tx, sessionID, status, at); err != nil {
		return err
	}

	const answerQuery = `
INSERT INTO session_answers (id, session_id, question_id, value_text, value_number, value_boolean, value_json, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (session_id, question_id) DO UPDATE SET
    value_text = EXCLUDED.value_text,
    value_number = EXCLUDED.value_number,
    value_boolean = EXCLUDED.value_boolean,
    value_json = EXCLUDED.value_json,
    updated_at = EXCLUDED.updated_at`
	for _, a := range answers {
		if _, err := tx.ExecContext(ctx, answerQuery, a.ID, sessionID, a.QuestionID, a.ValueText, nullFloat(a.ValueNumber),
			nullBool(a.ValueBoolean), jsonOrEmpty(a.ValueJSON), a.CreatedAt, a.UpdatedAt); err != nil {
			return fmt.Errorf("upsert answer %s: %w", a.QuestionID, err)
		}
	}
	return tx.Commit()
}

func (r *PGRepo) SetStatus(ctx context.Context, sessionID string, status Status, at time.Time) error {
	return advanceStatus(ctx, r.DB, sessionID, status, at)
}

type execQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const advanceStatusQuery = `
UPDATE estimation_sessions SET status = $2, updated_at = $3
WHERE id = $1 AND status NOT IN ('ESTIMATED', 'FAILED')`

// advanceStatus moves a non-terminal session to status. When nothing was
// updated it tells a missing session apart from a closed one.
func advanceStatus(ctx context.Context, q execQueryer, sessionID string, status Status, at time.Time) error {
	res, err := q.ExecContext(ctx, advanceStatusQuery, sessionID, string(status), at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM estimation_sessions WHERE id = $1)`, sessionID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrSessionClosed
}

func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter) ([]Session, error) {
	query, args := listQuery(userID, f)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func listQuery(userID string, f ListFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT ` + sessionColumns + ` FROM estimation_sessions WHERE user_id = $1`)
	args := []any{userID}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		p := next("%" + escapeLike(q) + "%")
		b.WriteString(` AND (object_label ILIKE ` + p + ` OR object_summary ILIKE ` + p + `)`)
	}
	if f.Status != "" {
		b.WriteString(` AND status = ` + next(string(f.Status)))
	}
	if f.Category != "" {
		b.WriteString(` AND object_json->>'detected_category' = ` + next(f.Category))
	}
	if f.From != nil {
		b.WriteString(` AND created_at >= ` + next(*f.From))
	}
	if f.To != nil {
		b.WriteString(` AND created_at <= ` + next(*f.To))
	}
	b.WriteString(` ORDER BY created_at DESC`)
	return b.String(), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

const sessionColumns = `id, user_id, image_id, object_label, object_summary, object_json, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var s Session
	var object []byte
	var status string
	if err := row.Scan(&s.ID, &s.UserID, &s.ImageID, &s.ObjectLabel, &s.ObjectSummary, &object, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return Session{}, err
	}
	s.Status = Status(status)
	if len(object) > 0 {
		if err := json.Unmarshal(object, &s.Object); err != nil {
			return Session{}, fmt.Errorf("decode object json: %w", err)
		}
	}
	return s, nil
}

func nonNilOptions(o []string) []string {
	if o == nil {
		return []string{}
	}
	return o
}

func jsonOrEmpty(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
