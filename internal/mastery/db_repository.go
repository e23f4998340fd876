package mastery

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/spacetimes/internal/fact"
)

const defaultRetryAttempts = 3

type learnerRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	SoundOn   bool      `db:"sound_on"`
	CreatedAt time.Time `db:"created_at"`
}

type factMasteryRow struct {
	A      int `db:"a"`
	B      int `db:"b"`
	Streak int `db:"streak"`
	Misses int `db:"misses"`
}

type sessionRow struct {
	ID                string    `db:"id"`
	Seq               int       `db:"seq"`
	FinishedAt        time.Time `db:"finished_at"`
	Mode              string    `db:"mode"`
	Tables            string    `db:"tables"`
	Asked             int       `db:"asked"`
	Correct           int       `db:"correct"`
	Incorrect         int       `db:"incorrect"`
	Accuracy          float64   `db:"accuracy"`
	TargetSuccessRate float64   `db:"target_success_rate"`
}

type attemptRow struct {
	SessionID       string          `db:"session_id"`
	A               int             `db:"a"`
	B               int             `db:"b"`
	SubmittedAnswer sql.NullFloat64 `db:"submitted_answer"`
	CorrectAnswer   int             `db:"correct_answer"`
	Result          string          `db:"result"`
	DurationMs      int64           `db:"duration_ms"`
	HintUsed        bool            `db:"hint_used"`
}

// DBStore implements Store on top of MySQL or SQLite
type DBStore struct {
	db            *sqlx.DB
	retryAttempts uint
	retryDelay    time.Duration
}

type DBStoreOption func(*DBStore)

// WithRetry sets how many times a transient failure is attempted and the initial backoff
func WithRetry(attempts uint, delay time.Duration) DBStoreOption {
	return func(s *DBStore) {
		s.retryAttempts = attempts
		s.retryDelay = delay
	}
}

func NewDBStore(db *sqlx.DB, opts ...DBStoreOption) *DBStore {
	s := &DBStore{
		db:            db,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, ErrLearnerNotFound) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "database is locked")
}

func (s *DBStore) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(s.retryAttempts),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
	)
}

func (s *DBStore) Get(ctx context.Context, learnerID string) (*Record, error) {
	var record *Record
	err := s.withRetry(ctx, func() error {
		r, err := s.get(ctx, learnerID)
		if err != nil {
			return err
		}
		record = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *DBStore) get(ctx context.Context, learnerID string) (*Record, error) {
	var learner learnerRow
	err := s.db.GetContext(ctx, &learner,
		"SELECT id, name, sound_on, created_at FROM learners WHERE id = ?", learnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", learnerID, ErrLearnerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(learners) > %w", err)
	}

	record := NewRecord(learner.ID, learner.Name, learner.CreatedAt)
	record.Settings.SoundOn = learner.SoundOn

	var facts []factMasteryRow
	if err := s.db.SelectContext(ctx, &facts,
		"SELECT a, b, streak, misses FROM fact_mastery WHERE learner_id = ?", learnerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(fact_mastery) > %w", err)
	}
	for _, row := range facts {
		record.Facts[fact.New(row.A, row.B).Key()] = FactMastery{Streak: row.Streak, Misses: row.Misses}
	}

	var sessions []sessionRow
	if err := s.db.SelectContext(ctx, &sessions,
		`SELECT id, seq, finished_at, mode, tables, asked, correct, incorrect, accuracy, target_success_rate
		FROM session_records WHERE learner_id = ? ORDER BY seq`, learnerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(session_records) > %w", err)
	}
	if len(sessions) == 0 {
		return record, nil
	}

	var attempts []attemptRow
	if err := s.db.SelectContext(ctx, &attempts,
		`SELECT session_id, a, b, submitted_answer, correct_answer, result, duration_ms, hint_used
		FROM session_attempts WHERE learner_id = ? ORDER BY session_id, seq`, learnerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(session_attempts) > %w", err)
	}
	attemptsBySession := make(map[string][]Attempt)
	for _, row := range attempts {
		attempt := Attempt{
			Fact:          fact.New(row.A, row.B),
			CorrectAnswer: row.CorrectAnswer,
			Result:        Result(row.Result),
			DurationMs:    row.DurationMs,
			HintUsed:      row.HintUsed,
		}
		if row.SubmittedAnswer.Valid {
			value := row.SubmittedAnswer.Float64
			attempt.SubmittedAnswer = &value
		}
		attemptsBySession[row.SessionID] = append(attemptsBySession[row.SessionID], attempt)
	}

	for _, row := range sessions {
		tables, err := parseTables(row.Tables)
		if err != nil {
			return nil, fmt.Errorf("parseTables(%s) > %w", row.Tables, err)
		}
		record.Sessions = append(record.Sessions, SessionRecord{
			ID:                row.ID,
			FinishedAt:        row.FinishedAt,
			Mode:              Mode(row.Mode),
			Tables:            tables,
			Asked:             row.Asked,
			Correct:           row.Correct,
			Incorrect:         row.Incorrect,
			Accuracy:          row.Accuracy,
			TargetSuccessRate: row.TargetSuccessRate,
			Attempts:          attemptsBySession[row.ID],
		})
	}
	return record, nil
}

// Put replaces everything stored for the learner in a single transaction
func (s *DBStore) Put(ctx context.Context, learnerID string, record *Record) error {
	return s.withRetry(ctx, func() error {
		return s.put(ctx, learnerID, record)
	})
}

func (s *DBStore) put(ctx context.Context, learnerID string, record *Record) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"session_attempts", "session_records", "fact_mastery"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE learner_id = ?", learnerID); err != nil {
			return fmt.Errorf("tx.ExecContext(delete %s) > %w", table, err)
		}
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM learners WHERE id = ?", learnerID); err != nil {
		return fmt.Errorf("tx.ExecContext(delete learners) > %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO learners (id, name, sound_on, created_at) VALUES (?, ?, ?, ?)",
		learnerID, record.Name, record.Settings.SoundOn, record.CreatedAt); err != nil {
		return fmt.Errorf("tx.ExecContext(insert learners) > %w", err)
	}

	keys := make([]string, 0, len(record.Facts))
	for key := range record.Facts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		m := record.Facts[key]
		f, parseErr := fact.ParseKey(key)
		if parseErr != nil {
			err = parseErr
			return fmt.Errorf("fact.ParseKey(%s) > %w", key, err)
		}
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO fact_mastery (learner_id, a, b, streak, misses) VALUES (?, ?, ?, ?, ?)",
			learnerID, f.A, f.B, m.Streak, m.Misses); err != nil {
			return fmt.Errorf("tx.ExecContext(insert fact_mastery) > %w", err)
		}
	}

	for i, session := range record.Sessions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO session_records (id, learner_id, seq, finished_at, mode, tables, asked, correct, incorrect, accuracy, target_success_rate)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, learnerID, i, session.FinishedAt, string(session.Mode), formatTables(session.Tables),
			session.Asked, session.Correct, session.Incorrect, session.Accuracy, session.TargetSuccessRate); err != nil {
			return fmt.Errorf("tx.ExecContext(insert session_records) > %w", err)
		}
		for j, attempt := range session.Attempts {
			var submitted sql.NullFloat64
			if attempt.SubmittedAnswer != nil {
				submitted = sql.NullFloat64{Float64: *attempt.SubmittedAnswer, Valid: true}
			}
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO session_attempts (session_id, learner_id, seq, a, b, submitted_answer, correct_answer, result, duration_ms, hint_used)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				session.ID, learnerID, j, attempt.Fact.A, attempt.Fact.B, submitted,
				attempt.CorrectAnswer, string(attempt.Result), attempt.DurationMs, attempt.HintUsed); err != nil {
				return fmt.Errorf("tx.ExecContext(insert session_attempts) > %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// List returns every learner without facts or sessions, sorted by name
func (s *DBStore) List(ctx context.Context) ([]Record, error) {
	var rows []learnerRow
	err := s.withRetry(ctx, func() error {
		rows = nil
		return s.db.SelectContext(ctx, &rows,
			"SELECT id, name, sound_on, created_at FROM learners ORDER BY name")
	})
	if err != nil {
		return nil, fmt.Errorf("db.SelectContext(learners) > %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record := NewRecord(row.ID, row.Name, row.CreatedAt)
		record.Settings.SoundOn = row.SoundOn
		records = append(records, *record)
	}
	return records, nil
}

func formatTables(tables []int) string {
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		parts = append(parts, strconv.Itoa(t))
	}
	return strings.Join(parts, ",")
}

func parseTables(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	var tables []int
	for _, part := range strings.Split(value, ",") {
		t, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("strconv.Atoi(%s) > %w", part, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}
