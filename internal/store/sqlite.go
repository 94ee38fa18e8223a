package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/pkg/errors"
)

const entryColumns = "id, question, normalized_question, answer, feedback, thumbs_up, thumbs_down, category, count, timestamp"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	// SQLite allows one writer at a time; a single pooled connection avoids
	// SQLITE_BUSY errors under concurrent requests.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize schema")
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	// The unique index on normalized_question backs the atomic upserts:
	// two concurrent first-time submissions of the same question converge
	// on a single row instead of inserting duplicates.
	schema := `
    CREATE TABLE IF NOT EXISTS chat_entries (
        id TEXT PRIMARY KEY, -- UUID
        question TEXT NOT NULL,
        normalized_question TEXT NOT NULL UNIQUE,
        answer TEXT NOT NULL,
        feedback TEXT NOT NULL DEFAULT 'neutral' CHECK (feedback IN ('thumbsUp', 'thumbsDown', 'neutral')),
        thumbs_up INTEGER NOT NULL DEFAULT 0,
        thumbs_down INTEGER NOT NULL DEFAULT 0,
        category TEXT NOT NULL DEFAULT 'other',
        count INTEGER NOT NULL DEFAULT 0,
        timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

func scanEntry(row interface{ Scan(...any) error }) (*ChatEntry, error) {
	var entry ChatEntry
	err := row.Scan(&entry.ID, &entry.Question, &entry.NormalizedQuestion, &entry.Answer,
		&entry.Feedback, &entry.ThumbsUp, &entry.ThumbsDown, &entry.Category, &entry.Count, &entry.Timestamp)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetEntryByNormalizedQuestion returns the cached entry for a dedup key, or
// nil when the question has never been answered.
func (s *SQLiteStore) GetEntryByNormalizedQuestion(normalized string) (*ChatEntry, error) {
	row := s.db.QueryRow("SELECT "+entryColumns+" FROM chat_entries WHERE normalized_question = ?", normalized)
	entry, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query entry by normalized question")
	}
	return entry, nil
}

func (s *SQLiteStore) GetEntryByID(id string) (*ChatEntry, error) {
	row := s.db.QueryRow("SELECT "+entryColumns+" FROM chat_entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query entry by id")
	}
	return entry, nil
}

// RecordHit bumps the usage counter of an existing entry.
func (s *SQLiteStore) RecordHit(id string) error {
	res, err := s.db.Exec("UPDATE chat_entries SET count = count + 1 WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(err, "failed to record cache hit")
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.Errorf("entry %s vanished before hit could be recorded", id)
	}
	return nil
}

// UpsertQuestionAnswer caches a freshly answered question. If another
// request inserted the same normalized question in the meantime, the losing
// insert turns into a count increment on the winner's row, which is then
// returned unchanged otherwise.
func (s *SQLiteStore) UpsertQuestionAnswer(question, normalized, answer string) (*ChatEntry, error) {
	row := s.db.QueryRow(`
        INSERT INTO chat_entries (id, question, normalized_question, answer, feedback, category, count, timestamp)
        VALUES (?, ?, ?, ?, 'neutral', 'other', 1, ?)
        ON CONFLICT(normalized_question) DO UPDATE SET count = count + 1
        RETURNING `+entryColumns,
		uuid.NewString(), question, normalized, answer, time.Now())
	entry, err := scanEntry(row)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert question answer")
	}
	return entry, nil
}

// UpsertChat saves a client-reported chat interaction. A new normalized
// question inserts a full entry with count 1 and the feedback label as
// given; an existing one keeps its question, answer, feedback label and
// count, gets its category overwritten, and has the matching feedback tally
// bumped. The second return value reports whether a new entry was created.
func (s *SQLiteStore) UpsertChat(question, normalized, answer, category, feedback string) (*ChatEntry, bool, error) {
	newID := uuid.NewString()
	row := s.db.QueryRow(`
        INSERT INTO chat_entries (id, question, normalized_question, answer, feedback, category, count, timestamp)
        VALUES (?, ?, ?, ?, ?, ?, 1, ?)
        ON CONFLICT(normalized_question) DO UPDATE SET
            category = excluded.category,
            thumbs_up = thumbs_up + (CASE WHEN excluded.feedback = 'thumbsUp' THEN 1 ELSE 0 END),
            thumbs_down = thumbs_down + (CASE WHEN excluded.feedback = 'thumbsDown' THEN 1 ELSE 0 END)
        RETURNING `+entryColumns,
		newID, question, normalized, answer, feedback, category, time.Now())
	entry, err := scanEntry(row)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to upsert chat")
	}
	return entry, entry.ID == newID, nil
}

// GetTopByCategory returns the highest-voted entries, filtered to an exact
// category when one is given.
func (s *SQLiteStore) GetTopByCategory(category string, limit int) ([]ChatEntry, error) {
	query := "SELECT " + entryColumns + " FROM chat_entries"
	args := []any{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY thumbs_up DESC, normalized_question ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query top entries")
	}
	defer rows.Close()

	entries := []ChatEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan entry row")
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// GetFAQGroups groups entries by normalized question and ranks the groups
// by summed usage count. otherOnly selects the uncategorized side of the
// aggregate FAQ view; its complement selects every named category.
func (s *SQLiteStore) GetFAQGroups(otherOnly bool, limit int) ([]FAQGroup, error) {
	comparison := "!="
	if otherOnly {
		comparison = "="
	}
	rows, err := s.db.Query(`
        SELECT normalized_question, SUM(count) AS total, question, answer, category
        FROM chat_entries
        WHERE category `+comparison+` 'other'
        GROUP BY normalized_question
        ORDER BY total DESC, normalized_question ASC
        LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query faq groups")
	}
	defer rows.Close()

	groups := []FAQGroup{}
	for rows.Next() {
		var g FAQGroup
		if err := rows.Scan(&g.NormalizedQuestion, &g.Count, &g.Question, &g.Answer, &g.Category); err != nil {
			return nil, errors.Wrap(err, "failed to scan faq group row")
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ApplyFeedback sets the feedback label and bumps the matching tally in one
// statement. Labels other than thumbsUp/thumbsDown reset to neutral without
// touching the tallies. Returns nil when no entry has the given id.
func (s *SQLiteStore) ApplyFeedback(id, feedback string) (*ChatEntry, error) {
	row := s.db.QueryRow(`
        UPDATE chat_entries SET
            feedback = CASE ? WHEN 'thumbsUp' THEN 'thumbsUp' WHEN 'thumbsDown' THEN 'thumbsDown' ELSE 'neutral' END,
            thumbs_up = thumbs_up + (CASE ? WHEN 'thumbsUp' THEN 1 ELSE 0 END),
            thumbs_down = thumbs_down + (CASE ? WHEN 'thumbsDown' THEN 1 ELSE 0 END)
        WHERE id = ?
        RETURNING `+entryColumns,
		feedback, feedback, feedback, id)
	entry, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to apply feedback")
	}
	return entry, nil
}
