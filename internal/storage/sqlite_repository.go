package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveTasks replaces the stored list with tasks in a single transaction.
func (r *SQLiteRepository) SaveTasks(ctx context.Context, tasks []Task) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tasks: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, text, completed, position, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert task: %w", err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		if _, err = stmt.ExecContext(ctx, task.ID, task.Text, boolInt(task.Completed), i, mustTime(task.CreatedAt)); err != nil {
			return fmt.Errorf("insert task %s: %w", task.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save tasks: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, completed, position, created_at
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, text, completed, position, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) AppendMessage(ctx context.Context, in Message) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (sender, text, has_list, created_at)
		VALUES (?, ?, ?, ?)`,
		in.Sender, in.Text, boolInt(in.HasListMarkup), mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListMessages returns messages oldest first.
func (r *SQLiteRepository) ListMessages(ctx context.Context, filter MessageListFilter) ([]Message, error) {
	query := `SELECT id, sender, text, has_list, created_at FROM chat_messages ORDER BY id ASC`
	args := make([]any, 0, 1)
	if filter.Limit > 0 {
		query = `SELECT id, sender, text, has_list, created_at FROM (
			SELECT id, sender, text, has_list, created_at FROM chat_messages ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		msg, scanErr := scanMessage(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ClearMessages(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.Text, &completed, &out.Position, &created); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanMessage(s scanner) (Message, error) {
	var out Message
	var hasList int
	var created string
	if err := s.Scan(&out.ID, &out.Sender, &out.Text, &hasList, &created); err != nil {
		return Message{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Message{}, err
	}
	out.HasListMarkup = hasList == 1
	out.CreatedAt = createdAt
	return out, nil
}
