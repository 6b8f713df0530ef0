package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"taskassistant/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindByUser(ctx context.Context, userID string) ([]models.Task, error)
	// Update rewrites the whole task row, subtasks included.
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, deadline, priority, completed,
       subtasks, emotional_support, created_at, updated_at`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	subtasks, err := encodeSubtasks(task.Subtasks)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err = r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Deadline, task.Priority, task.Completed,
		subtasks, task.EmotionalSupport, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (r *taskRepository) FindByUser(ctx context.Context, userID string) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	subtasks, err := encodeSubtasks(task.Subtasks)
	if err != nil {
		return err
	}
	query := `
		UPDATE tasks SET
			title=$1, description=$2, deadline=$3, priority=$4, completed=$5,
			subtasks=$6, emotional_support=$7, updated_at=$8
		WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Deadline, task.Priority, task.Completed,
		subtasks, task.EmotionalSupport, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return expectOneRow(res)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t        models.Task
		desc     sql.NullString
		deadline sql.NullTime
		support  sql.NullString
		subtasks []byte
	)
	if err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &desc, &deadline, &t.Priority, &t.Completed,
		&subtasks, &support, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if desc.Valid {
		s := desc.String
		t.Description = &s
	}
	if deadline.Valid {
		d := deadline.Time.UTC()
		t.Deadline = &d
	}
	if support.Valid {
		s := support.String
		t.EmotionalSupport = &s
	}
	t.Subtasks = []models.Subtask{}
	if len(subtasks) > 0 {
		if err := json.Unmarshal(subtasks, &t.Subtasks); err != nil {
			return nil, fmt.Errorf("decode subtasks of %s: %w", t.ID, err)
		}
	}
	return &t, nil
}

// encodeSubtasks returns a string so lib/pq sends JSON text, not bytea.
func encodeSubtasks(subtasks []models.Subtask) (string, error) {
	if subtasks == nil {
		subtasks = []models.Subtask{}
	}
	b, err := json.Marshal(subtasks)
	if err != nil {
		return "", fmt.Errorf("encode subtasks: %w", err)
	}
	return string(b), nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
