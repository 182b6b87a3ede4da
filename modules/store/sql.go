package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/taskflow/domain/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQLGateway implements Gateway on a relational database via GORM.
type SQLGateway struct {
	db *gorm.DB
}

// NewSQLGateway creates a new SQL-backed gateway.
func NewSQLGateway(db *gorm.DB) *SQLGateway {
	return &SQLGateway{db: db}
}

// Migrate runs database migrations for the tasks table.
func (g *SQLGateway) Migrate() error {
	return g.db.AutoMigrate(&task.Task{})
}

// List returns all of the owner's tasks, newest-created first.
func (g *SQLGateway) List(ctx context.Context, owner string) ([]task.Task, error) {
	var tasks []task.Task
	err := g.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	return tasks, nil
}

// Create inserts a validated payload and assigns the task its id.
func (g *SQLGateway) Create(ctx context.Context, owner string, fields task.Validated) (*task.Task, error) {
	t := task.Task{
		ID:          uuid.NewString(),
		Owner:       owner,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
	}
	if err := g.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, storeErr("create task", err)
	}
	return &t, nil
}

// Update overwrites the mutable fields of the owner's task.
func (g *SQLGateway) Update(ctx context.Context, owner, id string, fields task.Validated) (*task.Task, error) {
	// A map is used so a nil description clears the column.
	res := g.db.WithContext(ctx).
		Model(&task.Task{}).
		Where("id = ? AND owner = ?", id, owner).
		Updates(map[string]any{
			"title":       fields.Title,
			"description": fields.Description,
			"status":      fields.Status,
			"priority":    fields.Priority,
		})
	if res.Error != nil {
		return nil, storeErr("update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, task.ErrNotFound
	}

	var t task.Task
	err := g.db.WithContext(ctx).
		First(&t, "id = ? AND owner = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, task.ErrNotFound
		}
		return nil, storeErr("reload task", err)
	}
	return &t, nil
}

// Delete removes the owner's task. A vanished record is surfaced as
// task.ErrNotFound rather than treated as a silent no-op.
func (g *SQLGateway) Delete(ctx context.Context, owner, id string) error {
	res := g.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		Delete(&task.Task{})
	if res.Error != nil {
		return storeErr("delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return task.ErrNotFound
	}
	return nil
}

// storeErr maps a database failure onto the store-unavailable taxonomy
// while keeping the underlying cause in the chain.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, task.ErrStoreUnavailable, err)
}
