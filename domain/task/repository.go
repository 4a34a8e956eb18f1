package task

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository provides database operations for task records. The *gorm.DB
// session is supplied by the caller, which owns its lifecycle.
//
// Absence of a record is signaled with a nil record and a nil error, never
// with an error value.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new task record and commits it. ErrDuplicateID is
// returned when a record with the same task_id already exists; create is
// not an upsert.
func (r *Repository) Create(ctx context.Context, rec *TaskRecord) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&TaskRecord{}).
		Where("task_id = ?", rec.TaskID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check task id: %w", err)
	}
	if count > 0 {
		return ErrDuplicateID
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task record by its task_id.
func (r *Repository) GetByID(ctx context.Context, id uint) (*TaskRecord, error) {
	var rec TaskRecord
	if err := r.db.WithContext(ctx).First(&rec, "task_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &rec, nil
}

// List returns task records in creation order, offset by skip and bounded
// to limit items. A limit of zero yields an empty result.
func (r *Repository) List(ctx context.Context, skip, limit int) ([]TaskRecord, error) {
	var recs []TaskRecord
	err := r.db.WithContext(ctx).
		Order("created_at ASC, task_id ASC").
		Offset(skip).
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return recs, nil
}

// Update overwrites every mutable field of the record with the given id
// and returns the post-commit state. task_id and created_at are immutable.
func (r *Repository) Update(ctx context.Context, id uint, rec *TaskRecord) (*TaskRecord, error) {
	result := r.db.WithContext(ctx).Model(&TaskRecord{}).
		Where("task_id = ?", id).
		Updates(map[string]any{
			"task_name":      rec.TaskName,
			"description":    rec.Description,
			"status":         rec.Status,
			"due_date":       rec.DueDate,
			"duration":       rec.Duration,
			"priority":       rec.Priority,
			"labels":         rec.Labels,
			"extra_metadata": rec.ExtraMetadata,
			"participants":   rec.Participants,
			"is_urgent":      rec.IsUrgent,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes the record with the given id and returns its last state
// before removal.
func (r *Repository) Delete(ctx context.Context, id uint) (*TaskRecord, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	if err := r.db.WithContext(ctx).Delete(&TaskRecord{}, "task_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return rec, nil
}

// Migrate runs database migrations for the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&TaskRecord{})
}
