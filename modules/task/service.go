package task

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	taskdomain "github.com/example/task-service/domain/task"
	"github.com/example/task-service/events"
	"github.com/example/task-service/modules/cache"
	"github.com/go-monolith/mono"
	"golang.org/x/sync/singleflight"
)

// Service exposes the task store operations over a repository, with an
// optional cache-aside layer and best-effort domain events. Inputs are
// expected to have passed Task.Validate; the service does not re-validate.
type Service struct {
	repo     *taskdomain.Repository
	cache    *cache.Cache
	eventBus mono.EventBus
	sfGroup  singleflight.Group
}

// NewService creates a task service over the given repository.
func NewService(repo *taskdomain.Repository) *Service {
	return &Service{repo: repo}
}

// SetCache wires the cache layer. The service works without one, going
// straight to the database.
func (s *Service) SetCache(c *cache.Cache) {
	s.cache = c
}

// SetEventBus wires the event bus for domain event publishing.
func (s *Service) SetEventBus(bus mono.EventBus) {
	s.eventBus = bus
}

func cacheKeyByID(id uint) string {
	return "id:" + strconv.FormatUint(uint64(id), 10)
}

func cacheKeyList(skip, limit int) string {
	return fmt.Sprintf("list:%d:%d", skip, limit)
}

// Create stores a validated task as a new record, stamping created_at with
// the current time. taskdomain.ErrDuplicateID is returned when the task_id
// is already taken.
func (s *Service) Create(ctx context.Context, t *taskdomain.Task) (*taskdomain.TaskRecord, error) {
	rec := taskdomain.NewRecord(t, time.Now())

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	if s.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    rec.TaskID,
			TaskName:  rec.TaskName,
			DueDate:   rec.DueDate,
			CreatedAt: rec.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %d: %v", rec.TaskID, err)
		}
	}

	return rec, nil
}

// GetByID retrieves a task record. A nil record with a nil error signals
// absence. Cache misses are resolved through singleflight so concurrent
// misses for one id produce a single database query.
func (s *Service) GetByID(ctx context.Context, id uint) (*taskdomain.TaskRecord, error) {
	if s.cache != nil {
		var cached taskdomain.TaskRecord
		found, err := s.cache.Get(ctx, cacheKeyByID(id), &cached)
		if err != nil {
			log.Printf("[task] Cache error for id=%d: %v", id, err)
		}
		if found {
			return &cached, nil
		}
	}

	val, err, _ := s.sfGroup.Do(cacheKeyByID(id), func() (any, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	rec, ok := val.(*taskdomain.TaskRecord)
	if !ok || rec == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyByID(id), rec); err != nil {
			log.Printf("[task] Warning: failed to cache task %d: %v", id, err)
		}
	}

	return rec, nil
}

// List returns task records in creation order, offset by skip and bounded
// to limit items.
func (s *Service) List(ctx context.Context, skip, limit int) ([]taskdomain.TaskRecord, error) {
	key := cacheKeyList(skip, limit)

	if s.cache != nil {
		var cached []taskdomain.TaskRecord
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[task] Cache error for list: %v", err)
		}
		if found {
			return cached, nil
		}
	}

	recs, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, recs); err != nil {
			log.Printf("[task] Warning: failed to cache list: %v", err)
		}
	}

	return recs, nil
}

// Update overwrites every mutable field of the record with the given id
// from the validated task. created_at and task_id are left untouched. A
// nil record signals that no record with that id exists; nothing is
// created in that case.
func (s *Service) Update(ctx context.Context, id uint, t *taskdomain.Task) (*taskdomain.TaskRecord, error) {
	rec, err := s.repo.Update(ctx, id, taskdomain.NewRecord(t, time.Time{}))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	s.invalidateCache(ctx)

	if s.eventBus != nil {
		event := events.TaskUpdatedEvent{
			TaskID:    rec.TaskID,
			TaskName:  rec.TaskName,
			UpdatedAt: time.Now(),
		}
		if err := events.TaskUpdatedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskUpdated event for task %d: %v", rec.TaskID, err)
		}
	}

	return rec, nil
}

// Delete removes the record with the given id and returns its last state.
// A nil record signals absence.
func (s *Service) Delete(ctx context.Context, id uint) (*taskdomain.TaskRecord, error) {
	rec, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	s.invalidateCache(ctx)

	if s.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    rec.TaskID,
			TaskName:  rec.TaskName,
			DeletedAt: time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %d: %v", rec.TaskID, err)
		}
	}

	return rec, nil
}

// invalidateCache drops every cached task entry after a mutation. Cache
// failures never fail the operation.
func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Printf("[task] Warning: failed to invalidate cache: %v", err)
	}
}
