package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/pagepulse/pagepulse/domain/rag"
	"github.com/pagepulse/pagepulse/internal/database"
)

// PostStore implements rag.PostStore using GORM.
type PostStore struct {
	database.Repository[rag.Post, PostModel]
}

// NewPostStore creates a new PostStore.
func NewPostStore(db database.Database) PostStore {
	return PostStore{
		Repository: database.NewRepository[rag.Post, PostModel](db, PostMapper{}, "post"),
	}
}

var _ rag.PostStore = PostStore{}

// PublishedSince returns posts published after the given time, newest first.
func (s PostStore) PublishedSince(ctx context.Context, since time.Time, limit int) ([]rag.Post, error) {
	var models []PostModel
	result := s.DB(ctx).Model(&PostModel{}).
		Where("published_at >= ?", since).
		Order("published_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find posts: %w", result.Error)
	}

	posts := make([]rag.Post, len(models))
	for i, m := range models {
		posts[i] = s.Mapper().ToDomain(m)
	}
	return posts, nil
}

// Save upserts a post keyed by its platform ID, so repeated page syncs
// refresh engagement counts in place.
func (s PostStore) Save(ctx context.Context, post rag.Post) (rag.Post, error) {
	model := s.Mapper().ToModel(post)
	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "content", "likes", "comments", "shares", "published_at", "updated_at",
		}),
	}).Create(&model)
	if result.Error != nil {
		return rag.Post{}, fmt.Errorf("save post: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// ResponseStore implements rag.ResponseStore using GORM.
type ResponseStore struct {
	database.Repository[rag.Response, ResponseModel]
}

// NewResponseStore creates a new ResponseStore.
func NewResponseStore(db database.Database) ResponseStore {
	return ResponseStore{
		Repository: database.NewRepository[rag.Response, ResponseModel](db, ResponseMapper{}, "curated response"),
	}
}

var _ rag.ResponseStore = ResponseStore{}

// Active returns all responses available for retrieval.
func (s ResponseStore) Active(ctx context.Context) ([]rag.Response, error) {
	return s.Find(ctx, withActive())
}

// Save creates or updates a curated response.
func (s ResponseStore) Save(ctx context.Context, response rag.Response) (rag.Response, error) {
	model := s.Mapper().ToModel(response)
	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return rag.Response{}, fmt.Errorf("save curated response: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// ExperimentStore implements rag.ExperimentStore using GORM.
type ExperimentStore struct {
	database.Repository[rag.Experiment, ExperimentModel]
}

// NewExperimentStore creates a new ExperimentStore.
func NewExperimentStore(db database.Database) ExperimentStore {
	return ExperimentStore{
		Repository: database.NewRepository[rag.Experiment, ExperimentModel](db, ExperimentMapper{}, "experiment"),
	}
}

var _ rag.ExperimentStore = ExperimentStore{}

// Completed returns finished experiments, most recently updated first.
func (s ExperimentStore) Completed(ctx context.Context, limit int) ([]rag.Experiment, error) {
	var models []ExperimentModel
	result := s.DB(ctx).Model(&ExperimentModel{}).
		Where("status = ?", "completed").
		Order("updated_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find experiments: %w", result.Error)
	}

	experiments := make([]rag.Experiment, len(models))
	for i, m := range models {
		experiments[i] = s.Mapper().ToDomain(m)
	}
	return experiments, nil
}

// Save creates or updates an experiment.
func (s ExperimentStore) Save(ctx context.Context, experiment rag.Experiment) (rag.Experiment, error) {
	model := s.Mapper().ToModel(experiment)
	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return rag.Experiment{}, fmt.Errorf("save experiment: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}
