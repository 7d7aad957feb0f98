package database

import (
	"time"

	"github.com/hoverbar/hoverbar/internal/models"

	"github.com/pkg/errors"
)

// Repository handles all database operations for recorded transitions
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new transition into the journal
func (r *Repository) Create(tr *models.Transition) error {
	result := r.db.Create(tr)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert transition")
	}
	return nil
}

// Recent returns the newest transitions first, at most limit of them
func (r *Repository) Recent(limit int) ([]models.Transition, error) {
	var transitions []models.Transition
	result := r.db.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&transitions)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query recent transitions")
	}
	return transitions, nil
}

// Since returns transitions recorded at or after since, oldest first
func (r *Repository) Since(since time.Time) ([]models.Transition, error) {
	var transitions []models.Transition
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Order("id ASC").Find(&transitions)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query transitions")
	}
	return transitions, nil
}

// CountByKind aggregates the journal per transition kind
func (r *Repository) CountByKind() ([]models.KindCount, error) {
	var counts []models.KindCount
	result := r.db.Model(&models.Transition{}).
		Select("kind, COUNT(*) as count").
		Group("kind").
		Order("count DESC").
		Scan(&counts)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to count transitions")
	}
	return counts, nil
}

// Prune deletes transitions older than before (soft delete)
func (r *Repository) Prune(before time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", before).Delete(&models.Transition{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to prune transitions")
	}
	return result.RowsAffected, nil
}

// Clear removes all transitions from the journal
func (r *Repository) Clear() error {
	result := r.db.Exec("DELETE FROM transitions")
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear transitions")
	}
	return nil
}
