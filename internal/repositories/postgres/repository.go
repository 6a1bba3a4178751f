package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhive/quiz-service/internal/repositories"
)

// repository bundles the per-entity postgres repositories behind the shared
// Repository interface. WithTransaction hands the callback a repository bound
// to the transaction, so "load attempt, mutate, save" runs atomically.
type repository struct {
	db      *gorm.DB
	quiz    repositories.QuizRepository
	attempt repositories.AttemptRepository
	group   repositories.GroupRepository
	user    repositories.UserRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:      db,
		quiz:    newQuizRepository(db),
		attempt: newAttemptRepository(db),
		group:   newGroupRepository(db),
		user:    newUserRepository(db),
	}
}

func (r *repository) Quiz() repositories.QuizRepository       { return r.quiz }
func (r *repository) Attempt() repositories.AttemptRepository { return r.attempt }
func (r *repository) Group() repositories.GroupRepository     { return r.group }
func (r *repository) User() repositories.UserRepository       { return r.user }

func (r *repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// mapNotFound rewrites gorm's not-found error to the repository sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}
