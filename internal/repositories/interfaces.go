package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/quizhive/quiz-service/internal/models"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when an optimistic update loses the
	// compare-and-swap on the attempt's version column.
	ErrVersionConflict = errors.New("version conflict on update")
)

// IsNotFoundError reports whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// Repository is the root access point for all entity repositories.
type Repository interface {
	Quiz() QuizRepository
	Attempt() AttemptRepository
	Group() GroupRepository
	User() UserRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

// ===== SHARED FILTER STRUCTS =====

type AttemptFilters struct {
	Status    *models.AttemptStatus `json:"status"`
	PlayerID  *string               `json:"player_id"`
	QuizID    *string               `json:"quiz_id"`
	DateFrom  *time.Time            `json:"date_from"`
	DateTo    *time.Time            `json:"date_to"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "created_at", "score", "completed_at"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}
