// Package memory stores users and exercises in memory for unit tests and
// local development without Postgres.
package memory

import (
	"context"
	"sort"
	"sync"

	"example.com/exerciselog/internal/domain"
)

// UserRepository keeps users in a map guarded by a RWMutex.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepository constructs an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// Create implements domain.UserRepository.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

// Get implements domain.UserRepository.
func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

// List implements domain.UserRepository.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

// ExerciseRepository keeps exercise entries per user.
type ExerciseRepository struct {
	mu      sync.RWMutex
	entries map[string][]domain.Exercise
}

// NewExerciseRepository constructs an empty ExerciseRepository.
func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{entries: make(map[string][]domain.Exercise)}
}

// Create implements domain.ExerciseRepository.
func (r *ExerciseRepository) Create(ctx context.Context, exercise domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[exercise.UserID] = append(r.entries[exercise.UserID], exercise)
	return nil
}

// ListByUser implements domain.ExerciseRepository: date-range filter, date
// ascending order, limit cap.
func (r *ExerciseRepository) ListByUser(ctx context.Context, userID string, filter domain.LogFilter) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Exercise, 0)
	for _, exercise := range r.entries[userID] {
		if filter.From != nil && exercise.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && exercise.Date.After(*filter.To) {
			continue
		}
		matched = append(matched, exercise)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}
