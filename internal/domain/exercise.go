package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLogLimit caps log queries when the caller supplies no usable limit.
const DefaultLogLimit = 500

// Exercise is a single timestamped entry in a user's log.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    int
	Date        time.Time
}

// LogFilter narrows a log query. Nil bounds are open; Limit <= 0 means the
// default ceiling.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ExerciseRepository captures persistence operations for exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise Exercise) error
	ListByUser(ctx context.Context, userID string, filter LogFilter) ([]Exercise, error)
}

// AddExerciseInput captures the payload from the API layer. DateText carries
// the raw date field; blank or unparseable text falls back to the current
// date at write time.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    int
	DateText    string
}

// LogEntry is a stored exercise joined with its owner's username.
type LogEntry struct {
	Exercise
	Username string
}

// LogResult packages a user's filtered exercise log.
type LogResult struct {
	User    User
	Entries []Exercise
}

// Log attaches exercises to users and answers filtered log queries.
type Log struct {
	users     UserRepository
	exercises ExerciseRepository
}

// NewLog constructs a Log.
func NewLog(users UserRepository, exercises ExerciseRepository) *Log {
	return &Log{users: users, exercises: exercises}
}

// AddExercise validates and persists an exercise for an existing user. A
// missing user yields ErrUserNotFound and no record is written.
func (l *Log) AddExercise(ctx context.Context, input AddExerciseInput) (*LogEntry, error) {
	user, err := l.users.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if input.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be a positive integer", ErrInvalidInput)
	}

	date, ok := ParseDate(input.DateText)
	if !ok {
		date = CurrentDate()
	}

	exercise := Exercise{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: description,
		Duration:    input.Duration,
		Date:        date,
	}
	if err := l.exercises.Create(ctx, exercise); err != nil {
		return nil, err
	}

	return &LogEntry{Exercise: exercise, Username: user.Username}, nil
}

// GetLog returns the user's exercises matching the filter, sorted by date
// ascending and capped at the filter limit or DefaultLogLimit.
func (l *Log) GetLog(ctx context.Context, userID string, filter LogFilter) (*LogResult, error) {
	user, err := l.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if filter.Limit <= 0 {
		filter.Limit = DefaultLogLimit
	}

	entries, err := l.exercises.ListByUser(ctx, user.ID, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Exercise{}
	}

	return &LogResult{User: *user, Entries: entries}, nil
}
