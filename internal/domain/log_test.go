package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]User
	err   error
}

func (f *fakeUserRepo) Create(ctx context.Context, user User) error {
	if f.err != nil {
		return f.err
	}
	if f.users == nil {
		f.users = make(map[string]User)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id string) (*User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

type fakeExerciseRepo struct {
	created []Exercise
	listed  []Exercise
	filter  LogFilter
}

func (f *fakeExerciseRepo) Create(ctx context.Context, exercise Exercise) error {
	f.created = append(f.created, exercise)
	return nil
}

func (f *fakeExerciseRepo) ListByUser(ctx context.Context, userID string, filter LogFilter) ([]Exercise, error) {
	f.filter = filter
	return f.listed, nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, username string) User {
	t.Helper()
	user := User{ID: username + "-id", Username: username}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestCreateUserRejectsBlankUsername(t *testing.T) {
	registry := NewRegistry(&fakeUserRepo{})

	for _, username := range []string{"", "   "} {
		_, err := registry.CreateUser(context.Background(), username)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreateUserAssignsFreshIDs(t *testing.T) {
	repo := &fakeUserRepo{}
	registry := NewRegistry(repo)

	first, err := registry.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	second, err := registry.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	require.Equal(t, "alice", first.Username)
	require.NotEmpty(t, first.ID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestListUsersEmptyStore(t *testing.T) {
	registry := NewRegistry(&fakeUserRepo{})

	users, err := registry.ListUsers(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestAddExerciseUnknownUser(t *testing.T) {
	users := &fakeUserRepo{}
	exercises := &fakeExerciseRepo{}
	log := NewLog(users, exercises)

	_, err := log.AddExercise(context.Background(), AddExerciseInput{
		UserID:      "missing",
		Description: "jog",
		Duration:    20,
	})
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Empty(t, exercises.created, "no record may be written for an unknown user")
}

func TestAddExerciseValidation(t *testing.T) {
	users := &fakeUserRepo{}
	user := seedUser(t, users, "alice")
	log := NewLog(users, &fakeExerciseRepo{})

	_, err := log.AddExercise(context.Background(), AddExerciseInput{UserID: user.ID, Duration: 20})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = log.AddExercise(context.Background(), AddExerciseInput{UserID: user.ID, Description: "jog"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = log.AddExercise(context.Background(), AddExerciseInput{UserID: user.ID, Description: "jog", Duration: -5})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddExerciseExplicitDate(t *testing.T) {
	users := &fakeUserRepo{}
	user := seedUser(t, users, "alice")
	exercises := &fakeExerciseRepo{}
	log := NewLog(users, exercises)

	entry, err := log.AddExercise(context.Background(), AddExerciseInput{
		UserID:      user.ID,
		Description: "swim",
		Duration:    45,
		DateText:    "2023-03-15",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", entry.Username)
	require.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), entry.Date)
	require.Len(t, exercises.created, 1)
	require.Equal(t, entry.Exercise, exercises.created[0])
}

func TestAddExerciseBlankDateUsesToday(t *testing.T) {
	users := &fakeUserRepo{}
	user := seedUser(t, users, "alice")
	log := NewLog(users, &fakeExerciseRepo{})

	for _, raw := range []string{"", "   ", "bogus-date"} {
		entry, err := log.AddExercise(context.Background(), AddExerciseInput{
			UserID:      user.ID,
			Description: "row",
			Duration:    10,
			DateText:    raw,
		})
		require.NoError(t, err)
		require.Equal(t, CurrentDate(), entry.Date, "input %q", raw)
	}
}

func TestGetLogUnknownUser(t *testing.T) {
	log := NewLog(&fakeUserRepo{}, &fakeExerciseRepo{})

	_, err := log.GetLog(context.Background(), "missing", LogFilter{})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetLogAppliesDefaultLimit(t *testing.T) {
	users := &fakeUserRepo{}
	user := seedUser(t, users, "alice")
	exercises := &fakeExerciseRepo{}
	log := NewLog(users, exercises)

	result, err := log.GetLog(context.Background(), user.ID, LogFilter{})
	require.NoError(t, err)
	require.Equal(t, DefaultLogLimit, exercises.filter.Limit)
	require.NotNil(t, result.Entries)
	require.Empty(t, result.Entries)
}

func TestGetLogKeepsExplicitLimit(t *testing.T) {
	users := &fakeUserRepo{}
	user := seedUser(t, users, "alice")
	exercises := &fakeExerciseRepo{}
	log := NewLog(users, exercises)

	_, err := log.GetLog(context.Background(), user.ID, LogFilter{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 2, exercises.filter.Limit)
}
