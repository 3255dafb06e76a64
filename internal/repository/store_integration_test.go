//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"career-guide/internal/config"
	"career-guide/internal/db"
	"career-guide/internal/domain"
)

func testUser() domain.User {
	id := uuid.NewString()
	return domain.User{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		PasswordHash: "$2a$10$hash",
		FirstName:    "A",
		LastName:     "B",
		Age:          "16",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestPgUserRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.NewPool(ctx, &config.Config{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool))

	users := NewPgUserRepository(pool)
	user := testUser()
	require.NoError(t, users.Create(ctx, user))

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.PasswordHash)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := users.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

	dup := testUser()
	dup.Email = user.Email
	assert.ErrorIs(t, users.Create(ctx, dup), ErrDuplicateEmail)

	_, err = users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	marks := NewPgMarksRepository(pool)
	entry := domain.MarksEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Subjects:  []domain.SubjectMark{{SubjectName: "Math", Marks: 90, TotalMarks: 100}},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, marks.Create(ctx, entry))
	err = marks.Create(ctx, entry)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestMongoUserRepository(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	database := client.Database("career_guide_test_" + uuid.NewString()[:8])
	t.Cleanup(func() { _ = database.Drop(context.Background()) })
	require.NoError(t, EnsureMongoIndexes(ctx, database))

	users := NewMongoUserRepository(database)
	user := testUser()
	require.NoError(t, users.Create(ctx, user))

	byID, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.PasswordHash)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := users.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

	dup := testUser()
	dup.Email = user.Email
	assert.ErrorIs(t, users.Create(ctx, dup), ErrDuplicateEmail)

	_, err = users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	marks := NewMongoMarksRepository(database)
	entry := domain.MarksEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Subjects:  []domain.SubjectMark{{SubjectName: "Math", Marks: 90, TotalMarks: 100}},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, marks.Create(ctx, entry))
	err = marks.Create(ctx, entry)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}
