package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/repositories"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	schema := `
	CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(100) NOT NULL UNIQUE,
		username VARCHAR(50) NOT NULL UNIQUE,
		full_name VARCHAR(100) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		disabled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS history (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		owner_id UUID NOT NULL REFERENCES users(id),
		ip_address VARCHAR(64) NOT NULL,
		ip_attr VARCHAR(128) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := repositories.NewUserWriteRepository(db)
	readRepo := repositories.NewUserReadRepository(db)
	ctx := context.Background()

	created, err := writeRepo.Save(ctx, "alice@example.com", "alice", "Alice", "$2a$10$hash")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.False(t, created.Disabled)

	t.Run("duplicate email rejected by constraint", func(t *testing.T) {
		dup, err := writeRepo.Save(ctx, "alice@example.com", "alice2", "", "$2a$10$other")
		assert.ErrorIs(t, err, repositories.ErrUniqueViolation)
		assert.Nil(t, dup)
	})

	t.Run("GetByID", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, created.ID)
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("GetByUsername", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "alice")
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("GetByEmail absent", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("List", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, "bob@example.com", "bob", "Bob", "$2a$10$hash")
		require.NoError(t, err)

		users, err := readRepo.List(ctx, 0, 100)
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
	})
}

func TestHistoryRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userRepo := repositories.NewUserWriteRepository(db)
	writeRepo := repositories.NewHistoryWriteRepository(db)
	readRepo := repositories.NewHistoryReadRepository(db)
	ctx := context.Background()

	owner, err := userRepo.Save(ctx, "alice@example.com", "alice", "", "$2a$10$hash")
	require.NoError(t, err)

	first, err := writeRepo.Save(ctx, owner.ID, "8.8.8.8", "Global IPv4 Address")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, first.OwnerID)

	_, err = writeRepo.Save(ctx, owner.ID, "10.0.0.1", "Private IPv4 Address")
	require.NoError(t, err)

	t.Run("entries come back in insertion order", func(t *testing.T) {
		entries, err := readRepo.ListByOwner(ctx, owner.ID, 0, 100)
		assert.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "8.8.8.8", entries[0].IPAddress)
		assert.Equal(t, "10.0.0.1", entries[1].IPAddress)
	})

	t.Run("other owners see nothing", func(t *testing.T) {
		other, err := userRepo.Save(ctx, "bob@example.com", "bob", "", "$2a$10$hash")
		require.NoError(t, err)

		entries, err := readRepo.ListByOwner(ctx, other.ID, 0, 100)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("pagination", func(t *testing.T) {
		entries, err := readRepo.ListByOwner(ctx, owner.ID, 1, 1)
		assert.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "10.0.0.1", entries[0].IPAddress)
	})
}
