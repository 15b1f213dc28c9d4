package member

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func memberColumns() []string {
	return []string{"id", "name", "email", "password_hash", "role", "tier", "created_at"}
}

func TestCreateMember(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members (id, name, email, password_hash, role, tier) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, name, email, password_hash, role, tier, created_at")).
		WithArgs(sqlmock.AnyArg(), "Alice", "alice@example.com", "hash", "member", TierPremium).
		WillReturnRows(sqlmock.NewRows(memberColumns()).
			AddRow(id, "Alice", "alice@example.com", "hash", "member", "premium", now))

	m, err := repo.Create(context.Background(), "Alice", "alice@example.com", "hash", "member", TierPremium)
	require.NoError(t, err)
	require.Equal(t, id, m.ID)
	require.Equal(t, TierPremium, m.Tier)
}

func TestGetMemberByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, role, tier, created_at FROM members WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(memberColumns()).
			AddRow(id, "Alice", "alice@example.com", "hash", "member", "standard", now))

	m, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", m.Email)
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)")).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.True(t, exists)
}
