package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	accountmodel "hush/internal/account/model"
	"hush/internal/message/model"
)

var (
	testDB      *bun.DB
	pgContainer *postgres.PostgresContainer
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("hush"),
		postgres.WithUsername("hush"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}
	pgContainer = container

	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connection string: %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	if _, err := testDB.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`); err != nil {
		log.Fatalf("failed to create extension: %v", err)
	}

	// accounts is created here too: seedRecipient inserts into it, and
	// AccountExists queries it directly by table name rather than through a
	// bun relation.
	tables := []any{
		(*accountmodel.Account)(nil),
		(*model.QueuedCiphertext)(nil),
	}
	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

func truncateAll(t *testing.T) {
	t.Cleanup(func() {
		_, err := testDB.ExecContext(context.Background(),
			`TRUNCATE TABLE accounts, queued_ciphertexts RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})
}

func seedRecipient(t *testing.T) uuid.UUID {
	acc := &accountmodel.Account{IdentityPublicKey: randBytes(32), RegistrationID: 1}
	_, err := testDB.NewInsert().Model(acc).Exec(context.Background())
	require.NoError(t, err)
	return acc.ID
}

func randBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

func newMessage(recipientID uuid.UUID, tag uint8) *model.QueuedCiphertext {
	id, _ := uuid.NewV7()
	return &model.QueuedCiphertext{
		ID:          id,
		RecipientID: recipientID,
		Ciphertext:  []byte("sealed-bytes"),
		Tag:         tag,
		ExpiresAt:   time.Now().Add(30 * 24 * time.Hour),
	}
}

func Test_Insert_And_AccountExists(t *testing.T) {
	truncateAll(t)
	repo := NewMessageRepository(testDB)
	recipientID := seedRecipient(t)

	exists, err := repo.AccountExists(context.Background(), recipientID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.AccountExists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	msg := newMessage(recipientID, model.TagInitialX3DH)
	require.NoError(t, repo.Insert(context.Background(), msg))
}

func Test_Drain_OrdersByAscendingArrival(t *testing.T) {
	truncateAll(t)
	repo := NewMessageRepository(testDB)
	recipientID := seedRecipient(t)

	first := newMessage(recipientID, model.TagInitialX3DH)
	require.NoError(t, repo.Insert(context.Background(), first))
	second := newMessage(recipientID, model.TagEstablishedSession)
	require.NoError(t, repo.Insert(context.Background(), second))

	rows, err := repo.Drain(context.Background(), recipientID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)
}

func Test_Delete_IsScopedToOwningRecipient(t *testing.T) {
	truncateAll(t)
	repo := NewMessageRepository(testDB)
	recipientID := seedRecipient(t)
	otherRecipientID := seedRecipient(t)

	msg := newMessage(recipientID, model.TagInitialX3DH)
	require.NoError(t, repo.Insert(context.Background(), msg))

	deleted, err := repo.Delete(context.Background(), msg.ID, otherRecipientID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(context.Background(), msg.ID, recipientID)
	require.NoError(t, err)
	assert.True(t, deleted)

	rows, err := repo.Drain(context.Background(), recipientID, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func Test_Reap_DeletesOnlyExpiredRows(t *testing.T) {
	truncateAll(t)
	repo := NewMessageRepository(testDB)
	recipientID := seedRecipient(t)

	expired := newMessage(recipientID, model.TagInitialX3DH)
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Insert(context.Background(), expired))

	live := newMessage(recipientID, model.TagInitialX3DH)
	require.NoError(t, repo.Insert(context.Background(), live))

	n, err := repo.Reap(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := repo.Drain(context.Background(), recipientID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, live.ID, rows[0].ID)
}
