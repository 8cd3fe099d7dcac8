package accessController

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"coutupro/config"
	"coutupro/internal/database"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	controller   *AccessController
	codes        repositories.AccessCodeRepository
	flags        repositories.FlagRepository
	transactions *services.TransactionService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := database.New(config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "access.db"),
	})
	require.NoError(t, err)
	_, err = db.Migrate()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	codes := repositories.NewAccessCode(db)
	transactions := services.NewTransactionService(db)
	return fixture{
		controller:   New(codes, repositories.NewUser(db), transactions),
		codes:        codes,
		flags:        repositories.NewFlag(db),
		transactions: transactions,
	}
}

func (f fixture) seedCode(t *testing.T, code string) {
	t.Helper()
	require.NoError(t, f.codes.Create(context.Background(), &AccessCode{Code: code, CreatedAt: time.Now().UTC()}))
}

func TestValidateAccessCode_SingleUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCode(t, "ATELIER1")

	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{name: "first use", code: "ATELIER1", expected: true},
		{name: "second use", code: "ATELIER1", expected: false},
		{name: "unknown code", code: "NOPE", expected: false},
		{name: "case differs", code: "atelier1", expected: false},
		{name: "blank", code: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := f.controller.ValidateAccessCode(ctx, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, valid)
		})
	}

	stored, err := f.codes.GetByCode(ctx, "ATELIER1")
	require.NoError(t, err)
	assert.True(t, stored.IsUsed)
	assert.NotNil(t, stored.UsedAt)
}

func TestValidateAccessCode_ConcurrentRedemption(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCode(t, "RACE")

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		total = 8
	)
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			valid, err := f.controller.ValidateAccessCode(ctx, "RACE")
			assert.NoError(t, err)
			if valid {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestCreateUserAndCurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	current, err := f.controller.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	user, err := f.controller.CreateUser(ctx, "ATELIER1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)
	assert.Equal(t, "ATELIER1", user.Code)

	current, err = f.controller.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
}

func TestSession_LoginPersistsFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCode(t, "ATELIER1")

	session := NewSession(f.controller, f.flags, f.transactions)
	require.NoError(t, session.Init(ctx))
	assert.False(t, session.Authenticated())

	user, err := session.Login(ctx, "WRONG")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, session.Authenticated())

	user, err = session.Login(ctx, "ATELIER1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, session.Authenticated())

	restarted := NewSession(f.controller, f.flags, f.transactions)
	require.NoError(t, restarted.Init(ctx))
	assert.True(t, restarted.Authenticated())

	user, err = restarted.Login(ctx, "ATELIER1")
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, restarted.Logout(ctx))
	assert.False(t, restarted.Authenticated())

	again := NewSession(f.controller, f.flags, f.transactions)
	require.NoError(t, again.Init(ctx))
	assert.False(t, again.Authenticated())
}
