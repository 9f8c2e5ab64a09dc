package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/finsync/internal/client/models"
	"github.com/avolkov/finsync/internal/client/storage"
	"github.com/avolkov/finsync/internal/common"
	"github.com/avolkov/finsync/internal/logging"
)

type fakeAccountAPI struct {
	failing  bool
	accounts []models.Account
	updated  []models.Account
}

func (f *fakeAccountAPI) FetchAccounts(context.Context) ([]models.Account, error) {
	if f.failing {
		return nil, unreachable()
	}
	return f.accounts, nil
}

func (f *fakeAccountAPI) UpdateAccount(_ context.Context, acc models.Account) (models.Account, error) {
	if f.failing {
		return models.Account{}, unreachable()
	}
	f.updated = append(f.updated, acc)
	return acc, nil
}

func newAccountService(t *testing.T) (*AccountService, *fakeAccountAPI, *storage.Repositories) {
	t.Helper()
	repos, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	fake := &fakeAccountAPI{}
	svc := NewAccountService(fake, repos.Accounts, logging.NewDefault())
	return svc, fake, repos
}

func account(id int64, name, balance string) models.Account {
	return models.Account{
		ID:       id,
		UserID:   107,
		Name:     name,
		Balance:  decimal.RequireFromString(balance),
		Currency: "RUB",
	}
}

func TestFetchPrimary_AdoptsServerAccount(t *testing.T) {
	svc, fake, repos := newAccountService(t)
	fake.accounts = []models.Account{account(1, "Main", "1000.00")}

	got := svc.FetchPrimary(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, int64(1), svc.CurrentAccountID())

	stored, err := repos.Accounts.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Balance.Equal(decimal.RequireFromString("1000.00")))
}

func TestFetchPrimary_FallsBackToLocal(t *testing.T) {
	svc, fake, repos := newAccountService(t)
	ctx := context.Background()
	require.NoError(t, repos.Accounts.Upsert(ctx, []models.Account{account(1, "Main", "500.00")}))

	fake.failing = true
	got := svc.FetchPrimary(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "Main", got.Name)

	snap := svc.State().Get()
	assert.True(t, snap.Offline)
	assert.Error(t, snap.Err)
}

func TestFetchPrimary_NothingAnywhere(t *testing.T) {
	svc, fake, _ := newAccountService(t)
	fake.failing = true

	got := svc.FetchPrimary(context.Background())
	assert.Nil(t, got)
	assert.Equal(t, int64(0), svc.CurrentAccountID())
}

func TestUpdateAccount_RoundTrip(t *testing.T) {
	svc, fake, repos := newAccountService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateAccount(ctx, account(1, "Renamed", "500.00")))
	require.Len(t, fake.updated, 1)

	stored, err := repos.Accounts.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Renamed", stored[0].Name)

	snap := svc.State().Get()
	assert.False(t, snap.Offline)
	require.NotNil(t, snap.Account)
	assert.Equal(t, "Renamed", snap.Account.Name)
}

func TestUpdateAccount_OfflineKeepsOptimisticVersion(t *testing.T) {
	svc, fake, repos := newAccountService(t)
	ctx := context.Background()
	fake.failing = true

	require.NoError(t, svc.UpdateAccount(ctx, account(1, "Renamed", "500.00")))

	// The edit stays locally; no pending queue exists for accounts.
	stored, err := repos.Accounts.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Renamed", stored[0].Name)

	snap := svc.State().Get()
	assert.True(t, snap.Offline)
	assert.Error(t, snap.Err)
	require.NotNil(t, snap.Account)
	assert.Equal(t, "Renamed", snap.Account.Name)
}

func TestUpdateAccount_Validation(t *testing.T) {
	svc, fake, _ := newAccountService(t)
	ctx := context.Background()

	err := svc.UpdateAccount(ctx, account(1, "", "0"))
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))

	bad := account(1, "Main", "0")
	bad.Currency = "ROUBLES"
	err = svc.UpdateAccount(ctx, bad)
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))

	assert.Empty(t, fake.updated)
}
