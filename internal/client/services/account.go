package services

import (
	"context"
	"sync"

	"github.com/avolkov/finsync/internal/client/api"
	"github.com/avolkov/finsync/internal/client/models"
	"github.com/avolkov/finsync/internal/client/repositories/accounts"
	"github.com/avolkov/finsync/internal/client/state"
	"github.com/avolkov/finsync/internal/common"
	"github.com/avolkov/finsync/internal/logging"
)

// AccountSnapshot is the published account state. Account is nil until the
// first fetch (remote or local) has produced one.
type AccountSnapshot struct {
	Account *models.Account
	Loading bool
	Offline bool
	Err     error
}

// AccountService reconciles the primary account with the remote service.
// Accounts are read-mostly and their balance is server-derived, so the
// service uses fetch-with-local-fallback rather than a pending queue: a
// queued account write could clobber a balance the server has since moved.
type AccountService struct {
	mu    sync.Mutex
	api   api.AccountAPI
	store accounts.Repository
	log   logging.Logger
	state *state.Value[AccountSnapshot]
}

func NewAccountService(apiClient api.AccountAPI, store accounts.Repository, log logging.Logger) *AccountService {
	return &AccountService{
		api:   apiClient,
		store: store,
		log:   log,
		state: state.NewValue(AccountSnapshot{}),
	}
}

// State exposes the published snapshot container.
func (s *AccountService) State() *state.Value[AccountSnapshot] {
	return s.state
}

// FetchPrimary refreshes the primary account from the remote, adopting the
// server's version into the store. When the remote fails the last stored
// account is served instead.
func (s *AccountService) FetchPrimary(ctx context.Context) *models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	accs, err := s.api.FetchAccounts(ctx)
	if err != nil {
		s.log.Warn(ctx, "account fetch failed, serving local data", "err", err)
		return s.publishLocal(ctx, err)
	}
	if len(accs) == 0 {
		s.log.Warn(ctx, "account fetch returned no accounts")
		return s.publishLocal(ctx, nil)
	}

	primary := accs[0]
	if serr := s.store.Upsert(ctx, accs); serr != nil {
		s.log.Error(ctx, "storing fetched accounts failed", "err", serr)
	}
	s.publish(&primary, false, nil)
	return &primary
}

// RefreshBalance re-fetches the primary account so the server-derived
// balance catches up with confirmed transaction mutations.
func (s *AccountService) RefreshBalance(ctx context.Context) {
	s.FetchPrimary(ctx)
}

// CurrentAccountID returns the primary account's id, or 0 when no account
// has been loaded yet.
func (s *AccountService) CurrentAccountID() int64 {
	snap := s.state.Get()
	if snap.Account == nil {
		return 0
	}
	return snap.Account.ID
}

// UpdateAccount validates the edit, publishes and stores it optimistically
// and submits it to the remote. On remote failure the optimistic version
// stays published with the error and offline flags set; no pending
// operation is recorded for accounts.
//
// The returned error is only ever a *common.ValidationError.
func (s *AccountService) UpdateAccount(ctx context.Context, acc models.Account) error {
	if acc.Name == "" {
		return &common.ValidationError{Field: "name", Reason: "required"}
	}
	if len(acc.Currency) != 3 {
		return &common.ValidationError{Field: "currency", Reason: "must be a 3-letter code"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.store.Upsert(ctx, []models.Account{acc}); err != nil {
		s.log.Error(ctx, "optimistic account update failed to persist", "id", acc.ID, "err", err)
	}
	s.publish(&acc, false, nil)

	updated, err := s.api.UpdateAccount(ctx, acc)
	if err != nil {
		s.log.Warn(ctx, "remote account update failed", "id", acc.ID, "err", err)
		s.publish(&acc, true, err)
		return nil
	}

	if serr := s.store.Upsert(ctx, []models.Account{updated}); serr != nil {
		s.log.Error(ctx, "storing confirmed account failed", "id", updated.ID, "err", serr)
	}
	s.publish(&updated, false, nil)
	return nil
}

// publishLocal serves the first stored account, or nothing when the store
// is empty too.
func (s *AccountService) publishLocal(ctx context.Context, cause error) *models.Account {
	local, err := s.store.FetchAll(ctx)
	if err != nil {
		s.log.Error(ctx, "local account fetch failed", "err", err)
	}
	if len(local) == 0 {
		s.publish(nil, true, cause)
		return nil
	}
	primary := local[0]
	s.publish(&primary, true, cause)
	return &primary
}

func (s *AccountService) setLoading(v bool) {
	snap := s.state.Get()
	snap.Loading = v
	s.state.Set(snap)
}

func (s *AccountService) publish(acc *models.Account, offline bool, err error) {
	snap := s.state.Get()
	snap.Account = acc
	snap.Offline = offline
	snap.Err = err
	s.state.Set(snap)
}
