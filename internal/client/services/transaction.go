package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avolkov/finsync/internal/client/api"
	"github.com/avolkov/finsync/internal/client/models"
	"github.com/avolkov/finsync/internal/client/repositories/pendingops"
	"github.com/avolkov/finsync/internal/client/repositories/transactions"
	"github.com/avolkov/finsync/internal/client/state"
	"github.com/avolkov/finsync/internal/common"
	"github.com/avolkov/finsync/internal/logging"
)

// TransactionsSnapshot is the state surface the transaction service
// publishes to the UI layer.
type TransactionsSnapshot struct {
	Items   []models.Transaction
	Loading bool
	Offline bool
	Err     error
}

// BalanceRefresher is notified after every server-confirmed transaction
// mutation and after a fully drained sync pass, since the account balance
// is derived on the server.
type BalanceRefresher interface {
	RefreshBalance(ctx context.Context)
}

// TransactionService owns the transaction sync protocol: optimistic local
// mutation, best-effort remote commit, pending-queue fallback and
// drain-before-fetch reads. All public operations run under a single
// writer lock; once a mutation has written optimistically it runs to
// completion (success or enqueue) regardless of caller cancellation, so a
// durable record of user intent is never lost.
type TransactionService struct {
	mu      sync.Mutex
	api     api.TransactionAPI
	store   transactions.Repository
	backup  pendingops.Repository
	balance BalanceRefresher
	log     logging.Logger
	state   *state.Value[TransactionsSnapshot]

	// placeholder is the last issued local id; placeholders are negative so
	// they can never collide with server-assigned ids. Unique per process:
	// leftovers from an earlier run are re-keyed during the next drain.
	placeholder int64

	// last requested range, used to rebuild the published list after writes
	lastFrom, lastTo time.Time
	hasRange         bool
}

// NewTransactionService wires the sync engine. balance may be nil when no
// account refresh is wanted (e.g. in isolation tests).
func NewTransactionService(apiClient api.TransactionAPI, store transactions.Repository, backup pendingops.Repository, balance BalanceRefresher, log logging.Logger) *TransactionService {
	return &TransactionService{
		api:     apiClient,
		store:   store,
		backup:  backup,
		balance: balance,
		log:     log,
		state:   state.NewValue(TransactionsSnapshot{}),
	}
}

// State exposes the published snapshot container.
func (s *TransactionService) State() *state.Value[TransactionsSnapshot] {
	return s.state
}

// GetTransactions is the read path. It drains the pending queue first so
// confirmed server state is not overwritten by stale offline data, then
// fetches the range from the remote, adopts it into the store and publishes
// the stored range. When the remote fails the local range is served with
// the still-pending operations overlaid, so offline edits stay visible.
func (s *TransactionService) GetTransactions(ctx context.Context, accountID int64, from, to time.Time) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	s.lastFrom, s.lastTo, s.hasRange = from, to, true

	s.drainPending(ctx)

	fresh, err := s.api.FetchTransactions(ctx, accountID, from, to)
	if err != nil {
		s.log.Warn(ctx, "transaction fetch failed, serving local data", "err", err)
		items := s.offlineRange(ctx, from, to)
		s.publish(items, true, err)
		return items
	}

	if serr := s.store.Upsert(ctx, fresh); serr != nil {
		// Local state unknown: serve the server's answer directly.
		s.log.Error(ctx, "storing fetched transactions failed", "err", serr)
		s.publish(fresh, false, nil)
		return fresh
	}
	items, serr := s.store.FetchRange(ctx, from, to)
	if serr != nil {
		s.log.Error(ctx, "reading back stored range failed", "err", serr)
		items = fresh
	}
	s.publish(items, false, nil)
	return items
}

// Create validates the draft, writes it optimistically, then attempts the
// remote commit. A draft with a zero id is assigned a negative placeholder
// id; on confirmation the placeholder row is replaced by the row carrying
// the server-assigned id, so no duplicate remains. On remote failure a
// create-kind pending operation is recorded and the optimistic write is
// kept — it is never rolled back.
//
// The returned error is only ever a *common.ValidationError; remote and
// storage failures surface through the published snapshot.
func (s *TransactionService) Create(ctx context.Context, tx models.Transaction) error {
	if err := validateTransaction(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	now := time.Now().UTC()
	if tx.ID == 0 {
		tx.ID = s.nextPlaceholderID()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now

	if err := s.store.Upsert(ctx, []models.Transaction{tx}); err != nil {
		s.log.Error(ctx, "optimistic create failed to persist", "id", tx.ID, "err", err)
	}

	created, err := s.api.CreateTransaction(ctx, tx)
	if err != nil {
		s.recordFailure(ctx, models.OpCreate, tx, err)
		s.refreshPublished(ctx, true, err)
		return nil
	}

	s.adoptConfirmed(ctx, tx.ID, created)
	s.refreshBalance(ctx)
	s.refreshPublished(ctx, false, nil)
	return nil
}

// Update validates the edit, overwrites the local row optimistically and
// attempts the remote commit; on failure an update-kind pending operation
// carrying the full snapshot is recorded.
func (s *TransactionService) Update(ctx context.Context, tx models.Transaction) error {
	if tx.ID == 0 {
		return &common.ValidationError{Field: "id", Reason: "required"}
	}
	if err := validateTransaction(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	tx.UpdatedAt = time.Now().UTC()

	if err := s.store.Upsert(ctx, []models.Transaction{tx}); err != nil {
		s.log.Error(ctx, "optimistic update failed to persist", "id", tx.ID, "err", err)
	}

	updated, err := s.api.UpdateTransaction(ctx, tx)
	if err != nil {
		s.recordFailure(ctx, models.OpUpdate, tx, err)
		s.refreshPublished(ctx, true, err)
		return nil
	}

	if serr := s.store.Upsert(ctx, []models.Transaction{updated}); serr != nil {
		s.log.Error(ctx, "storing confirmed update failed", "id", updated.ID, "err", serr)
	}
	s.refreshBalance(ctx)
	s.refreshPublished(ctx, false, nil)
	return nil
}

// Delete removes the row optimistically and attempts the remote delete; on
// failure a delete-kind pending operation carrying the bare id is recorded.
func (s *TransactionService) Delete(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "optimistic delete failed to persist", "id", id, "err", err)
	}

	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		s.log.Warn(ctx, "remote delete failed, recording pending operation", "id", id, "err", err)
		if serr := s.backup.Save(ctx, models.NewPendingDelete(id)); serr != nil {
			s.log.Error(ctx, "persisting pending delete failed", "id", id, "err", serr)
		}
		s.refreshPublished(ctx, true, err)
		return
	}

	s.refreshBalance(ctx)
	s.refreshPublished(ctx, false, nil)
}

// Sync replays the pending-operation queue against the remote service.
func (s *TransactionService) Sync(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drainPending(ctx)
}

// drainPending replays pending operations in recorded order, deleting each
// from the queue only after its remote call succeeds. The pass aborts on
// the first failure: operations are never skipped or reordered, since a
// later operation on the same logical transaction may depend on an earlier
// one having been applied server-side.
func (s *TransactionService) drainPending(ctx context.Context) {
	ops, err := s.backup.FetchAll(ctx)
	if err != nil {
		s.log.Error(ctx, "reading pending queue failed", "err", err)
		return
	}
	if len(ops) == 0 {
		return
	}

	s.log.Info(ctx, "replaying pending operations", "count", len(ops))

	drained := 0
	for _, op := range ops {
		if err := s.replay(ctx, op); err != nil {
			s.log.Warn(ctx, "pending replay stopped", "op", op.ID, "kind", op.Kind, "err", err)
			break
		}
		if err := s.backup.Delete(ctx, op.ID); err != nil {
			s.log.Error(ctx, "removing replayed operation failed", "op", op.ID, "err", err)
			break
		}
		drained++
	}

	if drained == len(ops) {
		s.refreshBalance(ctx)
	}
}

func (s *TransactionService) replay(ctx context.Context, op models.PendingOperation) error {
	switch op.Kind {
	case models.OpCreate:
		tx, err := op.Transaction()
		if err != nil {
			return err
		}
		created, err := s.api.CreateTransaction(ctx, tx)
		if err != nil {
			return err
		}
		s.adoptConfirmed(ctx, tx.ID, created)
		return nil
	case models.OpUpdate:
		tx, err := op.Transaction()
		if err != nil {
			return err
		}
		updated, err := s.api.UpdateTransaction(ctx, tx)
		if err != nil {
			return err
		}
		return s.store.Upsert(ctx, []models.Transaction{updated})
	case models.OpDelete:
		if err := s.api.DeleteTransaction(ctx, op.TransactionID); err != nil {
			return err
		}
		return s.store.Delete(ctx, op.TransactionID)
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

// adoptConfirmed replaces the optimistic row with the server's version.
// When the server assigned a different id the placeholder row is deleted
// first, so no duplicate remains.
func (s *TransactionService) adoptConfirmed(ctx context.Context, localID int64, confirmed models.Transaction) {
	if confirmed.ID != localID {
		if err := s.store.Delete(ctx, localID); err != nil {
			s.log.Error(ctx, "removing placeholder row failed", "id", localID, "err", err)
		}
	}
	if err := s.store.Upsert(ctx, []models.Transaction{confirmed}); err != nil {
		s.log.Error(ctx, "storing confirmed transaction failed", "id", confirmed.ID, "err", err)
	}
}

// offlineRange serves the local store overlaid with the not-yet-synced
// pending operations.
func (s *TransactionService) offlineRange(ctx context.Context, from, to time.Time) []models.Transaction {
	local, err := s.store.FetchRange(ctx, from, to)
	if err != nil {
		s.log.Error(ctx, "local range fetch failed", "err", err)
		local = nil
	}
	ops, err := s.backup.FetchAll(ctx)
	if err != nil {
		s.log.Error(ctx, "pending queue fetch failed", "err", err)
		return local
	}
	return mergePending(local, ops)
}

// mergePending overlays pending operations onto a local snapshot. Operations
// apply in recorded order: create and update overwrite or insert the entry
// for their transaction id, delete removes it. The overlay is idempotent —
// applying a queue to its own result changes nothing — because each id ends
// at its last writer, with delete terminal within one pass.
func mergePending(local []models.Transaction, ops []models.PendingOperation) []models.Transaction {
	byID := make(map[int64]models.Transaction, len(local))
	for _, tx := range local {
		byID[tx.ID] = tx
	}

	for _, op := range ops {
		switch op.Kind {
		case models.OpCreate, models.OpUpdate:
			tx, err := op.Transaction()
			if err != nil {
				continue
			}
			byID[tx.ID] = tx
		case models.OpDelete:
			delete(byID, op.TransactionID)
		}
	}

	merged := make([]models.Transaction, 0, len(byID))
	for _, tx := range byID {
		merged = append(merged, tx)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].TransactionDate.Equal(merged[j].TransactionDate) {
			return merged[i].TransactionDate.Before(merged[j].TransactionDate)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}

// refreshPublished rebuilds the published list from the store for the last
// requested range so the UI observes the final state of a mutation.
func (s *TransactionService) refreshPublished(ctx context.Context, offline bool, cause error) {
	if !s.hasRange {
		snap := s.state.Get()
		snap.Offline = offline
		snap.Err = cause
		s.state.Set(snap)
		return
	}

	var items []models.Transaction
	if offline {
		items = s.offlineRange(ctx, s.lastFrom, s.lastTo)
	} else {
		var err error
		items, err = s.store.FetchRange(ctx, s.lastFrom, s.lastTo)
		if err != nil {
			s.log.Error(ctx, "rebuilding published range failed", "err", err)
			items = s.state.Get().Items
		}
	}
	s.publish(items, offline, cause)
}

func (s *TransactionService) recordFailure(ctx context.Context, kind models.OperationKind, tx models.Transaction, cause error) {
	s.log.Warn(ctx, "remote call failed, recording pending operation", "kind", kind, "id", tx.ID, "err", cause)
	op, err := models.NewPendingOperation(kind, tx)
	if err != nil {
		s.log.Error(ctx, "encoding pending operation failed", "err", err)
		return
	}
	if err := s.backup.Save(ctx, op); err != nil {
		s.log.Error(ctx, "persisting pending operation failed", "err", err)
	}
}

func (s *TransactionService) refreshBalance(ctx context.Context) {
	if s.balance != nil {
		s.balance.RefreshBalance(ctx)
	}
}

func (s *TransactionService) nextPlaceholderID() int64 {
	s.placeholder--
	return s.placeholder
}

func (s *TransactionService) setLoading(v bool) {
	snap := s.state.Get()
	snap.Loading = v
	s.state.Set(snap)
}

func (s *TransactionService) publish(items []models.Transaction, offline bool, err error) {
	snap := s.state.Get()
	snap.Items = items
	snap.Offline = offline
	snap.Err = err
	s.state.Set(snap)
}

func validateTransaction(tx models.Transaction) error {
	if tx.Amount.IsNegative() {
		return &common.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if tx.AccountID == 0 {
		return &common.ValidationError{Field: "accountId", Reason: "required"}
	}
	if tx.CategoryID == 0 {
		return &common.ValidationError{Field: "categoryId", Reason: "required"}
	}
	return nil
}
