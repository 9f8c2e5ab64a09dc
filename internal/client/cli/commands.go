package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/finsync/internal/client/models"
)

// Account prints the primary account, refreshing it from the remote first.
func (a *App) Account(ctx context.Context) {
	acc := a.accounts.FetchPrimary(ctx)
	if acc == nil {
		printlnFn("No account available")
		return
	}
	snap := a.accounts.State().Get()
	printlnFn(fmt.Sprintf("[%d] %s: %s %s%s", acc.ID, acc.Name, acc.Balance.StringFixed(2), acc.Currency, offlineMark(snap.Offline)))
}

// Rename renames the primary account, keeping its balance and currency.
func (a *App) Rename(ctx context.Context, name string) {
	snap := a.accounts.State().Get()
	if snap.Account == nil {
		printlnFn("No account loaded; run 'account' first")
		return
	}
	acc := *snap.Account
	acc.Name = name
	if err := a.accounts.UpdateAccount(ctx, acc); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	a.Account(ctx)
}

// Categories prints the category reference set, income first.
func (a *App) Categories(ctx context.Context) {
	a.categories.FetchAll(ctx)
	for _, d := range []models.Direction{models.DirectionIncome, models.DirectionOutcome} {
		for _, c := range a.categories.ByDirection(d) {
			printlnFn(fmt.Sprintf("[%d] %s %s (%s)", c.ID, c.Emoji, c.Name, d))
		}
	}
}

// List prints the primary account's transactions for the last N days.
func (a *App) List(ctx context.Context, days int) {
	accountID := a.accounts.CurrentAccountID()
	if accountID == 0 {
		printlnFn("No account loaded; run 'account' first")
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)
	items := a.transactions.GetTransactions(ctx, accountID, from, to)

	snap := a.transactions.State().Get()
	if snap.Offline {
		printlnFn("(offline: showing local data)")
	}
	if len(items) == 0 {
		printlnFn("No transactions")
		return
	}
	for _, tx := range items {
		a.printTransaction(tx)
	}
}

// Add records a transaction on the primary account.
func (a *App) Add(ctx context.Context, categoryID int64, amount, comment string) {
	accountID := a.accounts.CurrentAccountID()
	if accountID == 0 {
		printlnFn("No account loaded; run 'account' first")
		return
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		printlnFn("Invalid amount:", amount)
		return
	}

	tx := models.Transaction{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          value,
		TransactionDate: time.Now().UTC(),
		Comment:         comment,
	}
	if err := a.transactions.Create(ctx, tx); err != nil {
		printlnFn("Error:", err.Error())
		return
	}

	snap := a.transactions.State().Get()
	if snap.Offline {
		printlnFn("Saved locally; will sync when the server is reachable")
	} else {
		printlnFn("Saved")
	}
}

// Del deletes a transaction by id.
func (a *App) Del(ctx context.Context, id int64) {
	a.transactions.Delete(ctx, id)

	snap := a.transactions.State().Get()
	if snap.Offline {
		printlnFn("Deleted locally; will sync when the server is reachable")
	} else {
		printlnFn("Deleted")
	}
}

// Sync replays queued offline operations.
func (a *App) Sync(ctx context.Context) {
	a.transactions.Sync(ctx)
	printlnFn("Sync done")
}

func (a *App) printTransaction(tx models.Transaction) {
	name := fmt.Sprintf("category %d", tx.CategoryID)
	if c := a.categories.ByID(tx.CategoryID); c != nil {
		name = fmt.Sprintf("%s %s", c.Emoji, c.Name)
	}
	line := fmt.Sprintf("[%d] %s  %s  %s", tx.ID, tx.TransactionDate.Format("2006-01-02"), tx.Amount.StringFixed(2), name)
	if tx.Comment != "" {
		line += "  " + tx.Comment
	}
	if tx.IsPlaceholder() {
		line += "  (not synced)"
	}
	printlnFn(line)
}

func offlineMark(offline bool) string {
	if offline {
		return " (offline)"
	}
	return ""
}
