// Package txsource abstracts where the replay's transaction batches come
// from. The primary source is the bank's own API; a YNAB budget can stand in
// for accounts the bank doesn't expose.
package txsource

import (
	"time"

	"github.com/bdewet/goalops/pkg/ledger"
)

// Source lists the ledger entries for one account over an inclusive date
// window. An empty slice means no activity.
type Source interface {
	ListTransactions(accountID string, from, to time.Time) ([]ledger.Transaction, error)
}
