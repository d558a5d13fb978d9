// Package goalstore persists savings goals. Goals are documents owned by an
// external store; this package reads them into typed values and writes back
// saved-balance updates. Two backends: postgres (default) and airtable.
package goalstore

import (
	"errors"
	"fmt"

	"github.com/bdewet/goalops/internal/postgresutils"
	"github.com/bdewet/goalops/pkg/config"
	"github.com/bdewet/goalops/pkg/ledger"
)

var (
	ErrNotFound    = errors.New("goal not found")
	ErrPersistence = errors.New("goal store error")
)

type Store interface {
	Goal(id string) (ledger.Goal, error)
	List() ([]ledger.Goal, error)
	Create(goal ledger.Goal) error
	// UpdateSaved writes a reconciled saved balance back to the document.
	UpdateSaved(id string, saved float64) error
}

// Open builds the store selected by the goals config.
func Open() (Store, error) {
	switch config.CurrentGoalsConfig().Backend {
	case "", "postgres":
		db, err := postgresutils.CreatePostgresClient(config.CurrentGoalsConfig().SQL.Database)
		if err != nil {
			return nil, fmt.Errorf("Error connecting to postgres DB: %s", err)
		}

		return NewPostgresStore(db)
	case "airtable":
		return NewAirtableStore(
			config.CurrentAirtableSecrets().AirtableAPIKey,
			config.CurrentGoalsConfig().Airtable.BaseID,
			config.CurrentGoalsConfig().Airtable.TableName,
		)
	default:
		return nil, fmt.Errorf("unknown goals backend: %s", config.CurrentGoalsConfig().Backend)
	}
}
