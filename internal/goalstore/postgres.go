package goalstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/bdewet/goalops/internal/postgresutils"
	"github.com/bdewet/goalops/pkg/ledger"
)

type SQLGoal struct {
	bun.BaseModel   `bun:"table:goals"`
	ID              int64  `bun:",pk,autoincrement"`
	Key             string `bun:",pk,unique"`
	Name            string
	Target          float64
	Saved           float64
	IsTracked       bool
	LinkedAccountID string
	UpdatedAt       time.Time
}

func (g SQLGoal) goal() ledger.Goal {
	return ledger.Goal{
		ID:              g.Key,
		Name:            g.Name,
		Target:          g.Target,
		Saved:           g.Saved,
		IsTracked:       g.IsTracked,
		LinkedAccountID: g.LinkedAccountID,
	}
}

type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(db *bun.DB) (*PostgresStore, error) {
	_, err := db.NewCreateTable().Model((*SQLGoal)(nil)).IfNotExists().Exec(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: creating goals table: %v", ErrPersistence, err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Goal(id string) (ledger.Goal, error) {
	row := SQLGoal{}

	err := s.db.NewSelect().Model(&row).Where("key = ?", id).Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Goal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err != nil {
		return ledger.Goal{}, fmt.Errorf("%w: reading goal %s: %v", ErrPersistence, id, err)
	}

	return row.goal(), nil
}

func (s *PostgresStore) List() ([]ledger.Goal, error) {
	rows := []SQLGoal{}

	err := s.db.NewSelect().Model(&rows).Order("name ASC").Scan(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: listing goals: %v", ErrPersistence, err)
	}

	goals := make([]ledger.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, row.goal())
	}

	return goals, nil
}

func (s *PostgresStore) Create(goal ledger.Goal) error {
	row := SQLGoal{
		Key:             goal.ID,
		Name:            goal.Name,
		Target:          goal.Target,
		Saved:           goal.Saved,
		IsTracked:       goal.IsTracked,
		LinkedAccountID: goal.LinkedAccountID,
		UpdatedAt:       time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (key) DO UPDATE").
		Set(postgresutils.TableSetString(s.db, (*SQLGoal)(nil), "id", "key")).
		Exec(context.Background())
	if err != nil {
		return fmt.Errorf("%w: writing goal %s: %v", ErrPersistence, goal.ID, err)
	}

	return nil
}

func (s *PostgresStore) UpdateSaved(id string, saved float64) error {
	result, err := s.db.NewUpdate().
		Model((*SQLGoal)(nil)).
		Set("saved = ?", saved).
		Set("updated_at = ?", time.Now()).
		Where("key = ?", id).
		Exec(context.Background())
	if err != nil {
		return fmt.Errorf("%w: updating goal %s: %v", ErrPersistence, id, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}
