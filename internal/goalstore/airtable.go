package goalstore

import (
	"fmt"
	"strconv"

	airtable "github.com/crufter/airtable-go"
	"k8s.io/klog"

	"github.com/bdewet/goalops/pkg/ledger"
)

// Airtable field names, matching the goal document schema.
const (
	fieldName            = "name"
	fieldTarget          = "target_amount"
	fieldSaved           = "saved_amount"
	fieldIsTracked       = "is_tracked"
	fieldLinkedAccountID = "linked_account_id"
)

type goalRecord struct {
	ID     string
	Fields map[string]interface{}
}

type AirtableStore struct {
	client *airtable.Client
	table  string
}

func NewAirtableStore(apiKey, baseID, table string) (*AirtableStore, error) {
	client, err := airtable.New(apiKey, baseID)
	if err != nil {
		return nil, fmt.Errorf("%w: creating airtable client: %v", ErrPersistence, err)
	}

	return &AirtableStore{client: client, table: table}, nil
}

func (s *AirtableStore) List() ([]ledger.Goal, error) {
	records := []goalRecord{}

	if err := s.client.ListRecords(s.table, &records); err != nil {
		return nil, fmt.Errorf("%w: listing goal records: %v", ErrPersistence, err)
	}

	goals := []ledger.Goal{}

	for _, record := range records {
		goal, ok := decodeGoal(record.ID, record.Fields)
		if !ok {
			klog.Warningf("Skipping goal record %s with missing or malformed fields", record.ID)
			continue
		}

		goals = append(goals, goal)
	}

	return goals, nil
}

func (s *AirtableStore) Goal(id string) (ledger.Goal, error) {
	goals, err := s.List()
	if err != nil {
		return ledger.Goal{}, err
	}

	for _, goal := range goals {
		if goal.ID == id {
			return goal, nil
		}
	}

	return ledger.Goal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *AirtableStore) Create(goal ledger.Goal) error {
	record := goalRecord{
		Fields: map[string]interface{}{
			fieldName:            goal.Name,
			fieldTarget:          goal.Target,
			fieldSaved:           goal.Saved,
			fieldIsTracked:       goal.IsTracked,
			fieldLinkedAccountID: goal.LinkedAccountID,
		},
	}

	if err := s.client.CreateRecord(s.table, &record); err != nil {
		return fmt.Errorf("%w: creating goal record: %v", ErrPersistence, err)
	}

	return nil
}

func (s *AirtableStore) UpdateSaved(id string, saved float64) error {
	updated := map[string]interface{}{fieldSaved: saved}

	record := goalRecord{}
	if err := s.client.UpdateRecord(s.table, id, updated, &record); err != nil {
		return fmt.Errorf("%w: updating goal record %s: %v", ErrPersistence, id, err)
	}

	return nil
}

// decodeGoal reads a loosely-typed record into a Goal. A record without a
// name is unusable and reports ok false; other malformed fields fall back to
// zero values rather than failing the whole listing.
func decodeGoal(id string, fields map[string]interface{}) (ledger.Goal, bool) {
	name, ok := fields[fieldName].(string)
	if !ok || name == "" {
		return ledger.Goal{}, false
	}

	linkedAccountID, _ := fields[fieldLinkedAccountID].(string)
	isTracked, _ := fields[fieldIsTracked].(bool)

	return ledger.Goal{
		ID:              id,
		Name:            name,
		Target:          numericField(fields[fieldTarget]),
		Saved:           numericField(fields[fieldSaved]),
		IsTracked:       isTracked,
		LinkedAccountID: linkedAccountID,
	}, true
}

func numericField(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}

		return parsed
	default:
		return 0
	}
}
