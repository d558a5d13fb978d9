package goalstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGoal(t *testing.T) {
	goal, ok := decodeGoal("rec1", map[string]interface{}{
		"name":              "Emergency fund",
		"target_amount":     10000.0,
		"saved_amount":      3500.0,
		"is_tracked":        true,
		"linked_account_id": "acc1",
	})

	require.True(t, ok)
	assert.Equal(t, "rec1", goal.ID)
	assert.Equal(t, "Emergency fund", goal.Name)
	assert.Equal(t, 10000.0, goal.Target)
	assert.Equal(t, 3500.0, goal.Saved)
	assert.True(t, goal.IsTracked)
	assert.Equal(t, "acc1", goal.LinkedAccountID)
}

func TestDecodeGoalLooseNumericTypes(t *testing.T) {
	goal, ok := decodeGoal("rec2", map[string]interface{}{
		"name":          "Holiday",
		"target_amount": "2500",
		"saved_amount":  100,
	})

	require.True(t, ok)
	assert.Equal(t, 2500.0, goal.Target)
	assert.Equal(t, 100.0, goal.Saved)
	assert.False(t, goal.IsTracked)
	assert.Equal(t, "", goal.LinkedAccountID)
}

func TestDecodeGoalMalformedFieldsFallBackToZero(t *testing.T) {
	goal, ok := decodeGoal("rec3", map[string]interface{}{
		"name":              "New car",
		"target_amount":     "lots",
		"saved_amount":      nil,
		"is_tracked":        "yes",
		"linked_account_id": 42,
	})

	require.True(t, ok)
	assert.Equal(t, 0.0, goal.Target)
	assert.Equal(t, 0.0, goal.Saved)
	assert.False(t, goal.IsTracked)
	assert.Equal(t, "", goal.LinkedAccountID)
	assert.Equal(t, 0.0, goal.Progress())
}

func TestDecodeGoalWithoutNameIsSkipped(t *testing.T) {
	_, ok := decodeGoal("rec4", map[string]interface{}{
		"target_amount": 500.0,
	})
	assert.False(t, ok)

	_, ok = decodeGoal("rec5", map[string]interface{}{
		"name": "",
	})
	assert.False(t, ok)
}
