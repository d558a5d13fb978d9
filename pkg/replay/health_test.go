package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthForSavingsRate(t *testing.T) {
	assert.Equal(t, "Excellent", HealthForSavingsRate(35).Status)
	assert.Equal(t, "Good", HealthForSavingsRate(15).Status)
	assert.Equal(t, "Fair", HealthForSavingsRate(5).Status)
	assert.Equal(t, "Needs Attention", HealthForSavingsRate(-10).Status)
}

func TestHealthTierBoundaries(t *testing.T) {
	// boundaries belong to the lower tier
	assert.Equal(t, "Good", HealthForSavingsRate(20).Status)
	assert.Equal(t, "Fair", HealthForSavingsRate(10).Status)
	assert.Equal(t, "Needs Attention", HealthForSavingsRate(0).Status)
}
