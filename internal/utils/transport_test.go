package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecoshare-backend/internal/utils"
)

func TestHaversineKm(t *testing.T) {
	t.Run("Zero Distance", func(t *testing.T) {
		assert.Equal(t, 0.0, utils.HaversineKm(24.8607, 67.0011, 24.8607, 67.0011))
	})

	t.Run("Karachi To Lahore", func(t *testing.T) {
		// roughly 1020 km great-circle
		dist := utils.HaversineKm(24.8607, 67.0011, 31.5204, 74.3587)
		assert.InDelta(t, 1020, dist, 20)
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := utils.HaversineKm(24.86, 67.00, 24.90, 67.10)
		b := utils.HaversineKm(24.90, 67.10, 24.86, 67.00)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestEstimateTransportCostCents(t *testing.T) {
	t.Run("Zero Distance Costs Nothing", func(t *testing.T) {
		assert.Equal(t, int64(0), utils.EstimateTransportCostCents(24.86, 67.0, 24.86, 67.0, 5000))
	})

	t.Run("Scales With Rate", func(t *testing.T) {
		atBase := utils.EstimateTransportCostCents(24.86, 67.00, 24.90, 67.10, 5000)
		atDouble := utils.EstimateTransportCostCents(24.86, 67.00, 24.90, 67.10, 10000)
		assert.Greater(t, atBase, int64(0))
		assert.InDelta(t, float64(2*atBase), float64(atDouble), 1)
	})
}
