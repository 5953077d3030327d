// ABOUTME: Test suite for quadrant chart positioning
// ABOUTME: Verifies the influence/support coordinate mapping
package viz

import (
	"testing"

	"github.com/harperreed/stakeholdr/models"
)

func TestQuadrantPosition(t *testing.T) {
	tests := []struct {
		influence string
		support   string
		wantX     float64
		wantY     float64
	}{
		{models.InfluenceHigh, models.SupportChampion, 0.85, 0.85},
		{models.InfluenceHigh, models.SupportResistant, 0.2, 0.85},
		{models.InfluenceMedium, models.SupportNeutral, 0.5, 0.5},
		{models.InfluenceLow, models.SupportSupporter, 0.7, 0.15},
		{"", "", 0.5, 0.5},
		{"unknown", "unknown", 0.5, 0.5},
	}

	for _, tt := range tests {
		x, y := QuadrantPosition(tt.influence, tt.support)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("QuadrantPosition(%q, %q) = (%v, %v), want (%v, %v)",
				tt.influence, tt.support, x, y, tt.wantX, tt.wantY)
		}
	}
}
