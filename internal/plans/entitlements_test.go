package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanUseFeature_MatchesCatalog(t *testing.T) {
	features := []Feature{
		FeatureEmailNotifications,
		FeatureWhatsAppNotifications,
		FeatureCustomPhoto,
		FeatureLocationTracking,
		FeatureEarlyAccess,
	}

	for _, tier := range Tiers() {
		info := Get(tier)
		expected := map[Feature]bool{
			FeatureEmailNotifications:    info.Features.EmailNotifications,
			FeatureWhatsAppNotifications: info.Features.WhatsAppNotifications,
			FeatureCustomPhoto:           info.Features.CustomPhoto,
			FeatureLocationTracking:      info.Features.LocationTracking,
			FeatureEarlyAccess:           info.Features.EarlyAccess,
		}
		for _, f := range features {
			assert.Equal(t, expected[f], CanUseFeature(tier, f), "tier %s feature %s", tier, f)
		}
	}
}

func TestCanUseFeature_UnknownInputs(t *testing.T) {
	assert.False(t, CanUseFeature(Tier("platinum"), FeatureCustomPhoto))
	assert.False(t, CanUseFeature(Tier(""), FeatureEmailNotifications))
	assert.False(t, CanUseFeature(TierVIP, Feature("teleportation")))
}

func TestCanAddMorePets(t *testing.T) {
	tests := []struct {
		name     string
		tier     Tier
		count    int
		expected bool
	}{
		{"basic with no pets", TierBasic, 0, true},
		{"basic at limit", TierBasic, 1, false},
		{"basic over limit", TierBasic, 5, false},
		{"comfort under limit", TierComfort, 2, true},
		{"comfort at limit", TierComfort, 3, false},
		{"vip small count", TierVIP, 0, true},
		{"vip large count", TierVIP, 100000, true},
		{"unknown tier", Tier("platinum"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanAddMorePets(tt.tier, tt.count))
		})
	}
}

func TestParseTier(t *testing.T) {
	tier, ok := ParseTier("comfort")
	assert.True(t, ok)
	assert.Equal(t, TierComfort, tier)

	tier, ok = ParseTier("gold")
	assert.False(t, ok)
	assert.Equal(t, TierBasic, tier)

	tier, ok = ParseTier("")
	assert.False(t, ok)
	assert.Equal(t, TierBasic, tier)
}

func TestCatalogReturnsCopy(t *testing.T) {
	c := Catalog()
	entry := c[TierBasic]
	entry.MonthlyPrice = 100
	c[TierBasic] = entry

	assert.Equal(t, 0.0, Get(TierBasic).MonthlyPrice)
}

func TestColorAndLabelFallBackToBasic(t *testing.T) {
	assert.Equal(t, "pet-purple", Color(TierVIP))
	assert.Equal(t, "pet-green", Color(Tier("gold")))
	assert.Equal(t, "VIP", Label(TierVIP))
	assert.Equal(t, "Basic", Label(Tier("gold")))
}
