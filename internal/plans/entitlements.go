package plans

// CanUseFeature reports whether a plan tier includes a capability. It is
// total: unknown tiers and unknown feature keys evaluate to false rather
// than erroring.
func CanUseFeature(tier Tier, feature Feature) bool {
	info, ok := catalog[tier]
	if !ok {
		return false
	}
	switch feature {
	case FeatureEmailNotifications:
		return info.Features.EmailNotifications
	case FeatureWhatsAppNotifications:
		return info.Features.WhatsAppNotifications
	case FeatureCustomPhoto:
		return info.Features.CustomPhoto
	case FeatureLocationTracking:
		return info.Features.LocationTracking
	case FeatureEarlyAccess:
		return info.Features.EarlyAccess
	}
	return false
}

// CanAddMorePets reports whether an account on the given tier may register
// another pet on top of currentPetCount. Unlimited tiers always allow it.
func CanAddMorePets(tier Tier, currentPetCount int) bool {
	info, ok := catalog[tier]
	if !ok {
		return false
	}
	if info.Features.Unlimited {
		return true
	}
	return currentPetCount < info.Features.MaxPets
}

// Color returns the UI color token for a tier, defaulting to the basic token.
func Color(tier Tier) string {
	return Get(tier).Color
}

// Label returns the display name for a tier, defaulting to the basic label.
func Label(tier Tier) string {
	return Get(tier).Name
}
