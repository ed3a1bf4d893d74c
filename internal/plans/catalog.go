package plans

// Tier is a subscription plan tier. The set is closed: basic, comfort, vip.
type Tier string

const (
	TierBasic   Tier = "basic"
	TierComfort Tier = "comfort"
	TierVIP     Tier = "vip"
)

// Feature is a plan capability key.
type Feature string

const (
	FeatureEmailNotifications    Feature = "email_notifications"
	FeatureWhatsAppNotifications Feature = "whatsapp_notifications"
	FeatureCustomPhoto           Feature = "custom_photo"
	FeatureLocationTracking      Feature = "location_tracking"
	FeatureEarlyAccess           Feature = "early_access"
)

// Features is the capability set of a plan tier.
type Features struct {
	MaxPets               int  `json:"max_pets"`
	Unlimited             bool `json:"unlimited"`
	EmailNotifications    bool `json:"email_notifications"`
	WhatsAppNotifications bool `json:"whatsapp_notifications"`
	CustomPhoto           bool `json:"custom_photo"`
	LocationTracking      bool `json:"location_tracking"`
	EarlyAccess           bool `json:"early_access"`
}

// Info describes a plan tier for display and billing.
type Info struct {
	ID           Tier     `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MonthlyPrice float64  `json:"monthly_price"`
	Color        string   `json:"color"`
	Features     Features `json:"features"`
}

// Predefined plans
var catalog = map[Tier]Info{
	TierBasic: {
		ID:           TierBasic,
		Name:         "Basic",
		Description:  "Get started with the essentials",
		MonthlyPrice: 0,
		Color:        "pet-green",
		Features: Features{
			MaxPets: 1,
		},
	},
	TierComfort: {
		ID:           TierComfort,
		Name:         "Comfort",
		Description:  "More features for peace of mind",
		MonthlyPrice: 4.99,
		Color:        "pet-purple-light",
		Features: Features{
			MaxPets:            3,
			EmailNotifications: true,
			CustomPhoto:        true,
		},
	},
	TierVIP: {
		ID:           TierVIP,
		Name:         "VIP",
		Description:  "Ultimate pet protection",
		MonthlyPrice: 9.99,
		Color:        "pet-purple",
		Features: Features{
			MaxPets:               999,
			Unlimited:             true,
			EmailNotifications:    true,
			WhatsAppNotifications: true,
			CustomPhoto:           true,
			LocationTracking:      true,
			EarlyAccess:           true,
		},
	},
}

// Tiers lists every tier in upgrade order.
func Tiers() []Tier {
	return []Tier{TierBasic, TierComfort, TierVIP}
}

// Get returns the catalog entry for a tier. Unknown tiers fall back to the
// basic entry so callers always get a defined, most-restrictive feature set.
func Get(tier Tier) Info {
	if info, ok := catalog[tier]; ok {
		return info
	}
	return catalog[TierBasic]
}

// Catalog returns a copy of all plan entries keyed by tier.
func Catalog() map[Tier]Info {
	result := make(map[Tier]Info, len(catalog))
	for k, v := range catalog {
		result[k] = v
	}
	return result
}

// ParseTier maps a stored plan value onto the closed tier enum. Unknown or
// empty values resolve to basic with ok=false.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierBasic, TierComfort, TierVIP:
		return Tier(s), true
	}
	return TierBasic, false
}

// Valid reports whether s names one of the three plan tiers.
func Valid(s string) bool {
	_, ok := ParseTier(s)
	return ok
}
