package domain

// RecommendationTier buckets how much income growth an owner needs
type RecommendationTier string

const (
	TierIncomeSufficient  RecommendationTier = "INCOME_SUFFICIENT"
	TierSmallIncrease     RecommendationTier = "SMALL_INCREASE"
	TierModerateGrowth    RecommendationTier = "MODERATE_GROWTH"
	TierSignificantGrowth RecommendationTier = "SIGNIFICANT_GROWTH"
)

// Tier boundaries on the income growth needed, in percent (inclusive upper bounds)
const (
	SmallIncreaseMaxPercent  = 5.0
	ModerateGrowthMaxPercent = 15.0
)

// TierAdvice is the fixed text catalog attached to a tier
type TierAdvice struct {
	Recommendation string
	ActionItems    []string
}

var tierCatalog = map[RecommendationTier]TierAdvice{
	TierIncomeSufficient: {
		Recommendation: "Your current income is sufficient to cover predicted expenses and meet your savings goal.",
		ActionItems: []string{
			"Consider increasing your savings goal",
			"Look into investment opportunities for excess savings",
			"Build an emergency fund if you don't already have one",
		},
	},
	TierSmallIncrease: {
		Recommendation: "You need a small income increase to meet your savings goals based on predicted expenses.",
		ActionItems: []string{
			"Look for small side gigs or freelance opportunities",
			"Consider asking for a small raise at work",
			"Find small areas to reduce expenses",
		},
	},
	TierModerateGrowth: {
		Recommendation: "You need moderate income growth to achieve your financial goals.",
		ActionItems: []string{
			"Consider upskilling to qualify for higher-paying roles",
			"Look for promotion opportunities in your current workplace",
			"Cut non-essential expenses in high-growth categories",
			"Consider a part-time secondary income source",
		},
	},
	TierSignificantGrowth: {
		Recommendation: "Significant income growth is needed to meet your financial goals.",
		ActionItems: []string{
			"Consider career change options with better income potential",
			"Look into additional income streams or side businesses",
			"Reassess your budget and identify major expense categories to reduce",
			"Consider adjusting your savings goal temporarily while growing income",
		},
	},
}

// Advice returns the catalog entry for the tier.
// The action item slice is a copy and may be modified by the caller.
func (t RecommendationTier) Advice() TierAdvice {
	advice := tierCatalog[t]
	items := make([]string, len(advice.ActionItems))
	copy(items, advice.ActionItems)
	advice.ActionItems = items
	return advice
}

// Rank orders tiers by effort required (higher = more effort)
func (t RecommendationTier) Rank() int {
	switch t {
	case TierIncomeSufficient:
		return 0
	case TierSmallIncrease:
		return 1
	case TierModerateGrowth:
		return 2
	case TierSignificantGrowth:
		return 3
	default:
		return -1
	}
}

// SelectTier applies the tier policy. Rules are evaluated in order, first match wins:
//  1. currentIncome > requiredIncome  -> INCOME_SUFFICIENT
//  2. growthNeeded <= 5               -> SMALL_INCREASE
//  3. growthNeeded <= 15              -> MODERATE_GROWTH
//  4. otherwise                       -> SIGNIFICANT_GROWTH
func SelectTier(currentIncome, requiredIncome, growthNeededPercent float64) RecommendationTier {
	switch {
	case currentIncome > requiredIncome:
		return TierIncomeSufficient
	case growthNeededPercent <= SmallIncreaseMaxPercent:
		return TierSmallIncrease
	case growthNeededPercent <= ModerateGrowthMaxPercent:
		return TierModerateGrowth
	default:
		return TierSignificantGrowth
	}
}
