package subscription

import (
	"github.com/shopspring/decimal"
)

// Tier identifies a subscription plan level
type Tier string

const (
	TierStarter    Tier = "starter"
	TierBusiness   Tier = "business"
	TierEnterprise Tier = "enterprise"
)

// BillingCycle is the billing period of a subscription
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleAnnual  BillingCycle = "annual"
)

// Plan describes an offered subscription tier. Plans are static platform data.
type Plan struct {
	Tier         Tier            `json:"tier"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	AnnualPrice  decimal.Decimal `json:"annual_price"`
	Features     []string        `json:"features"`
}

// DefaultPlans returns the platform's built-in subscription plans
func DefaultPlans() []Plan {
	return []Plan{
		{
			Tier:         TierStarter,
			Name:         "Starter",
			MonthlyPrice: decimal.NewFromInt(150),
			AnnualPrice:  decimal.NewFromInt(1500),
			Features:     []string{"Up to 10 listings", "Basic storefront", "Email support"},
		},
		{
			Tier:         TierBusiness,
			Name:         "Business",
			MonthlyPrice: decimal.NewFromInt(450),
			AnnualPrice:  decimal.NewFromInt(4500),
			Features:     []string{"Unlimited listings", "Custom storefront", "Order analytics", "Priority support"},
		},
		{
			Tier:         TierEnterprise,
			Name:         "Enterprise",
			MonthlyPrice: decimal.NewFromInt(1200),
			AnnualPrice:  decimal.NewFromInt(12000),
			Features:     []string{"Unlimited listings", "Dedicated account manager", "API access", "Custom integrations"},
		},
	}
}

// FindPlan returns the plan for a tier, if offered
func FindPlan(plans []Plan, tier Tier) (Plan, bool) {
	for _, p := range plans {
		if p.Tier == tier {
			return p, true
		}
	}
	return Plan{}, false
}

// PriceFor returns the plan's price for the given billing cycle
func (p Plan) PriceFor(cycle BillingCycle) decimal.Decimal {
	if cycle == CycleAnnual {
		return p.AnnualPrice
	}
	return p.MonthlyPrice
}
