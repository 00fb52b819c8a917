package inventory

import (
	"fmt"

	"distribution/internal/pkg/errs"
)

// Tier identifies which ownership scope a stock record belongs to.
// Stock flows downward through the tiers as an order advances: the agent's
// personal allocation, the leader's regional allocation, and finally the
// company-wide main warehouse.
type Tier int

const (
	// TierUnknown represents an invalid or undefined tier.
	// This value (0) helps catch uninitialized Tier values.
	TierUnknown Tier = iota

	// TierAgent is a field agent's personal allocation.
	TierAgent

	// TierLeader is a regional leader's allocation.
	TierLeader

	// TierMain is the company-wide warehouse stock.
	TierMain
)

func getTierStrings() map[Tier]string {
	return map[Tier]string{
		TierUnknown: "unknown",
		TierAgent:   "agent",
		TierLeader:  "leader",
		TierMain:    "main",
	}
}

func getValidTierStrings() map[Tier]string {
	//nolint:exhaustive // TierUnknown is intentionally excluded as it's invalid
	return map[Tier]string{
		TierAgent:  "agent",
		TierLeader: "leader",
		TierMain:   "main",
	}
}

// Validate checks that the tier is one of agent, leader, or main.
func (t Tier) Validate() error {
	if _, ok := getValidTierStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("tier is invalid", fmt.Errorf("%d is not a valid tier", t))
	}
	return nil
}

// String returns the lowercase tier name. Implements fmt.Stringer and is
// safe to call on any Tier value, including invalid ones.
func (t Tier) String() string {
	if str, ok := getTierStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// TierFromString parses a tier from its lowercase name, as used in API
// payloads and the database.
func TierFromString(s string) (Tier, error) {
	for tier, name := range getValidTierStrings() {
		if name == s {
			return tier, nil
		}
	}
	return TierUnknown, errs.NewValueIsInvalidErrorWithCause("tier is invalid", fmt.Errorf("%q is not a valid tier", s))
}
