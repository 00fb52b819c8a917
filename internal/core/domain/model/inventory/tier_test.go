package inventory_test

import (
	"testing"

	"distribution/internal/core/domain/model/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTier_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		tier    inventory.Tier
		wantErr bool
	}{
		{name: "agent_is_valid", tier: inventory.TierAgent, wantErr: false},
		{name: "leader_is_valid", tier: inventory.TierLeader, wantErr: false},
		{name: "main_is_valid", tier: inventory.TierMain, wantErr: false},
		{name: "unknown_is_invalid", tier: inventory.TierUnknown, wantErr: true},
		{name: "out_of_range_is_invalid", tier: inventory.Tier(42), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tier.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "agent", inventory.TierAgent.String())
	assert.Equal(t, "leader", inventory.TierLeader.String())
	assert.Equal(t, "main", inventory.TierMain.String())
	assert.Equal(t, "unknown", inventory.TierUnknown.String())
	assert.Equal(t, "unknown", inventory.Tier(42).String())
}

func TestTierFromString(t *testing.T) {
	t.Run("parses_valid_names", func(t *testing.T) {
		for name, want := range map[string]inventory.Tier{
			"agent":  inventory.TierAgent,
			"leader": inventory.TierLeader,
			"main":   inventory.TierMain,
		} {
			tier, err := inventory.TierFromString(name)
			require.NoError(t, err)
			assert.Equal(t, want, tier)
		}
	})

	t.Run("rejects_unknown_names", func(t *testing.T) {
		_, err := inventory.TierFromString("warehouse")
		require.Error(t, err)
	})
}
