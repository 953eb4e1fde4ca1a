package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

func TestEnsure_NewDayResetsEverything(t *testing.T) {
	daily := entities.DailyQuests{Date: "2024-01-01", Quests: Instances()}
	for _, tpl := range Templates {
		Advance(&daily, tpl.Type, tpl.Target)
	}
	require.True(t, daily.AllCompleted())
	require.True(t, ClaimBonus(&daily))

	changed := Ensure(&daily, "2024-01-02")

	assert.True(t, changed)
	assert.Equal(t, "2024-01-02", daily.Date)
	assert.False(t, daily.BonusClaimed)
	require.Len(t, daily.Quests, len(Templates))
	for _, q := range daily.Quests {
		assert.Zero(t, q.Progress)
		assert.False(t, q.Completed)
	}
}

func TestEnsure_SameDayKeepsProgress(t *testing.T) {
	daily := entities.DailyQuests{Date: "2024-01-01", Quests: Instances()}
	Advance(&daily, entities.QuestReview, 2)

	assert.False(t, Ensure(&daily, "2024-01-01"))
	assert.Equal(t, 2, daily.Quests[2].Progress)
}

func TestEnsure_EmptyListRegenerates(t *testing.T) {
	daily := entities.DailyQuests{Date: "2024-01-01", BonusClaimed: true}

	assert.True(t, Ensure(&daily, "2024-01-01"))
	assert.Len(t, daily.Quests, len(Templates))
	assert.False(t, daily.BonusClaimed)
}

func TestAdvance(t *testing.T) {
	daily := entities.DailyQuests{Date: "2024-01-01", Quests: Instances()}

	res := Advance(&daily, entities.QuestXP, 12)
	assert.True(t, res.Updated)
	assert.Empty(t, res.Completed)
	assert.Equal(t, 12, daily.Quests[1].Progress)

	res = Advance(&daily, entities.QuestXP, 50)
	require.Len(t, res.Completed, 1)
	assert.Equal(t, "xp-20", res.Completed[0].ID)
	assert.Equal(t, 20, daily.Quests[1].Progress)

	res = Advance(&daily, entities.QuestXP, 5)
	assert.False(t, res.Updated)
	assert.Empty(t, res.Completed)
}

func TestAdvance_ClampsNegative(t *testing.T) {
	daily := entities.DailyQuests{Date: "2024-01-01", Quests: Instances()}

	Advance(&daily, entities.QuestXP, -30)

	assert.Zero(t, daily.Quests[1].Progress)
	assert.False(t, daily.Quests[1].Completed)
}

func TestClaimBonus_OnlyOnce(t *testing.T) {
	daily := entities.DailyQuests{Date: "2024-01-01", Quests: Instances()}
	assert.False(t, ClaimBonus(&daily))

	for _, tpl := range Templates {
		Advance(&daily, tpl.Type, tpl.Target)
	}
	assert.True(t, ClaimBonus(&daily))
	assert.False(t, ClaimBonus(&daily))
}
