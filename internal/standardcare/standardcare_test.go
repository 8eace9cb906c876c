package standardcare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/hkpcalc/internal/model"
)

func derive(t *testing.T, m map[model.ToothID]model.FindingCode) map[model.ToothID]model.TreatmentCode {
	t.Helper()
	c, err := model.NewFindingChart(m)
	require.NoError(t, err)
	return Derive(c).Map()
}

func TestDerive_BridgeWithCariousAbutments(t *testing.T) {
	got := derive(t, map[model.ToothID]model.FindingCode{
		14: model.FindingMissing,
		13: model.FindingCarious,
		15: model.FindingCarious,
	})
	assert.Equal(t, map[model.ToothID]model.TreatmentCode{
		14: model.TreatmentBridgePontic,
		13: model.TreatmentAbutmentCrown,
		15: model.TreatmentAbutmentCrown,
	}, got)
}

func TestDerive_HealthyNeighboursBecomeAbutments(t *testing.T) {
	got := derive(t, map[model.ToothID]model.FindingCode{25: model.FindingMissing})
	assert.Equal(t, map[model.ToothID]model.TreatmentCode{
		24: model.TreatmentAbutmentCrown,
		25: model.TreatmentBridgePontic,
		26: model.TreatmentAbutmentCrown,
	}, got)
}

func TestDerive_PerToothRules(t *testing.T) {
	got := derive(t, map[model.ToothID]model.FindingCode{
		16: model.FindingCarious,
		26: model.FindingCariousRootTreated,
		36: model.FindingNonRestorable,
		46: model.FindingRootRemnant,
	})
	assert.Equal(t, map[model.ToothID]model.TreatmentCode{
		16: model.TreatmentCrown,
		26: model.TreatmentCrown,
		36: model.TreatmentExtraction,
		46: model.TreatmentExtraction,
	}, got)
}

func TestDerive_UnhandledCodesAreAbsent(t *testing.T) {
	got := derive(t, map[model.ToothID]model.FindingCode{
		11: model.FindingCrown,
		21: model.FindingVeneer,
		36: model.FindingImplant,
		46: model.FindingCeramicCrown,
	})
	assert.Empty(t, got)
}

func TestDerive_NeighbourOverridesExtraction(t *testing.T) {
	got := derive(t, map[model.ToothID]model.FindingCode{
		35: model.FindingMissing,
		34: model.FindingNonRestorable,
	})
	assert.Equal(t, model.TreatmentAbutmentCrown, got[34])
	assert.Equal(t, model.TreatmentAbutmentCrown, got[36])
}

func TestDerive_MultiToothGap(t *testing.T) {
	got := derive(t, map[model.ToothID]model.FindingCode{
		14: model.FindingMissing,
		15: model.FindingMissing,
		16: model.FindingMissing,
	})
	assert.Equal(t, map[model.ToothID]model.TreatmentCode{
		13: model.TreatmentAbutmentCrown,
		14: model.TreatmentBridgePontic,
		15: model.TreatmentBridgePontic,
		16: model.TreatmentBridgePontic,
		17: model.TreatmentAbutmentCrown,
	}, got)
}

func TestDerive_MidlineAndLastMolar(t *testing.T) {
	got := derive(t, map[model.ToothID]model.FindingCode{
		11: model.FindingMissing,
		48: model.FindingMissing,
	})
	assert.Equal(t, model.TreatmentAbutmentCrown, got[21])
	assert.Equal(t, model.TreatmentAbutmentCrown, got[12])
	assert.Equal(t, model.TreatmentAbutmentCrown, got[47])
	assert.Len(t, got, 5)
}

func TestDerive_DoesNotModifyInput(t *testing.T) {
	c, err := model.NewFindingChart(map[model.ToothID]model.FindingCode{14: model.FindingMissing})
	require.NoError(t, err)
	_ = Derive(c)
	assert.Equal(t, 1, c.Len())
}
