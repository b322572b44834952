package engine

import (
	"testing"
	"time"

	"decision-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	return New(testCalculator(), DefaultScoringWeights()).WithClock(func() time.Time { return testNow })
}

func TestGenerateDecisions_NilLocationIsInvalid(t *testing.T) {
	fc := createBaseContext(createTestField("North 40", 50, "corn"))
	fc.Location = nil

	_, _, err := testEngine().GenerateDecisions(fc)

	assert.ErrorIs(t, err, ErrInvalidContext, "A context without a location cannot be evaluated")
}

func TestGenerateDecisions_NoFieldsYieldsEmptyList(t *testing.T) {
	fc := createBaseContext()

	decisions, scores, err := testEngine().GenerateDecisions(fc)

	require.NoError(t, err, "An empty farm is a valid no-recommendations outcome")
	assert.Empty(t, decisions)
	assert.Empty(t, scores)
}

func TestGenerateDecisions_NilFarmIDYieldsEmptyList(t *testing.T) {
	fc := createBaseContext(createTestField("North 40", 50, "corn"))
	fc.FarmID = uuid.Nil

	decisions, _, err := testEngine().GenerateDecisions(fc)

	require.NoError(t, err)
	assert.Empty(t, decisions)
}

func TestGenerateDecisions_OverdueSprayScenario(t *testing.T) {
	field := createTestField("North 40", 50, "corn")
	field.LastSprayDate = daysAgoUnix(40)

	fc := createBaseContext(field)
	fc.Weather.Humidity = 75
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 85, 90)}

	decisions, scores, err := testEngine().GenerateDecisions(fc)

	require.NoError(t, err)
	require.Len(t, decisions, 1, "Only the spray domain has a trigger in this scenario")

	d := decisions[0]
	assert.Equal(t, models.DecisionSpray, d.Type)
	assert.Equal(t, models.PriorityUrgent, d.Priority)
	assert.Greater(t, d.Financial.EstimatedRevenue, 0.0)

	score, ok := scores[d.ID]
	require.True(t, ok, "Every decision gets a score entry")
	assert.Equal(t, 100.0, score.Urgency)
	assert.Greater(t, score.Total, 0.0)
	assert.LessOrEqual(t, score.Total, 100.0)
}

func TestGenerateDecisions_RanksByTotalScoreDescending(t *testing.T) {
	sprayField := createTestField("North 40", 50, "corn")
	sprayField.LastSprayDate = daysAgoUnix(40)

	fc := createBaseContext(sprayField)
	fc.Weather.Humidity = 75
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 85, 90)}
	fc.Livestock = &models.Livestock{Herds: []models.HerdRecord{
		{Species: "cattle", Count: 80, LastVaccinationDate: daysAgoUnix(400)},
	}}
	fc.MarketFeed = []models.MarketOpportunity{
		{Crop: "corn", CurrentPrice: 220, PriceChangePct: 3, Recommendation: models.MarketSell},
	}

	decisions, scores, err := testEngine().GenerateDecisions(fc)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(decisions), 3)
	for i := 1; i < len(decisions); i++ {
		assert.GreaterOrEqual(t,
			scores[decisions[i-1].ID].Total, scores[decisions[i].ID].Total,
			"Ranking must be non-increasing in total score")
	}
}

func TestGenerateDecisions_DeterministicOrdering(t *testing.T) {
	sprayField := createTestField("North 40", 50, "corn")
	sprayField.LastSprayDate = daysAgoUnix(40)

	fc := createBaseContext(sprayField)
	fc.Weather.Humidity = 75
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 85, 90)}
	fc.Forecast = createDryForecast(0.5, 30)
	fc.Livestock = &models.Livestock{Herds: []models.HerdRecord{
		{Species: "cattle", Count: 80, LastVaccinationDate: daysAgoUnix(400)},
	}}
	fc.MarketFeed = []models.MarketOpportunity{
		{Crop: "corn", CurrentPrice: 220, PriceChangePct: 8, Recommendation: models.MarketSell},
	}

	eng := testEngine()

	first, _, err := eng.GenerateDecisions(fc)
	require.NoError(t, err)
	second, _, err := eng.GenerateDecisions(fc)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type,
			"Identical contexts must rank identically on every call")
		assert.Equal(t, first[i].Priority, second[i].Priority)
		assert.Equal(t, first[i].Title, second[i].Title)
	}
}

func TestGenerateDecisions_QuietFarmHasNoRecommendations(t *testing.T) {
	field := createTestField("North 40", 50, "corn")
	field.LastSprayDate = daysAgoUnix(3)
	field.PlantingDate = daysAgoUnix(30)

	fc := createBaseContext(field)
	fc.SprayWindows = []models.Window{createTestWindow(4, 6, 85, 90)}
	fc.HarvestWindows = []models.Window{createTestWindow(12, 8, 80, 85)}

	decisions, _, err := testEngine().GenerateDecisions(fc)

	require.NoError(t, err)
	assert.Empty(t, decisions, "A well-managed farm legitimately gets an empty list")
}
