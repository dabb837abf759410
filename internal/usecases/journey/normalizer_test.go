package journey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/journey-insights-api/internal/domain"
)

var processedAt = time.Date(2024, 3, 10, 14, 30, 0, 0, time.FixedZone("BRT", -3*3600))

func TestSummarizeSession(t *testing.T) {
	tests := []struct {
		name     string
		moment   domain.Moment
		index    int
		expected domain.SessionRow
	}{
		{
			name: "visita da Meta sem origem reconhecida vira facebook",
			moment: domain.Moment{
				OccurredAt:    processedAt.Add(-48 * time.Hour),
				Source:        "an unknown source",
				UTMParameters: domain.UTMParameters{Source: "meta_id"},
			},
			index:    0,
			expected: domain.SessionRow{Label: "Session 1", RelativeTime: "2 days before", SourceLabel: "facebook"},
		},
		{
			name: "origem desconhecida com outro utm continua igual",
			moment: domain.Moment{
				OccurredAt:    processedAt.Add(-3 * time.Hour),
				Source:        "an unknown source",
				UTMParameters: domain.UTMParameters{Source: "google"},
			},
			index:    2,
			expected: domain.SessionRow{Label: "Session 3", RelativeTime: "3 hours before", SourceLabel: "an unknown source"},
		},
		{
			name: "utm da Meta com origem conhecida continua igual",
			moment: domain.Moment{
				OccurredAt:    processedAt.Add(-10 * time.Minute),
				Source:        "Instagram",
				UTMParameters: domain.UTMParameters{Source: "meta_id"},
			},
			index:    1,
			expected: domain.SessionRow{Label: "Session 2", RelativeTime: "10 minutes before", SourceLabel: "Instagram"},
		},
		{
			name: "sessão depois do pedido",
			moment: domain.Moment{
				OccurredAt: processedAt.Add(24 * time.Hour),
				Source:     "Google",
			},
			index:    0,
			expected: domain.SessionRow{Label: "Session 1", RelativeTime: "1 day after", SourceLabel: "Google"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.moment

			got := SummarizeSession(tt.moment, tt.index, processedAt)

			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got.RelativeTime, "ago")
			assert.Equal(t, before, tt.moment, "o momento não pode ser alterado")
		})
	}
}

func TestSummarizeOrder(t *testing.T) {
	t.Run("pedido sem jornada", func(t *testing.T) {
		got := SummarizeOrder(domain.Order{Name: "#1001", ProcessedAt: processedAt})

		assert.Equal(t, "#1001", got.Name)
		assert.Equal(t, "10.03.24", got.ProcessedAtFormatted)
		assert.Nil(t, got.SessionCount)
		assert.Nil(t, got.DaysToConversion)
		assert.Empty(t, got.Sessions)
	})

	t.Run("pedido com três momentos", func(t *testing.T) {
		order := domain.Order{
			Name:        "#1002",
			ProcessedAt: processedAt,
			CustomerJourney: &domain.CustomerJourney{
				DaysToConversion: 4,
				Moments: []domain.Moment{
					{OccurredAt: processedAt.Add(-96 * time.Hour), Source: "an unknown source", UTMParameters: domain.UTMParameters{Source: "meta_id"}},
					{OccurredAt: processedAt.Add(-48 * time.Hour), Source: "Google"},
					{OccurredAt: processedAt.Add(-1 * time.Hour), Source: "Direct"},
				},
			},
		}

		got := SummarizeOrder(order)

		require.NotNil(t, got.SessionCount)
		assert.Equal(t, 3, *got.SessionCount)
		assert.Equal(t, 4, *got.DaysToConversion)
		require.Len(t, got.Sessions, 3)
		assert.Equal(t, "Session 1", got.Sessions[0].Label)
		assert.Equal(t, "facebook", got.Sessions[0].SourceLabel)
		assert.Equal(t, "4 days before", got.Sessions[0].RelativeTime)
		assert.Equal(t, "Session 3", got.Sessions[2].Label)
		assert.Equal(t, "1 hour before", got.Sessions[2].RelativeTime)
		assert.Equal(t, "an unknown source", order.CustomerJourney.Moments[0].Source)
	})

	t.Run("jornada vazia conta zero sessões", func(t *testing.T) {
		got := SummarizeOrder(domain.Order{Name: "#1003", ProcessedAt: processedAt, CustomerJourney: &domain.CustomerJourney{}})

		require.NotNil(t, got.SessionCount)
		assert.Equal(t, 0, *got.SessionCount)
	})

	t.Run("data no fuso do próprio timestamp", func(t *testing.T) {
		late := time.Date(2024, 12, 31, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))

		got := SummarizeOrder(domain.Order{Name: "#1004", ProcessedAt: late})

		assert.Equal(t, "31.12.24", got.ProcessedAtFormatted)
	})
}

func TestBuildOverview(t *testing.T) {
	orders := []domain.Order{
		{Name: "#1", ProcessedAt: processedAt, CustomerJourney: &domain.CustomerJourney{DaysToConversion: 2, Moments: make([]domain.Moment, 1)}},
		{Name: "#2", ProcessedAt: processedAt},
		{Name: "#3", ProcessedAt: processedAt, CustomerJourney: &domain.CustomerJourney{DaysToConversion: 3, Moments: make([]domain.Moment, 2)}},
		{Name: "#4", ProcessedAt: processedAt, CustomerJourney: &domain.CustomerJourney{DaysToConversion: 0, Moments: make([]domain.Moment, 1)}},
	}
	for i := range orders {
		if orders[i].CustomerJourney == nil {
			continue
		}
		for j := range orders[i].CustomerJourney.Moments {
			orders[i].CustomerJourney.Moments[j].OccurredAt = processedAt.Add(-time.Hour)
		}
	}

	got := BuildOverview(orders)

	require.Len(t, got.Orders, 4)
	assert.Equal(t, []string{"#1", "#2", "#3", "#4"}, []string{got.Orders[0].Name, got.Orders[1].Name, got.Orders[2].Name, got.Orders[3].Name})
	require.NotNil(t, got.AverageMomentCount)
	assert.Equal(t, 1.33, *got.AverageMomentCount)
	require.NotNil(t, got.AverageDaysToConversion)
	assert.Equal(t, 1.67, *got.AverageDaysToConversion)
}

func TestBuildOverview_NoJourneys(t *testing.T) {
	got := BuildOverview([]domain.Order{{Name: "#1", ProcessedAt: processedAt}})

	assert.Nil(t, got.AverageMomentCount)
	assert.Nil(t, got.AverageDaysToConversion)
	assert.Len(t, got.Orders, 1)

	empty := BuildOverview(nil)
	assert.Empty(t, empty.Orders)
	assert.Nil(t, empty.AverageMomentCount)
}
