package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
)

func newPollutionService(repo *stubPollutionRepo) *PollutionService {
	if repo == nil {
		repo = &stubPollutionRepo{}
	}
	return NewPollutionService(repo, zerolog.Nop())
}

func TestPollutionService_GetPollutionData(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown pollutant is rejected", func(t *testing.T) {
		svc := newPollutionService(nil)

		_, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{PollutantType: "lead"})
		require.ErrorIs(t, err, apperrors.ErrBadRequest)

		var customErr *apperrors.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Invalid pollutant type", customErr.Message)
	})

	t.Run("defaults to seven days across all pollutants", func(t *testing.T) {
		var mapDays []int
		var queried []models.Pollutant
		repo := &stubPollutionRepo{
			mapPointsFn: func(ctx context.Context, days int, pollutant models.Pollutant) ([]repositories.MapPointRow, error) {
				mapDays = append(mapDays, days)
				queried = append(queried, pollutant)
				return nil, nil
			},
		}
		svc := newPollutionService(repo)

		_, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{})
		require.NoError(t, err)

		require.Len(t, queried, 4)
		assert.Equal(t, models.Pollutants, queried)
		for _, days := range mapDays {
			assert.Equal(t, 7, days)
		}
	})

	t.Run("all pollutants do not filter null rows, single ones do", func(t *testing.T) {
		type dailyCall struct {
			columns       []string
			filterNonNull bool
		}
		var calls []dailyCall
		repo := &stubPollutionRepo{
			dailyAveragesFn: func(ctx context.Context, days int, columns []string, filterNonNull bool) ([]repositories.SeriesRow, error) {
				calls = append(calls, dailyCall{columns: columns, filterNonNull: filterNonNull})
				return emptySeries(len(columns)), nil
			},
		}
		svc := newPollutionService(repo)

		_, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{PollutantType: "all"})
		require.NoError(t, err)
		// One fetch for timeline and trend combined, one for the metrics panel.
		require.Len(t, calls, 2)
		assert.Equal(t, []string{"pm25", "pm10", "no2", "o3"}, calls[0].columns)
		assert.False(t, calls[0].filterNonNull)
		assert.Equal(t, []string{"temperature", "humidity", "co", "no"}, calls[1].columns)
		assert.False(t, calls[1].filterNonNull)

		calls = nil
		_, err = svc.GetPollutionData(ctx, dto.PollutionDataRequest{PollutantType: "pm25"})
		require.NoError(t, err)
		require.Len(t, calls, 2)
		assert.Equal(t, []string{"pm25"}, calls[0].columns)
		assert.True(t, calls[0].filterNonNull)
	})

	t.Run("single pollutant uses the upper-cased code as label", func(t *testing.T) {
		repo := &stubPollutionRepo{
			mapPointsFn: func(ctx context.Context, days int, pollutant models.Pollutant) ([]repositories.MapPointRow, error) {
				return []repositories.MapPointRow{{Lat: 38.2, Lon: 21.7, Value: 12.5, Location: "Center"}}, nil
			},
		}
		svc := newPollutionService(repo)

		data, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{PollutantType: "pm25"})
		require.NoError(t, err)

		require.Len(t, data.MapData, 1)
		assert.Equal(t, "PM25", data.MapData[0].Pollutant)

		require.Len(t, data.TimelineData.Datasets, 1)
		assert.Equal(t, "PM25", data.TimelineData.Datasets[0].Label)

		require.Len(t, data.TrendData.Datasets, 1)
		assert.Equal(t, "PM25 Trend", data.TrendData.Datasets[0].Label)
	})

	t.Run("all pollutants use display labels", func(t *testing.T) {
		svc := newPollutionService(nil)

		data, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{})
		require.NoError(t, err)

		labels := make([]string, 0, len(data.TimelineData.Datasets))
		for _, ds := range data.TimelineData.Datasets {
			labels = append(labels, ds.Label)
		}
		assert.Equal(t, []string{"PM2.5", "PM10", "NO2", "O3"}, labels)
	})

	t.Run("map points are merged newest first", func(t *testing.T) {
		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		repo := &stubPollutionRepo{
			mapPointsFn: func(ctx context.Context, days int, pollutant models.Pollutant) ([]repositories.MapPointRow, error) {
				switch pollutant {
				case models.PollutantPM25:
					return []repositories.MapPointRow{{Value: 1, Timestamp: base.Add(-2 * time.Hour)}}, nil
				case models.PollutantPM10:
					return []repositories.MapPointRow{{Value: 2, Timestamp: base}}, nil
				}
				return nil, nil
			},
		}
		svc := newPollutionService(repo)

		data, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{})
		require.NoError(t, err)

		require.Len(t, data.MapData, 2)
		assert.Equal(t, float64(2), data.MapData[0].Value)
		assert.Equal(t, float64(1), data.MapData[1].Value)
	})

	t.Run("trend datasets are filled with translucent color", func(t *testing.T) {
		svc := newPollutionService(nil)

		data, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{PollutantType: "pm25"})
		require.NoError(t, err)

		require.Len(t, data.TrendData.Datasets, 1)
		trend := data.TrendData.Datasets[0]
		assert.Equal(t, "#e74c3c", trend.BorderColor)
		assert.Equal(t, "#e74c3c40", trend.BackgroundColor)
		assert.True(t, trend.Fill)

		require.Len(t, data.TimelineData.Datasets, 1)
		assert.Equal(t, 0.1, data.TimelineData.Datasets[0].Tension)
	})

	t.Run("distribution ignores the pollutant filter", func(t *testing.T) {
		repo := &stubPollutionRepo{
			nonNullCountsFn: func(ctx context.Context, days int, columns []string) ([]int64, error) {
				assert.Equal(t, []string{"pm25", "pm10", "no2", "o3"}, columns)
				return []int64{10, 20, 30, 40}, nil
			},
		}
		svc := newPollutionService(repo)

		data, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{PollutantType: "pm25"})
		require.NoError(t, err)

		assert.Equal(t, []string{"PM2.5", "PM10", "NO2", "O3"}, data.DistributionData.Labels)
		require.Len(t, data.DistributionData.Datasets, 1)

		pie := data.DistributionData.Datasets[0]
		assert.Equal(t, []string{"#e74c3c", "#3498db", "#2ecc71", "#f1c40f"}, pie.BackgroundColor)
		require.Len(t, pie.Data, 4)
		assert.Equal(t, float64(30), *pie.Data[2])
	})

	t.Run("metrics panel carries its axis assignments", func(t *testing.T) {
		svc := newPollutionService(nil)

		data, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{})
		require.NoError(t, err)

		datasets := data.AdditionalMetricsData.Datasets
		require.Len(t, datasets, 4)
		assert.Equal(t, "Temperature (°C)", datasets[0].Label)
		assert.Equal(t, "y", datasets[0].YAxisID)
		assert.Equal(t, "Humidity (%)", datasets[1].Label)
		assert.Equal(t, "y1", datasets[1].YAxisID)
		assert.Equal(t, "CO (ppm)", datasets[2].Label)
		assert.Equal(t, "y2", datasets[2].YAxisID)
		assert.Equal(t, "NO (ppm)", datasets[3].Label)
		assert.Equal(t, "y2", datasets[3].YAxisID)
	})

	t.Run("explicit time range is passed through", func(t *testing.T) {
		var gotDays int
		repo := &stubPollutionRepo{
			dailyAveragesFn: func(ctx context.Context, days int, columns []string, filterNonNull bool) ([]repositories.SeriesRow, error) {
				gotDays = days
				return emptySeries(len(columns)), nil
			},
		}
		svc := newPollutionService(repo)

		timeRange := 30
		_, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{TimeRange: &timeRange})
		require.NoError(t, err)
		assert.Equal(t, 30, gotDays)
	})

	t.Run("series rows become chart labels and data columns", func(t *testing.T) {
		v1, v2 := 10.5, 11.0
		repo := &stubPollutionRepo{
			dailyAveragesFn: func(ctx context.Context, days int, columns []string, filterNonNull bool) ([]repositories.SeriesRow, error) {
				if len(columns) == 1 {
					return []repositories.SeriesRow{
						{Label: "2026-08-01", Values: []*float64{&v1}},
						{Label: "2026-08-02", Values: []*float64{nil}},
						{Label: "2026-08-03", Values: []*float64{&v2}},
					}, nil
				}
				return emptySeries(len(columns)), nil
			},
		}
		svc := newPollutionService(repo)

		data, err := svc.GetPollutionData(ctx, dto.PollutionDataRequest{PollutantType: "pm25"})
		require.NoError(t, err)

		assert.Equal(t, []string{"2026-08-01", "2026-08-02", "2026-08-03"}, data.TimelineData.Labels)
		series := data.TimelineData.Datasets[0].Data
		require.Len(t, series, 3)
		assert.Equal(t, 10.5, *series[0])
		assert.Nil(t, series[1])
		assert.Equal(t, 11.0, *series[2])
	})
}
