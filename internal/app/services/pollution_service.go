package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
)

// defaultTimeRangeDays is the dashboard look-back when the client sends none
const defaultTimeRangeDays = 7

var additionalMetrics = []struct {
	Column  string
	Label   string
	Color   string
	YAxisID string
}{
	{Column: "temperature", Label: "Temperature (°C)", Color: "#e74c3c", YAxisID: "y"},
	{Column: "humidity", Label: "Humidity (%)", Color: "#3498db", YAxisID: "y1"},
	{Column: "co", Label: "CO (ppm)", Color: "#2ecc71", YAxisID: "y2"},
	{Column: "no", Label: "NO (ppm)", Color: "#f1c40f", YAxisID: "y2"},
}

// PollutionService assembles the telemetry dashboard payload
type PollutionService struct {
	pollutionRepo repositories.IPollutionRepository
	logger        zerolog.Logger
}

// NewPollutionService creates a new PollutionService
func NewPollutionService(pollutionRepo repositories.IPollutionRepository, logger zerolog.Logger) *PollutionService {
	return &PollutionService{
		pollutionRepo: pollutionRepo,
		logger:        logger,
	}
}

// GetPollutionData builds every dashboard panel in one pass: map points,
// the daily timeline, per-station averages, the sample distribution pie,
// the filled trend chart and the meteorological metrics.
func (s *PollutionService) GetPollutionData(ctx context.Context, req dto.PollutionDataRequest) (*dto.PollutionDataResponse, error) {
	days := defaultTimeRangeDays
	if req.TimeRange != nil {
		days = *req.TimeRange
	}

	code := req.PollutantType
	if code == "" {
		code = "all"
	}

	var selected []models.Pollutant
	if code == "all" {
		selected = models.Pollutants
	} else {
		pollutant := models.Pollutant(code)
		if _, ok := pollutant.Column(); !ok {
			return nil, apperrors.NewBadRequestError("Invalid pollutant type")
		}
		selected = []models.Pollutant{pollutant}
	}

	mapData, err := s.mapData(ctx, days, code, selected)
	if err != nil {
		return nil, err
	}

	// Timeline and trend draw the same daily averages; fetch them once.
	columns := make([]string, 0, len(selected))
	for _, p := range selected {
		col, _ := p.Column()
		columns = append(columns, col)
	}
	daily, err := s.pollutionRepo.DailyAverages(ctx, days, columns, code != "all")
	if err != nil {
		return nil, err
	}

	area, err := s.areaData(ctx, days, code, columns, selected)
	if err != nil {
		return nil, err
	}

	distribution, err := s.distributionData(ctx, days)
	if err != nil {
		return nil, err
	}

	metrics, err := s.additionalMetricsData(ctx, days)
	if err != nil {
		return nil, err
	}

	return &dto.PollutionDataResponse{
		Envelope:              dto.OK(""),
		MapData:               mapData,
		TimelineData:          timelineChart(daily, code, selected),
		AreaData:              area,
		DistributionData:      distribution,
		TrendData:             trendChart(daily, code, selected),
		AdditionalMetricsData: metrics,
	}, nil
}

// mapData collects the map points of every selected pollutant and merges
// them newest first.
func (s *PollutionService) mapData(ctx context.Context, days int, code string, selected []models.Pollutant) ([]dto.MapPoint, error) {
	var points []dto.MapPoint
	for _, p := range selected {
		rows, err := s.pollutionRepo.MapPoints(ctx, days, p)
		if err != nil {
			return nil, err
		}

		label := p.Label()
		if code != "all" {
			label = strings.ToUpper(code)
		}

		for _, row := range rows {
			points = append(points, dto.MapPoint{
				Lat:       row.Lat,
				Lon:       row.Lon,
				Value:     row.Value,
				Timestamp: row.Timestamp,
				Location:  row.Location,
				Pollutant: label,
			})
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.After(points[j].Timestamp)
	})

	return points, nil
}

// seriesChart splits aggregation rows into chart labels plus one data column
// per dataset.
func seriesChart(rows []repositories.SeriesRow, datasets []dto.ChartDataset) *dto.ChartData {
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Label)
		for i := range datasets {
			datasets[i].Data = append(datasets[i].Data, row.Values[i])
		}
	}
	return &dto.ChartData{Labels: labels, Datasets: datasets}
}

func timelineChart(daily []repositories.SeriesRow, code string, selected []models.Pollutant) *dto.ChartData {
	datasets := make([]dto.ChartDataset, 0, len(selected))
	for _, p := range selected {
		label := p.Label()
		if code != "all" {
			label = strings.ToUpper(code)
		}
		datasets = append(datasets, dto.ChartDataset{
			Label:       label,
			Data:        []*float64{},
			BorderColor: p.Color(),
			Tension:     0.1,
		})
	}
	return seriesChart(daily, datasets)
}

func trendChart(daily []repositories.SeriesRow, code string, selected []models.Pollutant) *dto.ChartData {
	datasets := make([]dto.ChartDataset, 0, len(selected))
	for _, p := range selected {
		label := p.Label()
		if code != "all" {
			label = strings.ToUpper(code) + " Trend"
		}
		datasets = append(datasets, dto.ChartDataset{
			Label:           label,
			Data:            []*float64{},
			BorderColor:     p.Color(),
			BackgroundColor: p.Color() + "40",
			Fill:            true,
		})
	}
	return seriesChart(daily, datasets)
}

func (s *PollutionService) areaData(ctx context.Context, days int, code string, columns []string, selected []models.Pollutant) (*dto.ChartData, error) {
	rows, err := s.pollutionRepo.AreaAverages(ctx, days, columns, code != "all")
	if err != nil {
		return nil, err
	}

	datasets := make([]dto.ChartDataset, 0, len(selected))
	for _, p := range selected {
		label := p.Label()
		if code != "all" {
			label = strings.ToUpper(code)
		}
		datasets = append(datasets, dto.ChartDataset{
			Label:           label,
			Data:            []*float64{},
			BackgroundColor: p.Color(),
		})
	}
	return seriesChart(rows, datasets), nil
}

// distributionData counts the non-null samples of every pollutant; the
// pollutant filter deliberately does not narrow the pie chart.
func (s *PollutionService) distributionData(ctx context.Context, days int) (*dto.ChartData, error) {
	columns := make([]string, 0, len(models.Pollutants))
	labels := make([]string, 0, len(models.Pollutants))
	colors := make([]string, 0, len(models.Pollutants))
	for _, p := range models.Pollutants {
		col, _ := p.Column()
		columns = append(columns, col)
		labels = append(labels, p.Label())
		colors = append(colors, p.Color())
	}

	counts, err := s.pollutionRepo.NonNullCounts(ctx, days, columns)
	if err != nil {
		return nil, err
	}

	data := make([]*float64, 0, len(counts))
	for _, count := range counts {
		value := float64(count)
		data = append(data, &value)
	}

	return &dto.ChartData{
		Labels: labels,
		Datasets: []dto.ChartDataset{{
			Data:            data,
			BackgroundColor: colors,
		}},
	}, nil
}

func (s *PollutionService) additionalMetricsData(ctx context.Context, days int) (*dto.ChartData, error) {
	columns := make([]string, 0, len(additionalMetrics))
	datasets := make([]dto.ChartDataset, 0, len(additionalMetrics))
	for _, m := range additionalMetrics {
		columns = append(columns, m.Column)
		datasets = append(datasets, dto.ChartDataset{
			Label:       m.Label,
			Data:        []*float64{},
			BorderColor: m.Color,
			YAxisID:     m.YAxisID,
			Tension:     0.1,
		})
	}

	rows, err := s.pollutionRepo.DailyAverages(ctx, days, columns, false)
	if err != nil {
		return nil, err
	}

	return seriesChart(rows, datasets), nil
}
