package dto

import (
	"time"
)

// PollutionDataRequest parameterizes the dashboard aggregation.
// TimeRange is a look-back window in days; zero or negative means all time.
// PollutantType is one of all, pm25, pm10, no2, o3.
type PollutionDataRequest struct {
	TimeRange     *int   `json:"time_range"`
	PollutantType string `json:"pollutant_type"`
}

// MapPoint is one measurement pinned on the map
type MapPoint struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
	Pollutant string    `json:"pollutant"`
}

// ChartDataset is one series in a chart payload. BackgroundColor holds a
// string for line/bar/area series and a color list for the pie chart.
type ChartDataset struct {
	Label           string      `json:"label,omitempty"`
	Data            []*float64  `json:"data"`
	BorderColor     string      `json:"borderColor,omitempty"`
	BackgroundColor interface{} `json:"backgroundColor,omitempty"`
	Tension         float64     `json:"tension,omitempty"`
	Fill            bool        `json:"fill,omitempty"`
	YAxisID         string      `json:"yAxisID,omitempty"`
}

// ChartData is a chart payload of labels plus datasets
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// PollutionDataResponse carries every dashboard panel in one response
type PollutionDataResponse struct {
	Envelope
	MapData               []MapPoint `json:"map_data,omitempty"`
	TimelineData          *ChartData `json:"timeline_data,omitempty"`
	AreaData              *ChartData `json:"area_data,omitempty"`
	DistributionData      *ChartData `json:"distribution_data,omitempty"`
	TrendData             *ChartData `json:"trend_data,omitempty"`
	AdditionalMetricsData *ChartData `json:"additional_metrics_data,omitempty"`
}
