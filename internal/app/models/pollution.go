package models

import (
	"time"
)

// Pollutant identifies one of the tracked pollutant series.
type Pollutant string

const (
	PollutantPM25 Pollutant = "pm25"
	PollutantPM10 Pollutant = "pm10"
	PollutantNO2  Pollutant = "no2"
	PollutantO3   Pollutant = "o3"
)

// Pollutants lists every tracked pollutant in display order.
var Pollutants = []Pollutant{PollutantPM25, PollutantPM10, PollutantNO2, PollutantO3}

// pollutantColumns maps pollutant codes onto reading columns. Queries must
// go through this closed map, never through caller-supplied strings.
var pollutantColumns = map[Pollutant]string{
	PollutantPM25: "pm25",
	PollutantPM10: "pm10",
	PollutantNO2:  "no2",
	PollutantO3:   "o3",
}

var pollutantLabels = map[Pollutant]string{
	PollutantPM25: "PM2.5",
	PollutantPM10: "PM10",
	PollutantNO2:  "NO2",
	PollutantO3:   "O3",
}

var pollutantColors = map[Pollutant]string{
	PollutantPM25: "#e74c3c",
	PollutantPM10: "#3498db",
	PollutantNO2:  "#2ecc71",
	PollutantO3:   "#f1c40f",
}

// FallbackColor is used for series without an assigned color.
const FallbackColor = "#95a5a6"

// Column returns the reading column for the pollutant and whether the
// pollutant is known.
func (p Pollutant) Column() (string, bool) {
	col, ok := pollutantColumns[p]
	return col, ok
}

// Label returns the display label for the pollutant.
func (p Pollutant) Label() string {
	if label, ok := pollutantLabels[p]; ok {
		return label
	}
	return string(p)
}

// Color returns the chart color for the pollutant.
func (p Pollutant) Color() string {
	if color, ok := pollutantColors[p]; ok {
		return color
	}
	return FallbackColor
}

// PollutionReading is one telemetry sample from the 'pollution_readings'
// table. Every measurement is nullable; stations report partial rows.
type PollutionReading struct {
	ID          int64     `json:"id" db:"id"`
	StationID   int64     `json:"station_id" db:"station_id"`
	Datetime    time.Time `json:"datetime" db:"datetime"`
	PM25        *float64  `json:"pm25" db:"pm25"`
	PM10        *float64  `json:"pm10" db:"pm10"`
	NO2         *float64  `json:"no2" db:"no2"`
	O3          *float64  `json:"o3" db:"o3"`
	CO          *float64  `json:"co" db:"co"`
	NO          *float64  `json:"no" db:"no"`
	Temperature *float64  `json:"temperature" db:"temperature"`
	Humidity    *float64  `json:"humidity" db:"humidity"`
}

// Station is a fixed measuring station from the 'meteo_stations' table
type Station struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
