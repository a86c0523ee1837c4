package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkou/arboretum/internal/app/models"
)

// MapPointRow is one non-null reading pinned to its station
type MapPointRow struct {
	Lat       float64
	Lon       float64
	Value     float64
	Timestamp time.Time
	Location  string
}

// SeriesRow is one aggregation bucket: a label (day or station name) plus
// one averaged value per requested column. Values stay nil for buckets
// where every sample was null.
type SeriesRow struct {
	Label  string
	Values []*float64
}

// IPollutionRepository defines the telemetry aggregation queries
type IPollutionRepository interface {
	MapPoints(ctx context.Context, days int, pollutant models.Pollutant) ([]MapPointRow, error)
	DailyAverages(ctx context.Context, days int, columns []string, filterNonNull bool) ([]SeriesRow, error)
	AreaAverages(ctx context.Context, days int, columns []string, filterNonNull bool) ([]SeriesRow, error)
	NonNullCounts(ctx context.Context, days int, columns []string) ([]int64, error)
}

// PollutionRepository handles telemetry aggregation queries. Column names
// always come from the closed pollutant map, never from request input.
type PollutionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPollutionRepository creates a new pollution repository
func NewPollutionRepository(db *pgxpool.Pool) *PollutionRepository {
	return &PollutionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// withTimeWindow restricts the query to the look-back window in days.
// Zero or negative means all time.
func withTimeWindow(builder squirrel.SelectBuilder, days int) squirrel.SelectBuilder {
	if days > 0 {
		return builder.Where(squirrel.Expr("p.datetime >= NOW() - make_interval(days => ?)", days))
	}
	return builder
}

// MapPoints retrieves the non-null readings of one pollutant with their
// station coordinates, newest first.
func (r *PollutionRepository) MapPoints(ctx context.Context, days int, pollutant models.Pollutant) ([]MapPointRow, error) {
	column, ok := pollutant.Column()
	if !ok {
		return nil, fmt.Errorf("unknown pollutant: %s", pollutant)
	}

	builder := r.sb.Select(
		"ms.latitude",
		"ms.longitude",
		fmt.Sprintf("p.%s", column),
		"p.datetime",
		"ms.name",
	).
		From("pollution_readings p").
		Join("meteo_stations ms ON p.station_id = ms.id").
		Where(fmt.Sprintf("p.%s IS NOT NULL", column))

	builder = withTimeWindow(builder, days).OrderBy("p.datetime DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build map points query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []MapPointRow
	for rows.Next() {
		var p MapPointRow
		if err := rows.Scan(&p.Lat, &p.Lon, &p.Value, &p.Timestamp, &p.Location); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

func (r *PollutionRepository) querySeries(ctx context.Context, builder squirrel.SelectBuilder, columnCount int) ([]SeriesRow, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build series query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []SeriesRow
	for rows.Next() {
		row := SeriesRow{Values: make([]*float64, columnCount)}
		dest := make([]interface{}, 0, columnCount+1)
		dest = append(dest, &row.Label)
		for i := range row.Values {
			dest = append(dest, &row.Values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		series = append(series, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return series, nil
}

// DailyAverages averages the given columns per calendar day, oldest first.
// filterNonNull drops rows where the (single) column is null, matching the
// single-pollutant chart queries.
func (r *PollutionRepository) DailyAverages(ctx context.Context, days int, columns []string, filterNonNull bool) ([]SeriesRow, error) {
	builder := r.sb.Select("to_char(p.datetime::date, 'YYYY-MM-DD') AS day")
	for _, column := range columns {
		builder = builder.Column(fmt.Sprintf("AVG(p.%s)", column))
	}
	builder = builder.From("pollution_readings p")

	builder = withTimeWindow(builder, days)
	if filterNonNull {
		for _, column := range columns {
			builder = builder.Where(fmt.Sprintf("p.%s IS NOT NULL", column))
		}
	}

	builder = builder.GroupBy("p.datetime::date").OrderBy("p.datetime::date")

	return r.querySeries(ctx, builder, len(columns))
}

// AreaAverages averages the given columns per station name
func (r *PollutionRepository) AreaAverages(ctx context.Context, days int, columns []string, filterNonNull bool) ([]SeriesRow, error) {
	builder := r.sb.Select("ms.name AS area")
	for _, column := range columns {
		builder = builder.Column(fmt.Sprintf("AVG(p.%s)", column))
	}
	builder = builder.
		From("pollution_readings p").
		Join("meteo_stations ms ON p.station_id = ms.id")

	builder = withTimeWindow(builder, days)
	if filterNonNull {
		for _, column := range columns {
			builder = builder.Where(fmt.Sprintf("p.%s IS NOT NULL", column))
		}
	}

	builder = builder.GroupBy("ms.name").OrderBy("ms.name")

	return r.querySeries(ctx, builder, len(columns))
}

// NonNullCounts counts the non-null samples of each column within the window
func (r *PollutionRepository) NonNullCounts(ctx context.Context, days int, columns []string) ([]int64, error) {
	builder := r.sb.Select()
	for _, column := range columns {
		builder = builder.Column(fmt.Sprintf("COUNT(p.%s)", column))
	}
	builder = builder.From("pollution_readings p")
	builder = withTimeWindow(builder, days)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build counts query: %w", err)
	}

	counts := make([]int64, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range counts {
		dest[i] = &counts[i]
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		return nil, fmt.Errorf("error counting readings: %w", err)
	}

	return counts, nil
}
