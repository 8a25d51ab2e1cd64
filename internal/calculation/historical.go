package calculation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// RateDataPoint is a single year's annual return.
type RateDataPoint struct {
	Year int             `json:"year"`
	Rate decimal.Decimal `json:"rate"`
}

// RateStatistics summarises a rate series.
type RateStatistics struct {
	Mean         decimal.Decimal `json:"mean"`
	StdDev       decimal.Decimal `json:"std_dev"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	Count        int             `json:"count"`
	MissingYears []int           `json:"missing_years"`
}

// RateSeries is an ordered set of annual returns loaded from a CSV file.
type RateSeries struct {
	Name       string          `json:"name"`
	Source     string          `json:"source"`
	DataPoints []RateDataPoint `json:"data_points"`
	MinYear    int             `json:"min_year"`
	MaxYear    int             `json:"max_year"`
	Statistics RateStatistics  `json:"statistics"`
}

// LoadRateSeries reads a two-column CSV file (year, rate) with a header row.
// Rows with a non-numeric year or rate are skipped.
func LoadRateSeries(path string) (*RateSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	rs, err := ReadRateSeries(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rs.Name = filepath.Base(path)
	rs.Source = path
	return rs, nil
}

// ReadRateSeries parses rate CSV data from r.
func ReadRateSeries(r io.Reader) (*RateSeries, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var points []RateDataPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		year, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		rate, err := decimal.NewFromString(record[1])
		if err != nil {
			continue
		}
		points = append(points, RateDataPoint{Year: year, Rate: rate})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no valid data points found")
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	return &RateSeries{
		DataPoints: points,
		MinYear:    points[0].Year,
		MaxYear:    points[len(points)-1].Year,
		Statistics: calculateRateStatistics(points),
	}, nil
}

func calculateRateStatistics(points []RateDataPoint) RateStatistics {
	sum := decimal.Zero
	min, max := points[0].Rate, points[0].Rate
	for _, p := range points {
		sum = sum.Add(p.Rate)
		if p.Rate.LessThan(min) {
			min = p.Rate
		}
		if p.Rate.GreaterThan(max) {
			max = p.Rate
		}
	}
	count := decimal.NewFromInt(int64(len(points)))
	mean := sum.Div(count)

	varianceSum := decimal.Zero
	for _, p := range points {
		diff := p.Rate.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(count).InexactFloat64()

	// points are sorted, so gaps show up as jumps between neighbours
	var missing []int
	for i := 1; i < len(points); i++ {
		for y := points[i-1].Year + 1; y < points[i].Year; y++ {
			missing = append(missing, y)
		}
	}

	return RateStatistics{
		Mean:         mean,
		StdDev:       decimal.NewFromFloat(math.Sqrt(variance)),
		Min:          min,
		Max:          max,
		Count:        len(points),
		MissingYears: missing,
	}
}

// Window returns up to count rates starting at fromYear, in year order. A zero
// fromYear starts at the first data point; a zero count takes the rest of the
// series.
func (rs *RateSeries) Window(fromYear, count int) ([]float64, error) {
	start := 0
	if fromYear != 0 {
		start = -1
		for i, p := range rs.DataPoints {
			if p.Year == fromYear {
				start = i
				break
			}
		}
		if start < 0 {
			return nil, fmt.Errorf("no data for year %d (available %d-%d)", fromYear, rs.MinYear, rs.MaxYear)
		}
	}

	end := len(rs.DataPoints)
	if count > 0 && start+count < end {
		end = start + count
	}

	rates := make([]float64, 0, end-start)
	for _, p := range rs.DataPoints[start:end] {
		rates = append(rates, p.Rate.InexactFloat64())
	}
	return rates, nil
}
