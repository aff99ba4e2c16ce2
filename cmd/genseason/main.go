// Command genseason generates a synthetic growing season of hourly weather
// and daily rain, writes them as JSON fixtures, and runs the scheduling
// engine over the result so test assertions can be copied from its output.
//
// Usage:
//
//	go run ./cmd/genseason \
//	  -start 2025-05-01 -days 120 -seed 7 \
//	  -hourly-out data/mock/season_hourly.json \
//	  -rain-out data/mock/season_rain.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/HarvesConsulting/crop-protection/internal/domain"
)

const dateLayout = "2006-01-02"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	start := flag.String("start", "2025-05-01", "season start date (YYYY-MM-DD)")
	days := flag.Int("days", 120, "season length in days")
	seed := flag.Int64("seed", 1, "random seed for reproducible output")
	hourlyOut := flag.String("hourly-out", "", "output path for hourly weather JSON fixture")
	rainOut := flag.String("rain-out", "", "output path for daily rain JSON fixture")
	flag.Parse()

	if *hourlyOut == "" || *rainOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -hourly-out, -rain-out")
	}

	from, err := time.Parse(dateLayout, *start)
	if err != nil {
		return fmt.Errorf("parse start date: %w", err)
	}
	from = domain.DateOf(from)

	rng := rand.New(rand.NewSource(*seed))
	samples, rain := generateSeason(rng, from, *days)

	if err := writeJSON(*hourlyOut, samples); err != nil {
		return fmt.Errorf("writing hourly fixture: %w", err)
	}
	log.Printf("wrote hourly fixture: %s (%d samples)", *hourlyOut, len(samples))

	if err := writeJSON(*rainOut, rain); err != nil {
		return fmt.Errorf("writing rain fixture: %w", err)
	}
	log.Printf("wrote rain fixture: %s (%d days)", *rainOut, len(rain))

	printStats(from, samples, rain)
	return nil
}

// generateSeason builds one hourly sample per hour with a diurnal
// temperature cycle and humid nights, plus occasional rain days. Roughly
// a quarter of nights are wet enough to score disease severity.
func generateSeason(rng *rand.Rand, from time.Time, days int) ([]domain.HourlySample, []domain.RainRecord) {
	samples := make([]domain.HourlySample, 0, days*24)
	rain := make([]domain.RainRecord, 0, days)

	for d := 0; d < days; d++ {
		day := domain.AddDays(from, d)
		baseTemp := 16 + 8*math.Sin(float64(d)/30) + rng.Float64()*4
		wetNight := rng.Float64() < 0.25

		for h := 0; h < 24; h++ {
			temp := baseTemp + 6*math.Sin((float64(h)-9)*math.Pi/12)
			humidity := 55 + rng.Float64()*25
			if wetNight && (h < 7 || h > 21) {
				humidity = 90 + rng.Float64()*10
			}
			samples = append(samples, domain.HourlySample{
				Time:     day.Add(time.Duration(h) * time.Hour),
				TempC:    temp,
				Humidity: humidity,
			})
		}

		var mm float64
		if rng.Float64() < 0.15 {
			mm = rng.Float64() * 20
		}
		rain = append(rain, domain.RainRecord{Date: day, Rain: mm})
	}
	return samples, rain
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// printStats runs the real engine over the fixture and prints the numbers
// tests assert on.
func printStats(from time.Time, samples []domain.HourlySample, rain []domain.RainRecord) {
	engine := domain.NewEngine(domain.DefaultParams())

	days := engine.AggregateHourly(samples)
	acc := engine.AccumulateDSV(days)
	sprays := engine.MultiSpraySchedule(days, rain)
	weekly := engine.WeeklyPlan(acc.Rows, rain, from, 0)

	var dsvSum, wetDays, rainDays int
	for _, row := range acc.Rows {
		dsvSum += row.DSV
		if row.WetHours > 0 {
			wetDays++
		}
	}
	for _, r := range rain {
		if r.Rain > 0 {
			rainDays++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Days: %d (wet=%d, rain=%d)\n", len(days), wetDays, rainDays)
	fmt.Printf("DSV sum: %d\n", dsvSum)

	fmt.Printf("Accumulator sprays (%d):", len(acc.Schedule))
	for _, ev := range acc.Schedule {
		fmt.Printf(" %s(acc=%d)", ev.Date.Format(dateLayout), ev.AccBefore)
	}
	fmt.Println()

	fmt.Printf("Cadence sprays (%d):", len(sprays))
	for _, d := range sprays {
		fmt.Printf(" %s", d.Format(dateLayout))
	}
	fmt.Println()

	tiers := map[string]int{}
	for _, w := range weekly {
		tiers[w.Recommendation]++
	}
	fmt.Printf("Weekly windows: %d (heavy=%d, moderate=%d, alert=%d, none=%d)\n",
		len(weekly),
		tiers[domain.RecommendHeavy], tiers[domain.RecommendModerate],
		tiers[domain.RecommendAlert], tiers[domain.RecommendNone])

	for _, disease := range []string{domain.DiseaseGrayMold, domain.DiseaseAlternaria, domain.DiseaseBacteriosis} {
		riskDates := engine.RiskDates(disease, days, rain)
		treatments := engine.AdvancedTreatments(riskDates)
		fmt.Printf("%s: %d risk days, %d treatments\n", disease, len(riskDates), len(treatments))
	}
}
