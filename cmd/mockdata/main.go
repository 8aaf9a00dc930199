package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/2beens/healthdash/internal/health"
	"github.com/2beens/healthdash/internal/health/mockdata"
	"github.com/2beens/healthdash/internal/health/session"
	"github.com/2beens/healthdash/internal/logging"

	log "github.com/sirupsen/logrus"
)

type dump struct {
	Today       string                `json:"today"`
	User        health.User           `json:"user"`
	Dates       []string              `json:"dates"`
	Activities  []health.Activity     `json:"activities"`
	Workouts    []health.Workout      `json:"workouts"`
	Nutrition   []health.Nutrition    `json:"nutrition"`
	WaterIntake []health.WaterIntake  `json:"waterIntake"`
	Summaries   []health.DailySummary `json:"summaries"`
}

// prints a generated dataset and its daily summaries as JSON, handy for checking the generator
func main() {
	seed := flag.Int64("seed", 0, "generator seed, 0 for random")
	days := flag.Int("days", 7, "number of days to generate, ending today")
	date := flag.String("date", "", "today as YYYY-MM-DD (empty for the current date)")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: false,
		LogLevel:    *logLevel,
		Environment: "development",
	})
	// stdout is reserved for the JSON dump
	log.SetOutput(os.Stderr)

	now := time.Now()
	if *date != "" {
		parsed, err := health.ParseDate(*date, time.UTC)
		if err != nil {
			log.Fatalf("invalid date [%s]: %s", *date, err)
		}
		now = parsed.Add(12 * time.Hour)
	}

	s, err := session.New(session.Params{
		User:         health.DefaultUser(),
		Generator:    mockdata.NewGenerator(*seed),
		LookbackDays: *days,
		Location:     time.UTC,
		Now:          func() time.Time { return now },
	})
	if err != nil {
		log.Fatalf("new session: %s", err)
	}

	out := dump{
		Today:       s.Today(),
		User:        s.User(),
		Dates:       s.Dates(),
		Activities:  s.Activities(),
		Workouts:    s.Workouts(),
		Nutrition:   s.Nutrition(),
		WaterIntake: s.WaterIntake(),
	}
	for _, d := range s.Dates() {
		if summary := s.DailySummary(d); summary != nil {
			out.Summaries = append(out.Summaries, *summary)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode dataset: %s\n", err)
		os.Exit(1)
	}
}
