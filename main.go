package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mwestra/cijfers/internal"
)

type Params struct {
	Rows    int      `descr:"Max rows to load per collection (-1 for all)" default:"10"`
	Tags    []string `descr:"Referral tags to resolve to companies"`
	Exclude []string `descr:"Extra invoice IDs to exclude from the invoice table"`
	Config  string   `descr:"Path to the yaml config file"`
	EnvFile string   `descr:"Path to the env file with API credentials" default:".env"`
	Xlsx    string   `descr:"Write the report to this xlsx file"`
	Tables  bool     `descr:"Print the full invoice/subscription/timetracking tables" default:"false"`
	Verbose bool     `descr:"Verbose logging" default:"false"`
}

func main() {
	boa.NewCmdT[Params]("cijfers").
		WithShort("Finance report over the company CRM").
		WithLong("Pulls invoices, subscriptions, time tracking and tags from the CRM API, reconciles subscription-originated invoices across the two API versions, and renders summary tables plus an active-subscription census.").
		WithRunFunc(func(params *Params) {
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params) error {
	log := newLogger(params.Verbose)

	// Credentials live in the environment; the env file is optional.
	if _, err := os.Stat(params.EnvFile); err == nil {
		if err := godotenv.Load(params.EnvFile); err != nil {
			return fmt.Errorf("loading %s: %w", params.EnvFile, err)
		}
	}

	cfg, err := loadConfig(params.Config)
	if err != nil {
		return err
	}

	ctx := context.Background()
	creds := internal.Credentials{
		ClientID:     os.Getenv("CRM_CLIENT_ID"),
		ClientSecret: os.Getenv("CRM_CLIENT_SECRET"),
		AccessToken:  os.Getenv("CRM_ACCESS_TOKEN"),
		RefreshToken: os.Getenv("CRM_REFRESH_TOKEN"),
		TokenURL:     os.Getenv("CRM_TOKEN_URL"),
	}
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return fmt.Errorf("no API credential: set CRM_ACCESS_TOKEN or CRM_REFRESH_TOKEN")
	}

	tl := internal.NewClient(os.Getenv("CRM_API_BASE"), creds.HTTPClient(ctx))
	tl1 := internal.NewLegacyClient(
		os.Getenv("CRM_V1_API_BASE"),
		os.Getenv("CRM_V1_API_GROUP"),
		os.Getenv("CRM_V1_API_SECRET"),
		nil,
	)

	sess := &internal.Session{
		RowLimit:           params.Rows,
		Tags:               params.Tags,
		ExcludedInvoiceIDs: params.Exclude,
	}

	pipeline := internal.NewPipeline(tl, tl1, cfg, log)
	result, err := pipeline.Run(sess)
	if err != nil {
		return err
	}

	render(result, params)

	if params.Xlsx != "" {
		if err := internal.ExportXLSX(params.Xlsx, result); err != nil {
			return err
		}
		log.Info().Str("path", params.Xlsx).Msg("workbook written")
	}

	return nil
}

func render(result *internal.RunResult, params *Params) {
	out := os.Stdout
	cur := internal.EUR()

	internal.PrintUnresolved(out, result.Unresolved)

	if params.Tables {
		fmt.Fprintln(out, "\nSubscription data")
		internal.PrintSubscriptionTable(out, result.Subscriptions, cur)
		fmt.Fprintln(out, "\nInvoice data")
		internal.PrintInvoiceTable(out, result.Invoices, cur)
		fmt.Fprintln(out, "\nTimetracking data")
		internal.PrintTimeTable(out, result.TimeTracking)
	}

	if len(result.TagCompanies) > 0 {
		fmt.Fprintln(out, "\nReferral tags")
		internal.PrintTagCompanies(out, result.TagCompanies)
	}

	fmt.Fprintf(out, "\nActive subscriptions today (%s): %d\n",
		time.Now().Format("02-01-2006"), result.TodayCount)
	internal.PrintCensus(out, "\nActive subscriptions, last 30 to next 30 days", result.ShortSeries)

	fmt.Fprintln(out, "\nProject minutes per week, year to date")
	internal.PrintWeeklyHours(out, result.TimeTracking)
}

func loadConfig(path string) (*internal.Config, error) {
	if path == "" {
		return internal.NewDefaultConfig(), nil
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
