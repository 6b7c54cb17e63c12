// Command train fits the salary model from a corpus file and stores the
// artifact, without starting the web server.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/username/salarypredictor/src/config"
	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/model"
	"github.com/username/salarypredictor/src/models"
	"github.com/username/salarypredictor/src/parsers"
	"github.com/username/salarypredictor/src/processors"
	"github.com/username/salarypredictor/src/services"
	"github.com/username/salarypredictor/src/utils"
)

func main() {
	app := &cli.App{
		Name:  "train",
		Usage: "train the salary prediction model and save it to the model store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "corpus file (overrides DATA_PATH)"},
			&cli.StringFlag{Name: "format", Usage: "corpus format: csv or json (overrides DATA_FORMAT)"},
			&cli.StringFlag{Name: "store", Usage: "model store: sqlite, postgres, file or redis (overrides MODEL_STORE)"},
			&cli.StringFlag{Name: "db-path", Usage: "SQLite database path (overrides DATABASE_PATH)"},
			&cli.StringFlag{Name: "database-url", Usage: "PostgreSQL URL (overrides DATABASE_URL)"},
			&cli.StringFlag{Name: "model-path", Usage: "model file path for the file store (overrides MODEL_PATH)"},
			&cli.StringFlag{Name: "redis-addr", Usage: "Redis address (overrides REDIS_ADDR)"},
			&cli.IntFlag{Name: "estimators", Usage: "boosting stages (overrides N_ESTIMATORS)"},
			&cli.Float64Flag{Name: "learning-rate", Usage: "learning rate (overrides LEARNING_RATE)"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed (overrides RANDOM_SEED)"},
			&cli.Float64Flag{Name: "test-size", Usage: "holdout fraction (overrides TEST_SIZE)"},
			&cli.StringFlag{Name: "filter", Usage: "CEL expression selecting training records (overrides TRAINING_FILTER)"},
			&cli.BoolFlag{Name: "offline", Usage: "skip the live exchange-rate service and use the built-in table"},
			&cli.IntFlag{Name: "top", Value: 10, Usage: "number of top-paying job titles to print"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "no banner or progress bar"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Structured logs go to stderr so the terminal report stays readable.
	logger.InitLoggerWithWriter(cfg.LogLevel, os.Stderr)

	quiet := c.Bool("quiet")
	if !quiet {
		pterm.DefaultHeader.WithFullWidth().Println("Salary Predictor: model training")
	}

	filter, err := processors.NewRecordFilter(cfg.Model.TrainingFilter)
	if err != nil {
		return err
	}

	store, err := model.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("opening %s model store: %w", cfg.ModelStore, err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rates, source := processors.FallbackRates(), models.RateSourceFallback
	if !c.Bool("offline") {
		fetcher := processors.NewRateFetcher(&http.Client{Timeout: cfg.RatesTimeout}, cfg.RatesURL)
		rates, source = fetcher.GetRates(ctx)
	}
	pterm.Info.Printfln("Exchange rates: %s (%d currencies)", source, len(rates))

	trainingCfg := services.NewTrainingConfig(cfg.Model, filter)
	var bar *pb.ProgressBar
	if !quiet {
		bar = pb.New(cfg.Model.NEstimators)
		bar.SetWriter(os.Stdout)
		trainingCfg.OnStage = func(done, total int) { bar.SetCurrent(int64(done)) }
	}

	corpus := services.NewCorpus()
	trainer := services.NewTrainingService(store, rates, corpus, trainingCfg)

	f, err := os.Open(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	records, err := trainer.LoadCorpus(f, cfg.DataFormat)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Loaded %d records from %s", len(records), cfg.DataPath)

	if bar != nil {
		bar.Start()
	}
	report, err := trainer.Train(ctx, records)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Model %s saved to the %s store", report.ModelID, cfg.ModelStore)
	if err := printReport(os.Stdout, report); err != nil {
		return err
	}

	charts := services.NewChartService(corpus, cfg.Display.ExperienceLevels, cfg.ChartCacheTTL)
	bars, _ := charts.SalaryByTitle()
	return printTopTitles(bars, c.Int("top"))
}

func applyFlags(c *cli.Context, cfg *config.AppConfig) {
	if c.IsSet("data") {
		cfg.DataPath = c.String("data")
		if !c.IsSet("format") {
			cfg.DataFormat = parsers.FormatFromFilename(cfg.DataPath)
		}
	}
	if c.IsSet("format") {
		cfg.DataFormat = c.String("format")
	}
	if c.IsSet("store") {
		cfg.ModelStore = c.String("store")
	}
	if c.IsSet("db-path") {
		cfg.DatabasePath = c.String("db-path")
	}
	if c.IsSet("database-url") {
		cfg.DatabaseURL = c.String("database-url")
	}
	if c.IsSet("model-path") {
		cfg.ModelPath = c.String("model-path")
	}
	if c.IsSet("redis-addr") {
		cfg.RedisAddr = c.String("redis-addr")
	}
	if c.IsSet("estimators") {
		cfg.Model.NEstimators = c.Int("estimators")
	}
	if c.IsSet("learning-rate") {
		cfg.Model.LearningRate = c.Float64("learning-rate")
	}
	if c.IsSet("seed") {
		cfg.Model.RandomSeed = c.Int64("seed")
	}
	if c.IsSet("test-size") {
		cfg.Model.TestSize = c.Float64("test-size")
	}
	if c.IsSet("filter") {
		cfg.Model.TrainingFilter = c.String("filter")
	}
}

func printReport(w io.Writer, report *models.TrainingReport) error {
	data := pterm.TableData{
		{"Metric", "Value"},
		{"Corpus records", strconv.Itoa(report.CorpusSize)},
		{"Train samples", strconv.Itoa(report.TrainSamples)},
		{"Holdout samples", strconv.Itoa(report.HoldoutSamples)},
		{"Duration", report.Duration.Round(time.Millisecond).String()},
	}
	if h := report.Holdout; h != nil {
		data = append(data,
			[]string{"Holdout MAE (USD)", utils.FormatMoney(h.MAE, "")},
			[]string{"Holdout RMSE (USD)", utils.FormatMoney(h.RMSE, "")},
		)
		if h.R2 != nil {
			data = append(data, []string{"Holdout R²", strconv.FormatFloat(utils.RoundFloat(*h.R2, 4), 'f', -1, 64)})
		} else {
			data = append(data, []string{"Holdout R²", "undefined"})
		}
	} else {
		data = append(data, []string{"Holdout", "none (corpus too small to split)"})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithWriter(w).WithData(data).Render()
}

func printTopTitles(bars []models.TitleSalary, top int) error {
	if top <= 0 || len(bars) == 0 {
		return nil
	}
	if top > len(bars) {
		top = len(bars)
	}
	data := pterm.TableData{{"Job title", "Records", "Mean salary (USD)", "Total (USD)"}}
	for _, b := range bars[:top] {
		data = append(data, []string{
			b.JobTitle,
			strconv.Itoa(b.Count),
			utils.FormatMoney(b.MeanUSD, ""),
			utils.FormatMoney(b.TotalUSD, ""),
		})
	}
	pterm.DefaultSection.Println("Top job titles by total salary")
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
