package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/flightline-ai/supportbench/infrastructure/middleware"
	"github.com/flightline-ai/supportbench/infrastructure/retrieval"
	"github.com/flightline-ai/supportbench/infrastructure/tracking"
	"github.com/flightline-ai/supportbench/internal/config"
	"github.com/flightline-ai/supportbench/internal/dataset"
	"github.com/flightline-ai/supportbench/internal/evaluation"
	"github.com/flightline-ai/supportbench/internal/ports"
	"github.com/flightline-ai/supportbench/internal/server"
	"github.com/flightline-ai/supportbench/internal/session"
)

const shutdownGrace = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the support chat HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := middleware.NewPrometheusMetrics(reg)

	client, err := buildLLM(cfg, collector)
	if err != nil {
		return err
	}
	supportAgent, err := buildAgent(cfg, client, true)
	if err != nil {
		return err
	}
	scorer, err := buildScorer(cfg)
	if err != nil {
		return err
	}
	chat, err := session.NewChat(supportAgent, scorer, collector)
	if err != nil {
		return err
	}
	sessions := session.NewManager()

	opts := []server.Option{
		server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	}

	if cfg.Tracking.BaseURL != "" {
		trackingClient, err := tracking.NewClient(cfg.Tracking.BaseURL,
			time.Duration(cfg.Tracking.TimeoutSeconds)*time.Second)
		if err != nil {
			return fmt.Errorf("tracking client: %w", err)
		}
		if err := trackingClient.Health(ctx); err != nil {
			log.Printf("Tracking server %s is not reachable: %v", cfg.Tracking.BaseURL, err)
		}
		opts = append(opts, server.WithTracking(trackingClient))
	}

	if cfg.Retrieval.DictionaryPath != "" {
		translator, err := buildTranslator(ctx, cfg, client)
		if err != nil {
			return fmt.Errorf("translator: %w", err)
		}
		opts = append(opts, server.WithTranslator(translator))
	}

	srv := server.New(sessions, chat, cfg.Evaluation.ResultsPath, opts...)
	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Listening on %s (model %s)", cfg.Server.Addr, client.GetModel())
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Printf("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if cfg.Evaluation.Schedule != "" {
		g.Go(func() error {
			return runEvaluationSchedule(ctx, cfg, client, scorer)
		})
	}

	return g.Wait()
}

func buildTranslator(ctx context.Context, cfg config.Config, client ports.LLMClient) (*retrieval.Translator, error) {
	store, err := retrieval.NewStore()
	if err != nil {
		return nil, err
	}
	loaded, err := store.LoadFile(ctx, cfg.Retrieval.DictionaryPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d dictionary entries from %s", loaded, cfg.Retrieval.DictionaryPath)
	return retrieval.NewTranslator(store, client)
}

// runEvaluationSchedule re-runs the baseline/optimized comparison on a
// cron schedule and refreshes the results file the /api/results
// endpoint serves. The schedule is a standard 5-field cron expression.
func runEvaluationSchedule(ctx context.Context, cfg config.Config, client ports.LLMClient, scorer ports.Scorer) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(cfg.Evaluation.Schedule)
	if err != nil {
		return fmt.Errorf("invalid evaluation schedule %q: %w", cfg.Evaluation.Schedule, err)
	}

	for {
		next := sched.Next(time.Now())
		log.Printf("Next scheduled evaluation at %s", next.Format(time.RFC1123))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := refreshResults(ctx, cfg, client, scorer); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Scheduled evaluation failed: %v", err)
		}
	}
}

func refreshResults(ctx context.Context, cfg config.Config, client ports.LLMClient, scorer ports.Scorer) error {
	examples, err := dataset.Load(cfg.Evaluation.DatasetPath)
	if err != nil {
		return err
	}

	runner, err := evaluation.NewRunner(scorer)
	if err != nil {
		return err
	}
	baselineAgent, err := buildAgent(cfg, client, false)
	if err != nil {
		return err
	}
	optimizedAgent, err := buildAgent(cfg, client, true)
	if err != nil {
		return err
	}

	start := time.Now()
	baselineResult, err := runner.Run(ctx, baselineAgent, examples)
	if err != nil {
		return fmt.Errorf("baseline run: %w", err)
	}
	optimizedResult, err := runner.Run(ctx, optimizedAgent, examples)
	if err != nil {
		return fmt.Errorf("optimized run: %w", err)
	}

	summary := evaluation.BuildSummary(evaluation.SummaryInput{
		Model:                client.GetModel(),
		Optimizer:            "scheduled",
		Baseline:             baselineResult,
		Optimized:            optimizedResult,
		OptimizationDuration: time.Since(start),
		Assumptions:          cfg.Business,
	})
	if err := evaluation.SaveSummary(cfg.Evaluation.ResultsPath, summary); err != nil {
		return err
	}
	log.Printf("Refreshed results: baseline %.3f, optimized %.3f over %d examples",
		baselineResult.Average, optimizedResult.Average, len(examples))
	return nil
}
