package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/deckgen/internal/api"
	"github.com/dgallion1/deckgen/internal/config"
	"github.com/dgallion1/deckgen/internal/facts"
	"github.com/dgallion1/deckgen/internal/generate"
	"github.com/dgallion1/deckgen/internal/pipeline"
	"github.com/dgallion1/deckgen/internal/render"
	"github.com/dgallion1/deckgen/internal/slides"
	"github.com/spf13/cobra"
)

var (
	flagModel     string
	flagDepth     int
	flagOutput    string
	flagNoWeb     bool
	flagFactsFile string
)

func main() {
	root := &cobra.Command{
		Use:           "deckgen \"topic\"",
		Short:         "Generate a presentation deck for a topic",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0])
		},
	}
	root.Flags().StringVar(&flagModel, "model", "", "override the generation model")
	root.Flags().IntVar(&flagDepth, "depth", 0, "target number of content slides")
	root.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (.docx or .html)")
	root.Flags().BoolVar(&flagNoWeb, "no-web", false, "skip web research")
	root.Flags().StringVar(&flagFactsFile, "facts-file", "", "read facts from a .txt, .csv or .pdf file")

	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		if errors.Is(err, generate.ErrEmptyTopic) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, topic string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.Load()
	if flagModel != "" {
		cfg.GroqModel = flagModel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := generate.NewClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL)
	defer client.Close()

	gathered := gatherFacts(ctx, topic, cfg, log)
	log.Info("facts gathered", "count", len(gathered))

	asm := generate.NewAssembler(client, log, generate.Options{
		Depth:             flagDepth,
		DraftMaxTokens:    cfg.DraftMaxTokens,
		PolishMaxTokens:   cfg.PolishMaxTokens,
		DraftTemperature:  cfg.DraftTemperature,
		PolishTemperature: cfg.PolishTemperature,
	})
	d, err := asm.Assemble(ctx, topic, gathered)
	if err != nil {
		return err
	}

	outPath := flagOutput
	if outPath == "" {
		outPath = pipeline.Slugify(topic) + ".docx"
	}
	r, resolved, err := render.ForPath(outPath, log, render.Options{
		TemplatePath: cfg.TemplatePath,
		ChartFont:    cfg.ChartFont,
	})
	if err != nil {
		return err
	}
	if err := r.Render(slides.Map(d), resolved); err != nil {
		return err
	}

	fmt.Printf("Deck written to %s (%d slides)\n", resolved, len(d.Slides))
	return nil
}

// gatherFacts merges web research and the optional facts file; either
// source failing drops that source with a warning.
func gatherFacts(ctx context.Context, topic string, cfg config.Config, log *slog.Logger) []string {
	var gathered []string

	if !flagNoWeb {
		web := facts.NewWebProvider()
		webFacts, err := web.Fetch(ctx, topic, cfg.MaxFacts)
		if err != nil {
			log.Warn("web research failed, generating without it", "error", err)
		} else {
			gathered = append(gathered, webFacts...)
		}
	}

	if flagFactsFile != "" {
		fileFacts, err := facts.FromFile(flagFactsFile, cfg.MaxFacts)
		if err != nil {
			log.Warn("facts file unreadable, skipping", "path", flagFactsFile, "error", err)
		} else {
			gathered = append(gathered, fileFacts...)
		}
	}

	return gathered
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the deck generation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := generate.NewClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL)
	asm := generate.NewAssembler(client, log, generate.Options{
		Depth:             cfg.Depth,
		DraftMaxTokens:    cfg.DraftMaxTokens,
		PolishMaxTokens:   cfg.PolishMaxTokens,
		DraftTemperature:  cfg.DraftTemperature,
		PolishTemperature: cfg.PolishTemperature,
	})

	orch := pipeline.NewOrchestrator(cfg, asm, facts.NewWebProvider(), log)
	orch.Start(ctx)

	srv := api.NewServer(orch, client, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		client.Close()
	}()

	log.Info("starting deckgen", "port", cfg.Port, "model", cfg.GroqModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
