package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mbavault/nbauto/internal/ai"
	"github.com/mbavault/nbauto/internal/chunking"
	"github.com/mbavault/nbauto/internal/config"
	"github.com/mbavault/nbauto/internal/document"
	"github.com/mbavault/nbauto/internal/job"
	"github.com/mbavault/nbauto/internal/prompt"
	"github.com/mbavault/nbauto/internal/schedule"
	"github.com/mbavault/nbauto/internal/service"
	"github.com/mbavault/nbauto/internal/summarize"
	"github.com/mbavault/nbauto/internal/vault"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "nbauto",
		Short: "convert course documents into AI-summarized markdown notes",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	processCmd := &cobra.Command{
		Use:   "process <file-or-directory>",
		Short: "process one document or a whole directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, deps, err := setup(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			target := args[0]
			info, err := os.Stat(target)
			if err != nil {
				return fmt.Errorf("stat %s: %w", target, err)
			}
			if info.IsDir() {
				return deps.notes.ProcessDir(ctx, target)
			}
			notePath, err := deps.notes.ProcessFile(ctx, target)
			if err != nil {
				return err
			}
			fmt.Println(notePath)
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "scan the vault on a cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, deps, err := setup(configPath)
			if err != nil {
				return err
			}
			if cfg.ScanSpec == "" {
				return fmt.Errorf("scan_spec is required for watch mode")
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scheduler := schedule.NewCronScheduler()
			if err := scheduler.AddJob(job.NewVaultScanJob(deps.notes, cfg.VaultRoot), cfg.ScanSpec); err != nil {
				return err
			}
			scheduler.Start(ctx)
			logutil.GetLogger(ctx).Info("watching vault", zap.String("root", cfg.VaultRoot), zap.String("spec", cfg.ScanSpec))
			<-ctx.Done()
			scheduler.Stop()
			return nil
		},
	}

	var promptName string
	var promptFile string
	summarizeCmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "summarize a text file (or stdin) and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, deps, err := setup(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var data []byte
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			if promptFile != "" {
				return summarizeWithPromptFile(ctx, deps, promptFile, string(data))
			}
			res, err := deps.summarizer.SummarizeWithVariables(ctx, string(data), nil, promptName)
			if err != nil {
				return err
			}
			if !res.Available() {
				return fmt.Errorf("no ai backend configured")
			}
			fmt.Println(res.Text)
			return nil
		},
	}
	summarizeCmd.Flags().StringVar(&promptName, "prompt", "", "named prompt template to use")
	summarizeCmd.Flags().StringVar(&promptFile, "prompt-file", "", "explicit prompt template file")

	rootCmd.AddCommand(processCmd, watchCmd, summarizeCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("command failed", zap.Error(err))
	}
}

type deps struct {
	generator  ai.IGenerator
	prompts    *prompt.FileService
	summarizer service.Summarizer
	notes      *service.NoteService
}

func setup(configPath string) (*config.Config, *deps, error) {
	if configPath == "" {
		return nil, nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

	generator, err := buildGenerator(cfg.AI)
	if err != nil {
		return nil, nil, err
	}
	if generator == nil {
		logutil.GetLogger(context.Background()).Warn("no ai provider configured, notes will not carry summaries")
	}

	prompts := prompt.NewFileService(cfg.PromptsDir)
	summarizer := summarize.New(generator, prompts, chunking.NewChunker(), summarize.Config{
		ChunkThreshold: cfg.Chunking.Threshold,
		ChunkSize:      cfg.Chunking.ChunkSize,
		ChunkOverlap:   cfg.Chunking.Overlap,
	})
	cached := service.NewCachedSummarizer(summarizer, cfg.Cache.Size, time.Duration(cfg.Cache.TTLHours)*time.Hour)

	mapper := vault.NewMapper(cfg.VaultRoot, cfg.OneDriveBase)
	notes := service.NewNoteService(
		mapper,
		cfg.OutputDir,
		document.NewPDFProcessor(mapper, cached, ""),
		document.NewVideoProcessor(mapper, cached, ""),
		document.NewMarkdownProcessor(mapper, cached, ""),
	)
	return cfg, &deps{
		generator:  generator,
		prompts:    prompts,
		summarizer: cached,
		notes:      notes,
	}, nil
}

// buildGenerator assembles the primary provider plus fallbacks into one
// failover generator. No provider configured means no generator at all,
// which the summarizer reports as "unavailable".
func buildGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	entries := make([]ai.GeneratorEntry, 0, len(cfg.Fallbacks)+1)

	primary, err := ai.NewProvider(cfg.Provider, cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("init ai provider: %w", err)
	}
	entries = append(entries, ai.GeneratorEntry{
		Name:      cfg.Provider,
		Generator: ai.NewGenerator(primary, cfg.Model, timeout),
	})
	for _, fb := range cfg.Fallbacks {
		p, err := ai.NewProvider(fb.Provider, fb.Data)
		if err != nil {
			return nil, fmt.Errorf("init fallback ai provider %s: %w", fb.Provider, err)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      fb.Provider,
			Generator: ai.NewGenerator(p, fb.Model, timeout),
		})
	}
	return ai.NewGroupGenerator(entries), nil
}

// summarizeWithPromptFile bypasses named-template resolution: the template
// is read from an explicit path and the generator is invoked directly.
func summarizeWithPromptFile(ctx context.Context, d *deps, path, content string) error {
	if d.generator == nil {
		return fmt.Errorf("no ai backend configured")
	}
	text := d.prompts.LoadAndSubstitute(ctx, path, map[string]string{"content": content})
	if text == "" {
		return fmt.Errorf("prompt file %s is empty or unreadable", path)
	}
	out, err := d.generator.Generate(ctx, text)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
