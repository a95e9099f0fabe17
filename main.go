package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"library-catalog/config"
	"library-catalog/library"
	"library-catalog/logger"
	"library-catalog/shell"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		storeKind string
		seedFile  string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:           "library",
		Short:         "Track library books: add, issue, return and list them",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// .env is optional.
			_ = godotenv.Load()

			var ops []config.Option
			if cmd.Flags().Changed("store") {
				ops = append(ops, config.WithStore(storeKind))
			}
			if cmd.Flags().Changed("seed") {
				ops = append(ops, config.WithSeedFile(seedFile))
			}
			if cmd.Flags().Changed("log-level") {
				level, err := zapcore.ParseLevel(logLevel)
				if err != nil {
					return err
				}
				ops = append(ops, config.WithLogLevel(level))
			}
			cfg, err := config.NewConfig(ops...)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&storeKind, "store", library.StoreMemory, "catalog backend: memory or sqlite")
	cmd.Flags().StringVar(&seedFile, "seed", "", "preload books from a .csv or .json file")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	return cmd
}

func run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	defer log.Sync() //nolint:errcheck

	manager, err := library.NewLibraryManager(cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer manager.Close()

	if cfg.SeedFile != "" {
		loaded, err := manager.SeedFromFile(cfg.SeedFile)
		if err != nil {
			// Rejected rows are reported, the shell still starts.
			log.Warn("seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
			fmt.Fprintf(os.Stderr, "Seed warnings: %v\n", err)
		}
		fmt.Printf("Loaded %d book(s) from %s\n", loaded, cfg.SeedFile)
	}

	sh := shell.New(os.Stdin, os.Stdout, manager, log.Named("shell"))
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		sh.Interactive = true
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			sh.Width = w
		}
	}
	return sh.Run()
}
