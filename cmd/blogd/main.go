package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thereayou/blog-lite/cmd/server"
	"github.com/thereayou/blog-lite/internal/config"
	"github.com/thereayou/blog-lite/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "blogd",
		Short:         "Blog users and posts HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := serveCmd()
	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())
	rootCmd.AddCommand(serve, seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*server.Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	return server.NewServer(cfg)
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Seed an empty store, then serve HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			noSeed, _ := cmd.Flags().GetBool("no-seed")

			srv, err := setup()
			if err != nil {
				return err
			}

			if srv.Config.Seed.OnStartup && !noSeed {
				if err := srv.Seed(cmd.Context()); err != nil {
					_ = srv.DB.Close()
					return fmt.Errorf("seed failed: %w", err)
				}
			}

			return srv.Run()
		},
	}
	cmd.Flags().Bool("no-seed", false, "skip CSV seeding on startup")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Import users.csv and posts.csv from DATA_DIR into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := setup()
			if err != nil {
				return err
			}
			defer srv.DB.Close()

			if err := srv.Seed(cmd.Context()); err != nil {
				return err
			}
			log.Info().Msg("Seed step finished")
			return nil
		},
	}
}
