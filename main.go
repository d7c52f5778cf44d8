package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/app"
	"github.com/shandysiswandi/blipzo-admin/internal/migration"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// @title           Blipzo Admin API
// @version         1.0
// @description     Blipzo Admin provides OTP sign-in, backups, delete requests and system health APIs for operators.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "blipzo-admin",
	Short:         "Blipzo admin backend",
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			//nolint:errcheck,gosec // ignore error
			os.Setenv("CONFIG_PATH", cfgFile)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back database migrations",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{migration.Up, migration.Down},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewViper(app.ConfigPath())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		defer cfg.Close()

		if err := migration.Run(cfg.GetString("database.url"), args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", args[0])
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin account maintenance",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the bootstrap admin from modules.adminauth.seed",
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		defer application.Stop(ctx)

		created, err := application.SeedAdmin(ctx)
		if err != nil {
			return err
		}

		if created {
			fmt.Fprintln(cmd.OutOrStdout(), "admin seeded")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "admin already exists")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $CONFIG_PATH or /config/config.yaml)")

	adminCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(adminCmd)
}

func serve() error {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
	return nil
}
