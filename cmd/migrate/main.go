package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ferdian3456/clubconnect/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	log := config.NewZap("info")
	defer func() { _ = log.Sync() }()

	var source string

	open := func() (*migrate.Migrate, error) {
		koanf := config.NewKoanf(log, "POSTGRES_URL")
		m, err := migrate.New(source, koanf.String("POSTGRES_URL"))
		if err != nil {
			return nil, fmt.Errorf("create migrate instance: %w", err)
		}
		return m, nil
	}

	report := func(m *migrate.Migrate, action string) {
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Warn("failed to read migration version", zap.Error(err))
			return
		}
		log.Info("migration finished", zap.String("action", action), zap.Uint("version", version), zap.Bool("dirty", dirty))
	}

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply the clubconnect database migrations",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&source, "source", "file://db/migrations", "migration source url")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()

			err = m.Up()
			if err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return err
			}
			report(m, "up")
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back the given number of migrations, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()

			if len(args) == 1 {
				steps, err := strconv.Atoi(args[0])
				if err != nil || steps <= 0 {
					return fmt.Errorf("steps must be a positive number, got %q", args[0])
				}
				err = m.Steps(-steps)
				if err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return err
				}
			} else {
				err = m.Down()
				if err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return err
				}
			}
			report(m, "down")
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()

			report(m, "version")
			return nil
		},
	}

	forceCmd := &cobra.Command{
		Use:   "force <version>",
		Short: "Mark the schema as the given version and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("version must be a number, got %q", args[0])
			}

			m, err := open()
			if err != nil {
				return err
			}
			defer m.Close()

			err = m.Force(version)
			if err != nil {
				return err
			}
			report(m, "force")
			return nil
		},
	}

	rootCmd.AddCommand(upCmd, downCmd, versionCmd, forceCmd)

	err := rootCmd.Execute()
	if err != nil {
		log.Error("migration failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
