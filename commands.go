package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/interior-consult/config"
	"github.com/yeremiapane/interior-consult/database"
	"github.com/yeremiapane/interior-consult/router"
	"github.com/yeremiapane/interior-consult/services"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/gorm"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "interior-consult",
		Short:         "Consultation and estimate backend for interior renovation companies",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCompanyCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or extend the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
}

func newCompanyCmd() *cobra.Command {
	company := &cobra.Command{
		Use:   "company",
		Short: "Manage companies",
	}

	var code, name, password string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a company with a login code and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			created, err := services.NewCompanyService(db).Create(context.Background(), code, name, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "company %q created (id=%d)\n", created.Code, created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&code, "code", "", "login code")
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&password, "password", "", "login password")
	_ = add.MarkFlagRequired("code")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("password")

	company.AddCommand(add)
	return company
}

func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	utils.InitLogger(cfg.LogFormat, cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func runServe() error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}
	database.CheckSchema(db)

	r, err := router.SetupRouter(db, cfg)
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	return r.Run(":" + cfg.Port)
}
