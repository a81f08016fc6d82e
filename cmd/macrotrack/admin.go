package main

import (
	"fmt"
	"os"

	"github.com/Bhaskar125/macro-tracking-webapp/config"
	"github.com/Bhaskar125/macro-tracking-webapp/services"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}
		log.Info("schema up to date")
		return nil
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load foods into the catalogue",
	Long: `Load foods into the catalogue. Foods already present (same name and
brand) are skipped.

Examples:
  # Load the built-in starter foods
  macrotrack seed

  # Load a CSV with the header
  # name,brand,calories,protein,carbs,fat,fiber,sugar,sodium,serving_size,serving_unit
  macrotrack seed --file foods.csv`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "CSV file to import instead of the starter foods")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	foods := services.NewFoodService(db, nil)

	var added int
	if seedFile == "" {
		added, err = foods.Seed(cmd.Context(), services.DefaultFoods)
	} else {
		f, openErr := os.Open(seedFile)
		if openErr != nil {
			return fmt.Errorf("open %s: %w", seedFile, openErr)
		}
		defer f.Close()
		added, err = foods.ImportCSV(cmd.Context(), f)
	}
	if err != nil {
		return err
	}
	log.WithField("added", added).Info("catalogue seeded")
	return nil
}
