package cmd

import (
	"github.com/courseforge/courseforge/internal/config"
	"github.com/courseforge/courseforge/internal/model"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
	dbCmd.AddCommand(Seed())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDB(config.LoadConfig())
			err := model.Migrate(db)
			if err != nil {
				panic(err)
			}
		},
	}

	return command
}

func Seed() *cobra.Command {
	command := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo accounts and a sample course",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDB(config.LoadConfig())
			if err := model.Migrate(db); err != nil {
				panic(err)
			}
			if err := model.Seed(db); err != nil {
				panic(err)
			}
		},
	}

	return command
}
