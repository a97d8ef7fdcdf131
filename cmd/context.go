package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "courseforge"
	configFileDir  = "./.tmp"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
	contextCommand.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
}

// Context holds the server the CLI talks to.
type Context struct {
	URL    string `json:"url"`
	APIKey string `json:"apiKey"`
}

// saves the context info to the config file in ./.tmp
func setContextCommand() *cobra.Command {
	var url string
	var apiKey string
	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if url == "" || apiKey == "" {
				color.Red(`missing: --url and --api-key`)
				return
			}

			viper.SetConfigName(configFileName)
			viper.AddConfigPath(configFileDir)
			viper.SetConfigType("yml")
			viper.Set("context", Context{
				URL:    url,
				APIKey: apiKey,
			})

			if err := os.MkdirAll(configFileDir, os.ModePerm); err != nil {
				fmt.Println("error creating config dir: ", err)
				return
			}
			if err := viper.WriteConfigAs(configFileDir + "/" + configFileName + ".yml"); err != nil {
				fmt.Println("error writing config file: ", err)
			} else {
				fmt.Println("context saved")
			}
		},
	}

	command.Flags().StringVarP(&url, "url", "u", "", "server url, e.g. http://localhost:8080")
	command.Flags().StringVarP(&apiKey, "api-key", "k", "", "external api key")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := readContext()
			if ctx.URL == "" {
				color.Yellow("no context set")
				return
			}
			fmt.Println("url: ", ctx.URL)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			if err := os.Remove(configFileDir + "/" + configFileName + ".yml"); err != nil && !os.IsNotExist(err) {
				fmt.Println("error removing config file: ", err)
				return
			}
			fmt.Println("context reset")
		},
	}

	return command
}

func readContext() Context {
	var ctx Context

	viper.SetConfigName(configFileName)
	viper.AddConfigPath(configFileDir)
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return ctx
	}

	ctx.URL = viper.GetString("context.url")
	ctx.APIKey = viper.GetString("context.apikey")

	return ctx
}
