// @title           plantNet API
// @version         1.0
// @description     Plant marketplace backend: catalogue, checkout, orders and accounts.
// @BasePath        /
//
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        token
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var envFile string

var rootCmd = &cobra.Command{
	Use:           "plantnet",
	Short:         "plantNet marketplace API",
	Long:          "plantnet serves the plantNet storefront API and carries the maintenance commands that go with it.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment")

	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routesCmd)

	// Database
	rootCmd.AddCommand(indexesCmd)

	// Sessions
	rootCmd.AddCommand(tokenCmd)
}
