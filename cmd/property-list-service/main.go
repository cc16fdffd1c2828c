package main

import (
	"log"
	"os"

	"property-list-service/internal"
	"property-list-service/internal/constants"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var envPath string

func cmdServe() *cobra.Command {
	var noBanner bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP host and, if enabled, the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !noBanner {
				color.Green("property-list-service")
			}

			application, err := internal.NewApp(internal.AppOptions{EnvPath: envPath})
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Serve()
		},
	}

	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "Don't show banner")

	return cmd
}

func cmdBrowse() *cobra.Command {
	var (
		page        int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Print a page of the property list to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := internal.NewApp(internal.AppOptions{
				EnvPath:   envPath,
				LogWriter: os.Stderr,
			})
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Browse(page, interactive, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&page, "page", constants.InitialPage, "page to open")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read page commands from stdin (n, p, number, q)")

	return cmd
}

func main() {
	var rootCmd = &cobra.Command{
		Use:           "property-list-service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envPath, "env", "", ".env file; by default ./.env is loaded if present")

	rootCmd.AddCommand(cmdServe())
	rootCmd.AddCommand(cmdBrowse())

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Application run failed: %v", err)
	}
}
