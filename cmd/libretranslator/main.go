package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/libretranslator/internal/cli"
	"codeberg.org/snonux/libretranslator/internal/logging"
	"codeberg.org/snonux/libretranslator/internal/models"
	"codeberg.org/snonux/libretranslator/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run functions
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withLogging(func() error {
			return runCommand(cmd.Context(), flags)
		})
	}

	translateCmd := cli.CreateTranslateCommand(flags)
	translateCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withLogging(func() error {
			return processor.RunTranslate(cmd.Context(), flags, args, cmd.InOrStdin(), cmd.OutOrStdout())
		})
	}
	rootCmd.AddCommand(translateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// withLogging opens the diagnostics log around run. A log that cannot be
// opened is reported and otherwise ignored.
func withLogging(run func() error) error {
	dir, err := logging.ResolveDir(viper.GetString("log.path"))
	if err != nil {
		return err
	}
	logging.SetDir(dir)
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: diagnostics log disabled: %v\n", err)
	}
	defer logging.Close()

	if err := run(); err != nil {
		logging.Error(err.Error())
		return err
	}
	return nil
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), viper.GetString("endpoint.url"))
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	if flags.TUIMode {
		return processor.RunTUIMode(ctx)
	}

	// No subcommand - launch GUI mode by default
	return processor.RunGUIMode(ctx)
}
