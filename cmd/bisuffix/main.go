package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/bisuffix/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bisuffix",
	Short: "Conditionally append a suffix to method names in .await expressions",
	Long: `bisuffix rewrites expression source so that one call site can compile
against two API variants: a suffixed asynchronous-style variant and an
unsuffixed blocking-style variant. The active variant is selected by
exactly one of the mutually exclusive "suffixed" and "blocking" flags,
which may come from the command line, the BISUFFIX_* environment, or a
.bisuffix.yaml config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringP("code", "c", "", "Expression to process")
	pf.Bool("stdin", false, "Read the expression from stdin")
	pf.String("filename", "", "Filename used in error positions")
	pf.Bool("no-color", false, "Disable colored output")
	viper.BindPFlag("code", pf.Lookup("code"))
	viper.BindPFlag("stdin", pf.Lookup("stdin"))
	viper.BindPFlag("filename", pf.Lookup("filename"))
	viper.BindPFlag("no-color", pf.Lookup("no-color"))

	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	viper.SetConfigName(".bisuffix")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
	viper.SetEnvPrefix("bisuffix")
	viper.AutomaticEnv()
	// A missing config file is fine; flags and env still apply
	_ = viper.ReadInConfig()
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bisuffix %s (commit %s, built %s)\n", version, commit, date)
	},
}

func fatal(err error) {
	var msg string
	if friendly, ok := err.(errors.FriendlyError); ok {
		msg = friendly.FriendlyErrorMessage()
	} else {
		msg = err.Error()
	}
	fmt.Fprintln(os.Stderr, color.RedString(msg))
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
