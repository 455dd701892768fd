package main

import (
	"fmt"

	"github.com/deepnoodle-ai/bisuffix"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [file]",
	Short: "Rewrite await call sites in an expression",
	Long: `Parses the input as a single expression, resolves the active mode from
the ambient configuration, appends the suffix to method names under
.await markers when the mode is "suffixed", and prints the resulting
expression.`,
	Args: cobra.MaximumNArgs(1),
	RunE: rewriteHandler,
}

func init() {
	f := rewriteCmd.Flags()
	f.StringP("suffix", "s", "_async", "Suffix appended to eligible method names")
	f.Bool("suffixed", false, "Select the suffixed (asynchronous) variant")
	f.Bool("blocking", false, "Select the unsuffixed (blocking) variant")
	viper.BindPFlag("suffix", f.Lookup("suffix"))
	viper.BindPFlag("suffixed", f.Lookup("suffixed"))
	viper.BindPFlag("blocking", f.Lookup("blocking"))
}

func rewriteHandler(cmd *cobra.Command, args []string) error {
	processGlobalFlags()

	code, err := getExprCode(cmd, args)
	if err != nil {
		return err
	}

	var opts []bisuffix.Option
	opts = append(opts, bisuffix.WithFlags(getModeFlags()))
	if filename := getFilename(args); filename != "" {
		opts = append(opts, bisuffix.WithFilename(filename))
	}

	output, err := bisuffix.Expand(cmd.Context(), viper.GetString("suffix"), code, opts...)
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}
