package main

import (
	"errors"
	"io"
	"os"

	"github.com/deepnoodle-ai/bisuffix/mode"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// getExprCode returns the expression source from the -c flag, --stdin, or a
// file argument. Exactly one input source must be provided.
func getExprCode(cmd *cobra.Command, args []string) (string, error) {
	codeSet := viper.GetString("code") != ""
	stdinSet := viper.GetBool("stdin")
	fileProvided := len(args) > 0

	count := 0
	if codeSet {
		count++
	}
	if stdinSet {
		count++
	}
	if fileProvided {
		count++
	}
	if count > 1 {
		return "", errors.New("multiple input sources specified")
	}
	if count == 0 {
		return "", errors.New("no input provided (use -c, --stdin, or a file argument)")
	}

	if stdinSet {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if fileProvided {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	return viper.GetString("code"), nil
}

// getFilename returns the filename to attach to error positions: the
// --filename flag if set, else the file argument if one was given.
func getFilename(args []string) string {
	if name := viper.GetString("filename"); name != "" {
		return name
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// getModeFlags builds the ambient configuration snapshot from Viper, which
// layers command-line flags over BISUFFIX_* environment variables over the
// config file.
func getModeFlags() mode.Flags {
	return mode.Flags{
		mode.FlagSuffixed:   viper.GetBool(mode.FlagSuffixed),
		mode.FlagUnsuffixed: viper.GetBool(mode.FlagUnsuffixed),
	}
}
