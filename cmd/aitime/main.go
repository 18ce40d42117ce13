package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/aitime/internal/profile"
)

func main() {
	rootCmd, err := newRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, error) {
	v := profile.NewViper()

	rootCmd := &cobra.Command{
		Use:          "aitime",
		Short:        "Parse natural language time expressions and report their accuracy",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(profile.KeyMode, "dev", "run mode (dev or prod)")
	flags.String(profile.KeyTimezone, "Asia/Shanghai", "default timezone")
	flags.String(profile.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(profile.KeyLogFormat, "text", "log format (text or json)")
	flags.Int(profile.KeyBatchLimit, 8, "concurrent parses for multiple expressions")
	if err := v.BindPFlags(flags); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}

	rootCmd.AddCommand(newParseCmd(v))
	rootCmd.AddCommand(newLabelsCmd())
	return rootCmd, nil
}

func loadProfile(v *viper.Viper) (*profile.Profile, error) {
	p := profile.FromViper(v)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
