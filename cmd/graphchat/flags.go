package main

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flags available to all commands
type GlobalFlags struct {
	Verbose    bool
	ConfigFile string
}

// RegisterGlobalFlags registers persistent flags on the root command
func RegisterGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log at debug level")
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to config file (default: $GRAPHCHAT_HOME/config.yaml)")
}

// IsVerbose returns true if verbose mode is enabled
func (f *GlobalFlags) IsVerbose() bool {
	return f.Verbose
}
