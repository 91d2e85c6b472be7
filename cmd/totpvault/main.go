package main

import (
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/totpvault/internal/cli"
	"codeberg.org/snonux/totpvault/internal/processor"
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

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, _ []string, flags *cli.Flags) error {
	// Let config file values fill in paths the user did not override
	cli.ApplyConfig(cmd, flags)

	proc := processor.NewProcessor(flags)

	// --decrypt and --rebuild read the store; everything else enrolls a
	// new TOTP record.
	if flags.Decrypt || flags.Rebuild {
		return proc.List(cmd.Context())
	}

	return proc.Enroll(cmd.Context())
}
