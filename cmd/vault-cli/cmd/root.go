package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command, invoked without subcommands.
var rootCmd = &cobra.Command{
	Use:   "vault-cli",
	Short: "Vault amount codec and balance tool",
	Long: `Command line companion for the vault service.
Converts token amounts to and from 128-bit limb pairs and queries
on-chain balances.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
