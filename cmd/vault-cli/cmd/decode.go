package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vault-core/pkg/u256"
)

var decodeDecimals int

// decodeCmd converts a limb pair back to a decimal token amount.
var decodeCmd = &cobra.Command{
	Use:   "decode <low> <high>",
	Short: "Convert low/high limbs to a decimal amount",
	Long: `Recombines two 128-bit limbs (hex with 0x prefix, or plain
decimal) into a 256-bit integer and prints it as a human readable
token amount.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := u256.Decode(args[0], args[1], decodeDecimals)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Println(amount)
		return nil
	},
}

func init() {
	decodeCmd.Flags().IntVar(&decodeDecimals, "decimals", u256.DefaultDecimals, "token decimals")
	rootCmd.AddCommand(decodeCmd)
}
