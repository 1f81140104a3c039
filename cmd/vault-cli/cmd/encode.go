package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vault-core/pkg/u256"
)

var encodeDecimals int

// encodeCmd converts a decimal token amount to a 128-bit limb pair.
var encodeCmd = &cobra.Command{
	Use:   "encode <amount>",
	Short: "Convert a decimal amount to low/high limbs",
	Long: `Scales the amount by 10^decimals, truncating extra fractional
digits, and prints the resulting 256-bit value split into two 128-bit
hex limbs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := u256.Encode(args[0], encodeDecimals)
		if err != nil {
			return fmt.Errorf("encode %q: %w", args[0], err)
		}
		fmt.Printf("integer: %s\n", v.Integer)
		fmt.Printf("low:     %s\n", v.Low)
		fmt.Printf("high:    %s\n", v.High)
		return nil
	},
}

func init() {
	encodeCmd.Flags().IntVar(&encodeDecimals, "decimals", u256.DefaultDecimals, "token decimals")
	rootCmd.AddCommand(encodeCmd)
}
