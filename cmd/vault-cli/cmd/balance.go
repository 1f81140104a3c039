package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vault-core/internal/service"
	"vault-core/internal/starknet"
	"vault-core/pkg/u256"
)

var (
	balanceRpcUrl   string
	balanceVault    string
	balanceToken    string
	balanceDecimals int
)

// balanceCmd queries an account's balance over Starknet JSON-RPC.
var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Query an account's vault or token balance",
	Long: `Reads the account's balance from the vault contract over Starknet
JSON-RPC and prints the raw limbs plus the decoded amount. With
--token it reads the ERC-20 balanceOf instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		caller := starknet.NewClient(balanceRpcUrl, "")
		svc := service.NewBalanceService(caller, balanceVault, balanceToken, balanceDecimals)

		var b *service.Balance
		if balanceToken != "" {
			b = svc.Erc20Balance(ctx, args[0])
		} else {
			if balanceVault == "" {
				return fmt.Errorf("either --vault or --token is required")
			}
			b = svc.VaultBalance(ctx, args[0])
		}

		fmt.Printf("address: %s\n", b.Address)
		fmt.Printf("low:     %s\n", b.Low)
		fmt.Printf("high:    %s\n", b.High)
		fmt.Printf("amount:  %s\n", b.Amount)
		return nil
	},
}

func init() {
	balanceCmd.Flags().StringVar(&balanceRpcUrl, "rpc-url", "https://starknet-sepolia.public.blastapi.io", "Starknet JSON-RPC endpoint")
	balanceCmd.Flags().StringVar(&balanceVault, "vault", "", "vault contract address")
	balanceCmd.Flags().StringVar(&balanceToken, "token", "", "ERC-20 contract to read balanceOf from")
	balanceCmd.Flags().IntVar(&balanceDecimals, "decimals", u256.DefaultDecimals, "token decimals")
	rootCmd.AddCommand(balanceCmd)
}
