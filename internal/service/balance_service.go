package service

import (
	"context"

	"go.uber.org/zap"

	"vault-core/internal/starknet"
	"vault-core/pkg/logger"
	"vault-core/pkg/monitor"
	"vault-core/pkg/u256"
)

// Entrypoints read by the balance service.
const (
	vaultBalanceEntrypoint = "get_chipi_balance"
	erc20BalanceEntrypoint = "balanceOf"
)

// BalanceService reads balances from the vault contract and the underlying
// ERC-20 token, both of which return u128 limb pairs.
type BalanceService struct {
	caller        starknet.Caller
	vaultContract string
	tokenContract string
	decimals      int
}

func NewBalanceService(caller starknet.Caller, vaultContract, tokenContract string, decimals int) *BalanceService {
	return &BalanceService{
		caller:        caller,
		vaultContract: vaultContract,
		tokenContract: tokenContract,
		decimals:      decimals,
	}
}

// Balance is a decoded limb pair plus its human decimal form.
type Balance struct {
	Address string `json:"address"`
	Low     string `json:"balance_low"`
	High    string `json:"balance_high"`
	Amount  string `json:"balance"`
}

// VaultBalance reads the caller's balance inside the vault. A failed read
// degrades to a zero balance rather than an error, so a flaky RPC node
// never blanks the wallet UI.
func (s *BalanceService) VaultBalance(ctx context.Context, address string) *Balance {
	return s.read(ctx, s.vaultContract, vaultBalanceEntrypoint, address)
}

// Erc20Balance reads the on-token balance of an account.
func (s *BalanceService) Erc20Balance(ctx context.Context, address string) *Balance {
	return s.read(ctx, s.tokenContract, erc20BalanceEntrypoint, address)
}

func (s *BalanceService) read(ctx context.Context, contract, entrypoint, address string) *Balance {
	zero := &Balance{Address: address, Low: "0x0", High: "0x0", Amount: "0"}

	result, err := s.caller.Call(ctx, starknet.Call{
		ContractAddress: contract,
		EntryPoint:      entrypoint,
		Calldata:        []string{address},
	})
	if err != nil {
		logger.Error("balance query failed",
			zap.String("entrypoint", entrypoint), zap.String("address", address), zap.Error(err))
		countBalanceQuery("error")
		return zero
	}
	if len(result) < 2 {
		logger.Warn("balance query returned short result",
			zap.String("entrypoint", entrypoint), zap.Int("felts", len(result)))
		countBalanceQuery("malformed")
		return zero
	}

	amount, err := u256.Decode(result[0], result[1], s.decimals)
	if err != nil {
		logger.Error("balance limbs undecodable",
			zap.String("low", result[0]), zap.String("high", result[1]), zap.Error(err))
		countBalanceQuery("malformed")
		return zero
	}

	countBalanceQuery("ok")
	return &Balance{
		Address: address,
		Low:     result[0],
		High:    result[1],
		Amount:  amount,
	}
}

func countBalanceQuery(outcome string) {
	if monitor.Vault != nil {
		monitor.Vault.BalanceQueriesTotal.WithLabelValues(outcome).Inc()
	}
}
