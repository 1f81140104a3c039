package starknet

import "context"

// Call describes one contract invocation: an address, a human-readable
// entrypoint name and string-encoded felt calldata, matching the calldata
// encoding Starknet RPC nodes accept.
type Call struct {
	ContractAddress string   `json:"contract_address"`
	EntryPoint      string   `json:"entrypoint"`
	Calldata        []string `json:"calldata"`
}

// Caller submits reads and writes to the chain. Implementations may talk
// to an RPC node directly or go through a relayer holding the signing key;
// the engine only ever sees calldata in and a transaction hash out.
type Caller interface {
	// Call executes a read-only contract call and returns the raw felt
	// results.
	Call(ctx context.Context, call Call) ([]string, error)

	// Invoke submits a state-changing transaction and returns its hash.
	Invoke(ctx context.Context, call Call) (string, error)
}
