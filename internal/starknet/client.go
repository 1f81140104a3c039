package starknet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"vault-core/pkg/logger"
)

// Client talks JSON-RPC to a Starknet node for reads and posts writes to a
// relayer that holds the hot-wallet signing key. The service never touches
// key material itself.
type Client struct {
	rpcURL     string
	relayerURL string
	http       *http.Client
}

func NewClient(rpcURL, relayerURL string) *Client {
	return &Client{
		rpcURL:     rpcURL,
		relayerURL: relayerURL,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

type rpcRequest struct {
	JsonRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type callParams struct {
	Request callRequest `json:"request"`
	BlockID string      `json:"block_id"`
}

type callRequest struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

// Call executes starknet_call against the latest block.
func (c *Client) Call(ctx context.Context, call Call) ([]string, error) {
	calldata := call.Calldata
	if calldata == nil {
		calldata = []string{}
	}
	req := rpcRequest{
		JsonRPC: "2.0",
		ID:      1,
		Method:  "starknet_call",
		Params: callParams{
			Request: callRequest{
				ContractAddress:    call.ContractAddress,
				EntryPointSelector: SelectorFromName(call.EntryPoint),
				Calldata:           calldata,
			},
			BlockID: "latest",
		},
	}

	body, err := c.post(ctx, c.rpcURL, req)
	if err != nil {
		return nil, err
	}

	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("starknet call: decode response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("starknet call %s: %w", call.EntryPoint, resp.Error)
	}

	var result []string
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("starknet call: decode result: %w", err)
	}
	return result, nil
}

type invokeRequest struct {
	ContractAddress string   `json:"contract_address"`
	EntryPoint      string   `json:"entrypoint"`
	Calldata        []string `json:"calldata"`
}

type invokeResponse struct {
	TransactionHash string `json:"transaction_hash"`
	Error           string `json:"error"`
}

// Invoke hands the call to the relayer for signing and submission and
// returns the resulting transaction hash.
func (c *Client) Invoke(ctx context.Context, call Call) (string, error) {
	if c.relayerURL == "" {
		return "", fmt.Errorf("starknet invoke: no relayer configured")
	}
	calldata := call.Calldata
	if calldata == nil {
		calldata = []string{}
	}

	body, err := c.post(ctx, c.relayerURL, invokeRequest{
		ContractAddress: call.ContractAddress,
		EntryPoint:      call.EntryPoint,
		Calldata:        calldata,
	})
	if err != nil {
		return "", err
	}

	var resp invokeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("starknet invoke: decode response: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("starknet invoke %s: %s", call.EntryPoint, resp.Error)
	}
	if resp.TransactionHash == "" {
		return "", fmt.Errorf("starknet invoke %s: relayer returned no transaction hash", call.EntryPoint)
	}
	return resp.TransactionHash, nil
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Debug("starknet endpoint returned non-200",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%s returned status %d: %s", url, resp.StatusCode, body)
	}
	return body, nil
}
