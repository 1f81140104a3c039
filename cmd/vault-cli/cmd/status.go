package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var statusServerURL string

// statusCmd prints the running service's security state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the service's security status",
	Long: `Fetches GET /api/v1/security/status from a running vault server
and pretty-prints the state: freeze flag, daily spend, remaining
allowances and the active limits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		data, err := fetchSecurityStatus(ctx, statusServerURL)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

// fetchSecurityStatus calls the status endpoint and returns the data
// payload pretty-printed. A non-zero envelope code is an error.
func fetchSecurityStatus(ctx context.Context, serverURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		serverURL+"/api/v1/security/status", nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch status: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Code int             `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	if envelope.Code != 0 {
		return nil, fmt.Errorf("server error %d: %s", envelope.Code, envelope.Msg)
	}

	var pretty []byte
	if pretty, err = json.MarshalIndent(json.RawMessage(envelope.Data), "", "  "); err != nil {
		return nil, err
	}
	return pretty, nil
}

func init() {
	statusCmd.Flags().StringVar(&statusServerURL, "server", "http://localhost:8080", "vault server base URL")
	rootCmd.AddCommand(statusCmd)
}
