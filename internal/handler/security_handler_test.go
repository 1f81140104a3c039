package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault-core/internal/security"
	"vault-core/internal/service"
	"vault-core/internal/starknet"
	"vault-core/pkg/store"
	"vault-core/pkg/validator"
)

type stubCaller struct{}

func (stubCaller) Call(ctx context.Context, call starknet.Call) ([]string, error) {
	return []string{"0x0", "0x0"}, nil
}

func (stubCaller) Invoke(ctx context.Context, call starknet.Call) (string, error) {
	return "0xhash", nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *security.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Init()

	engine, err := security.NewEngine(context.Background(), store.NewMemoryStore(),
		security.DefaultLimits(), "", nil)
	require.NoError(t, err)

	transfers := service.NewTransferService(engine, stubCaller{}, nil, nil, "0xvault", 18, "")
	h := NewSecurityHandler(engine, transfers)

	r := gin.New()
	r.GET("/status", h.Status)
	r.POST("/evaluate", h.Evaluate)
	r.POST("/freeze", h.Freeze)
	r.POST("/unfreeze", h.Unfreeze)
	r.GET("/history", h.History)
	r.DELETE("/history", h.ClearHistory)
	return r, engine
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestStatusEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	e := decode(t, w)
	assert.Equal(t, 0, e.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(e.Data, &data))
	assert.Equal(t, false, data["is_frozen"])
	assert.Contains(t, data, "limits")
	assert.Contains(t, data, "remaining_daily")
}

func TestFreezeUnfreezeEndpoints(t *testing.T) {
	r, engine := newTestRouter(t)

	w := do(r, http.MethodPost, "/freeze", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode(t, w).Code)
	assert.True(t, engine.IsFrozen())

	w = do(r, http.MethodPost, "/unfreeze", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode(t, w).Code)
	assert.False(t, engine.IsFrozen())
}

func TestEvaluateEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/evaluate", `{"amount":"2.5"}`)
	e := decode(t, w)
	assert.Equal(t, 0, e.Code)

	var v security.Verdict
	require.NoError(t, json.Unmarshal(e.Data, &v))
	assert.Equal(t, security.Deny, v.Decision)
	assert.Equal(t, security.ReasonExceedsPerTransactionLimit, v.Reason)

	w = do(r, http.MethodPost, "/evaluate", `{}`)
	assert.NotEqual(t, 0, decode(t, w).Code)
}

func TestHistoryEndpoints(t *testing.T) {
	r, engine := newTestRouter(t)

	ctx := context.Background()
	_, err := engine.RecordTransaction(ctx, mustDecimal(t, "0.5"), "0xabc")
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/history", "")
	e := decode(t, w)
	var records []security.Record
	require.NoError(t, json.Unmarshal(e.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "0xabc", records[0].Recipient)

	w = do(r, http.MethodDelete, "/history", "")
	require.Equal(t, 0, decode(t, w).Code)

	w = do(r, http.MethodGet, "/history", "")
	e = decode(t, w)
	records = nil
	require.NoError(t, json.Unmarshal(e.Data, &records))
	assert.Empty(t, records)
}
