package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultdash/pkg/hype/types"
)

const vaultPayload = `{
  "name": "Edge Vault",
  "vaultAddress": "0xac2322fe93c6b79f1178cfe77bc732f729bcb606",
  "leader": "0x1111111111111111111111111111111111111111",
  "description": "systematic",
  "apr": 0.42,
  "isClosed": false,
  "allowDeposits": true,
  "followers": [
    {"user": "0xaaa", "vaultEquity": "1100.5", "pnl": "100.5", "allTimePnl": "120.25", "daysFollowing": 12},
    {"user": "Leader", "vaultEquity": "5000", "pnl": "0", "allTimePnl": "250", "daysFollowing": 40}
  ],
  "portfolio": [
    ["day", {"accountValueHistory": [[1759363200000, "100.0"]], "pnlHistory": [], "vlm": "10.0"}],
    ["allTime", {
      "accountValueHistory": [[1759449600000, "110.0"], [1759363200000, "100.0"], [1759536000000, "NaN"], [1759536000000, "abc"], [1759622400000, "121"]],
      "pnlHistory": [[1759363200000, "0.0"], ["1759449600000", "10.0"], [1759622400000, 21]],
      "vlm": "1234.5"
    }],
    ["broken"],
    [42, {"accountValueHistory": []}]
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *HyperliquidRestClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithRetry(3, time.Millisecond)}, opts...)
	client, err := NewHyperliquidRestClient(srv.URL+"/", opts...)
	require.NoError(t, err)
	return client
}

func TestNewHyperliquidRestClient_InvalidURL(t *testing.T) {
	_, err := NewHyperliquidRestClient("not a url")
	assert.Error(t, err)
	_, err = NewHyperliquidRestClient("/info")
	assert.Error(t, err)
}

func TestVaultDetails_Decodes(t *testing.T) {
	var gotBody map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/info", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = w.Write([]byte(vaultPayload))
	})

	details, err := client.VaultDetails(context.Background(), "0xAC2322FE93C6B79F1178CFE77BC732F729BCB606")
	require.NoError(t, err)

	assert.Equal(t, "vaultDetails", gotBody["type"])
	assert.Equal(t, "0xac2322fe93c6b79f1178cfe77bc732f729bcb606", gotBody["vaultAddress"])

	assert.Equal(t, "Edge Vault", details.Name)
	assert.InDelta(t, 0.42, details.Apr, 1e-12)
	assert.True(t, details.AllowDeposits)
	require.Len(t, details.Followers, 2)
	assert.InDelta(t, 1100.5, details.Followers[0].VaultEquity, 1e-9)
	assert.InDelta(t, 120.25, details.Followers[0].AllTimePnl, 1e-9)
	assert.Equal(t, 12, details.Followers[0].DaysFollowing)
	assert.InDelta(t, 6100.5, details.TotalEquity(), 1e-9)

	assert.Equal(t, []string{"day", "allTime"}, details.Portfolio.Labels)
	all, ok := details.Portfolio.Window(types.WindowAllTime)
	require.True(t, ok)
	require.Len(t, all.AccountValue, 3)
	assert.Equal(t, 100.0, all.AccountValue[0].Value)
	assert.Equal(t, 110.0, all.AccountValue[1].Value)
	assert.Equal(t, 121.0, all.AccountValue[2].Value)
	assert.Equal(t, int64(1759363200000), all.AccountValue[0].Millis())
	require.Len(t, all.Pnl, 3)
	assert.Equal(t, 10.0, all.Pnl[1].Value)
	assert.InDelta(t, 1234.5, all.Vlm, 1e-9)

	_, ok = details.Portfolio.Window(types.WindowMonth)
	assert.False(t, ok)
}

func TestPortfolio_Decodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[["month", {"accountValueHistory": [[1759363200000, "5"]], "pnlHistory": [[1759363200000, "1"]], "vlm": "0"}]]`))
	})
	p, err := client.Portfolio(context.Background(), "0xabc")
	require.NoError(t, err)
	month, ok := p.Window(types.WindowMonth)
	require.True(t, ok)
	assert.Len(t, month.AccountValue, 1)
	assert.Len(t, month.Pnl, 1)
}

func TestDoRequest_RetriesTooManyRequests(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(vaultPayload))
	})

	details, err := client.VaultDetails(context.Background(), "0xac2322fe93c6b79f1178cfe77bc732f729bcb606")
	require.NoError(t, err)
	assert.Equal(t, "Edge Vault", details.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoRequest_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.VaultDetails(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoRequest_FailsFastOnOtherStatus(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.VaultDetails(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoRequest_HonoursCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, WithRetry(5, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := client.VaultDetails(ctx, "0xabc")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDoRequest_BadJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":`))
	})
	_, err := client.VaultDetails(context.Background(), "0xabc")
	assert.Error(t, err)
}

func TestParsePortfolio_Empty(t *testing.T) {
	p, err := parsePortfolio(nil)
	require.NoError(t, err)
	_, ok := p.Window(types.WindowAllTime)
	assert.False(t, ok)

	p, err = parsePortfolio([]byte("null"))
	require.NoError(t, err)
	assert.Empty(t, p.Labels)

	_, err = parsePortfolio([]byte(`{"oops": 1}`))
	assert.Error(t, err)
}

func TestWithTimeout(t *testing.T) {
	client, err := NewHyperliquidRestClient("https://api.hyperliquid.xyz", WithTimeout(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
	assert.Equal(t, "https://api.hyperliquid.xyz", client.url)

	client, err = NewHyperliquidRestClient("https://api.hyperliquid.xyz", WithTimeout(0))
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}

func TestWithTimeout_KeepsCallerClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	client, err := NewHyperliquidRestClient("https://api.hyperliquid.xyz", WithHTTPClient(shared), WithTimeout(time.Second))
	require.NoError(t, err)

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, time.Second, client.httpClient.Timeout)
	assert.NotSame(t, shared, client.httpClient)

	before := http.DefaultClient.Timeout
	_, err = NewHyperliquidRestClient("https://api.hyperliquid.xyz", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Equal(t, before, http.DefaultClient.Timeout)
}
