package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"vaultdash/pkg/logger"
)

const (
	defaultMaxRetries  = 5
	defaultBackoffBase = 2 * time.Second
	defaultTimeout     = 15 * time.Second
	infoEndpoint       = "/info"
)

type HyperliquidRestClient struct {
	url         string
	httpClient  *http.Client
	maxRetries  int
	backoffBase time.Duration
}

type Option func(*HyperliquidRestClient)

func WithHTTPClient(c *http.Client) Option {
	return func(rest *HyperliquidRestClient) {
		if c != nil {
			rest.httpClient = c
		}
	}
}

// WithTimeout 单次请求超时，需在 WithHTTPClient 之后使用；
// 会复制一份 http.Client，不修改调用方传入的实例
func WithTimeout(timeout time.Duration) Option {
	return func(rest *HyperliquidRestClient) {
		if timeout <= 0 {
			return
		}
		c := *rest.httpClient
		c.Timeout = timeout
		rest.httpClient = &c
	}
}

// WithRetry 设置最大尝试次数和指数退避的基数
func WithRetry(maxRetries int, backoffBase time.Duration) Option {
	return func(rest *HyperliquidRestClient) {
		if maxRetries > 0 {
			rest.maxRetries = maxRetries
		}
		if backoffBase > 0 {
			rest.backoffBase = backoffBase
		}
	}
}

func NewHyperliquidRestClient(rawUrl string, opts ...Option) (*HyperliquidRestClient, error) {
	parsedUrl, err := url.Parse(rawUrl)
	if err != nil || parsedUrl.Scheme == "" || parsedUrl.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", rawUrl)
	}
	parsedUrl.Path = strings.TrimSuffix(parsedUrl.Path, "/")

	rest := &HyperliquidRestClient{
		url:         parsedUrl.String(),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
	}
	for _, opt := range opts {
		opt(rest)
	}
	return rest, nil
}

// doRequestWithContext 发送 POST 请求，网络错误和 429 按 backoffBase * 2^attempt 退避重试，
// 其它非 200 状态直接返回错误
func (rest *HyperliquidRestClient) doRequestWithContext(ctx context.Context, endpoint string, requestType string, additionalParams map[string]interface{}, result interface{}) error {
	reqBody := map[string]interface{}{"type": requestType}
	for key, value := range additionalParams {
		reqBody[key] = value
	}
	reqBodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < rest.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// 每次重试都重新构建请求，Body 读过之后不能复用
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, rest.url+endpoint, bytes.NewReader(reqBodyJSON))
		if err != nil {
			return fmt.Errorf("failed to create new request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		body, status, err := rest.do(req)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("failed to execute request (network error): %w", err)
		case status == http.StatusOK:
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to unmarshal %s response: %w", requestType, err)
			}
			return nil
		case status == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("received 429 Too Many Requests on attempt %d", attempt+1)
		default:
			return fmt.Errorf("received non-OK HTTP status %d for %s", status, requestType)
		}

		if attempt == rest.maxRetries-1 {
			break
		}
		waitTime := rest.backoffBase * time.Duration(1<<attempt)
		logger.Warnf("HyperliquidRestClient retrying %s after %v: %v", requestType, waitTime, lastErr)

		timer := time.NewTimer(waitTime)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return fmt.Errorf("API failed after %d attempts, last error: %w", rest.maxRetries, lastErr)
}

func (rest *HyperliquidRestClient) do(req *http.Request) ([]byte, int, error) {
	resp, err := rest.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
