package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gateway is a thin HTTP adapter over a remote ledger gateway. It carries no
// ledger logic of its own: it decodes structured rejections into SubmitError
// and reports everything else as a transport failure.
type Gateway struct {
	baseURL string
	client  *http.Client
}

func NewGateway(baseURL string, timeout time.Duration) (*Gateway, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if _, err := url.Parse(baseURL); err != nil || baseURL == "" {
		return nil, fmt.Errorf("invalid gateway URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (g *Gateway) LoadAccount(ctx context.Context, address string) (AccountSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/accounts/"+url.PathEscape(address), nil)
	if err != nil {
		return AccountSnapshot{}, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return AccountSnapshot{}, fmt.Errorf("load account: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AccountSnapshot{}, fmt.Errorf("load account: gateway returned %s", resp.Status)
	}
	var snapshot AccountSnapshot
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&snapshot); err != nil {
		return AccountSnapshot{}, fmt.Errorf("load account: decode response: %w", err)
	}
	return snapshot, nil
}

func (g *Gateway) SubmitTransaction(ctx context.Context, tx SignedTransaction) (SubmitResult, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return SubmitResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/transactions", bytes.NewReader(payload))
	if err != nil {
		return SubmitResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return SubmitResult{}, fmt.Errorf("submit: read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var result SubmitResult
		if err := json.Unmarshal(body, &result); err != nil {
			return SubmitResult{}, fmt.Errorf("submit: decode response: %w", err)
		}
		return result, nil
	case http.StatusBadRequest:
		var rejection SubmitError
		if err := json.Unmarshal(body, &rejection); err == nil && rejection.TransactionCode != "" {
			return SubmitResult{}, &rejection
		}
		return SubmitResult{}, fmt.Errorf("submit: gateway returned %s: %s", resp.Status, body)
	default:
		// Gateway timeouts and 5xx responses have no structured codes and
		// surface as transport failures.
		return SubmitResult{}, fmt.Errorf("submit: gateway returned %s", resp.Status)
	}
}
