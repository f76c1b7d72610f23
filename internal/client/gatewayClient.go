package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/config"
)

// GatewayClient talks to the payment gateway's order API. An order is an
// ephemeral gateway-side reservation used to initialize the client checkout
// widget; it is not persisted locally and abandoned orders are not
// reconciled.
type GatewayClient interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*CreateOrderResult, error)
}

type gatewayClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	keyID      string
	keySecret  string
}

type CreateOrderResult struct {
	OrderID  string
	Amount   int64
	Currency string
}

type gatewayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func NewGatewayClient(gatewayCfg *config.Gateway) GatewayClient {
	return &gatewayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: gatewayCfg.BaseApiURL,
		keyID:      gatewayCfg.KeyID,
		keySecret:  gatewayCfg.KeySecret,
	}
}

func (c *gatewayClientImpl) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*CreateOrderResult, error) {
	payload := map[string]interface{}{
		"amount":   amount, // minor units
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.keyID + ":" + c.keySecret),
	)
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.GatewayError{Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, &apperr.GatewayError{
			Op:  "create order",
			Err: fmt.Errorf("status=%d body=%s", resp.StatusCode, string(b)),
		}
	}

	var result gatewayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	return &CreateOrderResult{
		OrderID:  result.ID,
		Amount:   result.Amount,
		Currency: result.Currency,
	}, nil
}
