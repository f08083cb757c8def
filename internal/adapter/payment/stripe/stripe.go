package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/payment"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

const defaultBaseURL = "https://api.stripe.com"

// Client creates hosted Checkout Sessions against Stripe's form-encoded REST
// API. The secret key comes from the admin-managed configuration, so a missing
// configuration surfaces as payment.ErrNotConfigured at call time.
type Client struct {
	config     payment.ConfigRepository
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(config payment.ConfigRepository, baseURL string, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		config:     config,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     log,
	}
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, items []payment.CheckoutItem, successURL, cancelURL string) (*payment.CheckoutSession, error) {
	cfg, err := c.config.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
		form.Set(prefix+"[price_data][currency]", "gbp")
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.PricePence, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][product_data][metadata][listing_id]", item.ListingID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("unexpected stripe response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if session.Error != nil {
			msg = session.Error.Message
		}
		c.logger.Errorf("stripe checkout session creation failed: %s", msg)
		return nil, fmt.Errorf("stripe rejected checkout session: %s", msg)
	}

	return &payment.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}
