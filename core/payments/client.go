package payments

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

	"go-events-api/core/constants"
	apperrors "go-events-api/core/errors"
	"go-events-api/core/logger"
)

// Client talks to the payments provider's REST API. The account key is the
// owning user's secret key, passed per call: keys live on user records, not
// in process-wide state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreatePrice creates a price (and implicitly a product) for an event ticket.
func (c *Client) CreatePrice(ctx context.Context, key string, params CreatePriceParams) (*Price, error) {
	form := url.Values{}
	form.Set("unit_amount", strconv.FormatInt(params.UnitAmount, 10))
	form.Set("currency", params.Currency)
	form.Set("product_data[name]", params.ProductName)
	if params.Recurring {
		form.Set("recurring[interval]", "month")
	}

	var price Price
	if err := c.do(ctx, key, http.MethodPost, "/prices", form, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

// CreatePaymentLink creates a shareable checkout link for a price.
func (c *Client) CreatePaymentLink(ctx context.Context, key string, params CreatePaymentLinkParams) (*PaymentLink, error) {
	qty := params.Quantity
	if qty < 1 {
		qty = 1
	}
	form := url.Values{}
	form.Set("line_items[0][price]", params.PriceID)
	form.Set("line_items[0][quantity]", strconv.Itoa(qty))
	if params.RedirectURL != "" {
		form.Set("after_completion[type]", "redirect")
		form.Set("after_completion[redirect][url]", params.RedirectURL)
	}

	var link PaymentLink
	if err := c.do(ctx, key, http.MethodPost, "/payment_links", form, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ListSubscriptions fetches one page of subscriptions. cursor is the id of
// the last item of the previous page, empty for the first page.
func (c *Client) ListSubscriptions(ctx context.Context, key string, cursor string) (*SubscriptionPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(constants.PaymentsPageSize))
	if cursor != "" {
		q.Set("starting_after", cursor)
	}

	var page SubscriptionPage
	if err := c.do(ctx, key, http.MethodGet, "/subscriptions?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListCheckoutSessions fetches one page of checkout sessions for a payment
// link, same cursor contract as ListSubscriptions.
func (c *Client) ListCheckoutSessions(ctx context.Context, key string, paymentLinkID, cursor string) (*SessionPage, error) {
	q := url.Values{}
	q.Set("payment_link", paymentLinkID)
	q.Set("limit", strconv.Itoa(constants.PaymentsPageSize))
	if cursor != "" {
		q.Set("starting_after", cursor)
	}

	var page SessionPage
	if err := c.do(ctx, key, http.MethodGet, "/checkout/sessions?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCustomer retrieves the counterpart customer of a subscription.
func (c *Client) GetCustomer(ctx context.Context, key string, customerID string) (*Customer, error) {
	var customer Customer
	if err := c.do(ctx, key, http.MethodGet, "/customers/"+url.PathEscape(customerID), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) do(ctx context.Context, key, method, path string, form url.Values, dest any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrProvider, "build payments request", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("PaymentsClient:do:RequestError", err, "method", method, "path", path)
		return apperrors.NewAppError(apperrors.ErrProvider, "payments provider request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		logger.Error("PaymentsClient:do:APIError", "status", resp.StatusCode, "body", string(raw))
		return apperrors.NewAppError(apperrors.ErrProvider,
			fmt.Sprintf("payments provider returned status %d", resp.StatusCode), nil)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return apperrors.NewAppError(apperrors.ErrProvider, "decode payments response", err)
		}
	}
	return nil
}
