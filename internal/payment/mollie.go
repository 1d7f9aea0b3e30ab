package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mroshb/buynothing/pkg/errors"
	"github.com/mroshb/buynothing/pkg/utils"
)

// MollieClient talks to the Mollie v2 payments API.
type MollieClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewMollieClient(apiKey, baseURL string, timeout time.Duration) *MollieClient {
	return &MollieClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type mollieAmount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

type molliePaymentBody struct {
	Amount      mollieAmount `json:"amount"`
	Description string       `json:"description"`
	Method      string       `json:"method,omitempty"`
	RedirectURL string       `json:"redirectUrl"`
	WebhookURL  string       `json:"webhookUrl"`
	Metadata    Metadata     `json:"metadata"`
}

type molliePaymentResponse struct {
	ID       string       `json:"id"`
	Status   string       `json:"status"`
	Amount   mollieAmount `json:"amount"`
	Metadata Metadata     `json:"metadata"`
	Links    struct {
		Checkout struct {
			Href string `json:"href"`
		} `json:"checkout"`
	} `json:"_links"`
}

func (m *MollieClient) CreatePayment(ctx context.Context, req CreateRequest) (*Payment, error) {
	body := molliePaymentBody{
		Amount: mollieAmount{
			Currency: "EUR",
			Value:    utils.FormatAmount(req.AmountCents),
		},
		Description: req.Description,
		Method:      req.Method,
		RedirectURL: req.RedirectURL,
		WebhookURL:  req.WebhookURL,
		Metadata:    req.Metadata,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to encode payment request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build payment request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstreamFailure, "payment provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeUpstreamFailure,
			fmt.Sprintf("payment provider returned status %d: %s", resp.StatusCode, readBody(resp.Body)))
	}

	return decodePayment(resp.Body)
}

func (m *MollieClient) GetPayment(ctx context.Context, id string) (*Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/payments/"+id, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build payment lookup")
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstreamFailure, "payment provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "payment not found at provider")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeUpstreamFailure,
			fmt.Sprintf("payment provider returned status %d", resp.StatusCode))
	}

	return decodePayment(resp.Body)
}

func decodePayment(r io.Reader) (*Payment, error) {
	var mp molliePaymentResponse
	if err := json.NewDecoder(r).Decode(&mp); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstreamFailure, "failed to parse provider response")
	}

	return &Payment{
		ID:          mp.ID,
		Status:      mp.Status,
		CheckoutURL: mp.Links.Checkout.Href,
		Metadata:    mp.Metadata,
	}, nil
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(b)
}
