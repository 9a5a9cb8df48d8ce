package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/Behyna/airtime-topup/pkg/httpclient"
)

const grantTypeQuery = "?grant_type=client_credentials"

// Gateway talks to the airtime provider. Implementations hold no per-request
// state; the access token is passed explicitly between calls.
type Gateway interface {
	AccessToken(ctx context.Context) (string, error)
	TopUp(ctx context.Context, token string, request TopUpRequest) (TopUpResult, error)
}

type client struct {
	client httpclient.HTTPClient
	config Config
}

func NewGateway(cfg Config, httpClient httpclient.HTTPClient) Gateway {
	return &client{config: cfg, client: httpClient}
}

func (c *client) AccessToken(ctx context.Context) (string, error) {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.config.ConsumerKey + ":" + c.config.ConsumerSecret))
	headers := map[string]string{
		"Authorization": "Basic " + credentials,
	}

	resp, err := c.client.Get(ctx, c.config.BaseURL+c.config.TokenPath+grantTypeQuery, headers)
	if err != nil {
		if isTimeout(err) {
			return "", ErrTimeout
		}

		return "", fmt.Errorf("%w: %v", ErrTokenUnavailable, err)
	}

	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		return "", fmt.Errorf("%w: %w", ErrTokenUnavailable, MapStatusToError(resp.StatusCode))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: decoding error: %v", ErrTokenUnavailable, err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token", ErrTokenUnavailable)
	}

	return token.AccessToken, nil
}

func (c *client) TopUp(ctx context.Context, token string, request TopUpRequest) (TopUpResult, error) {
	payload := topUpPayload{
		SenderMSISDN:   c.config.DealerNumber,
		Amount:         strconv.FormatInt(request.Amount, 10),
		ServicePin:     base64.StdEncoding.EncodeToString([]byte(c.config.DealerPin)),
		ReceiverMSISDN: request.ReceiverMSISDN,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
	}

	resp, err := c.client.Post(ctx, c.config.BaseURL+c.config.TopUpPath, &buf, headers)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}

		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		return nil, MapStatusToError(resp.StatusCode)
	}

	body, err := decodePayload(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding error: %w", err)
	}

	return newTopUpResult(body), nil
}

func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
