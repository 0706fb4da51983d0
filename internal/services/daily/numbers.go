package daily

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Domain fetches the account identity and the account-level dial-in lists.
func (c *Client) Domain(ctx context.Context) (*Domain, error) {
	data, err := c.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	var payload Domain
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("daily: decode domain response: %w", err)
	}
	return &payload, nil
}

// PurchasedNumbers lists every purchased phone number on the account.
func (c *Client) PurchasedNumbers(ctx context.Context) ([]PhoneNumber, error) {
	data, err := c.do(ctx, http.MethodGet, "/purchased-phone-numbers", nil)
	if err != nil {
		return nil, err
	}
	var payload phoneNumberList
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("daily: decode phone number list: %w", err)
	}
	return payload.Data, nil
}

// TransferNumber asks the platform to move a purchased number from this
// account to the domain named in the request.
func (c *Client) TransferNumber(ctx context.Context, phoneID string, req TransferRequest) error {
	phoneID = strings.TrimSpace(phoneID)
	if phoneID == "" {
		return errors.New("daily: phone id required")
	}
	if strings.TrimSpace(req.TransferDomainName) == "" {
		return errors.New("daily: transfer domain name required")
	}
	_, err := c.do(ctx, http.MethodPost, "/transfer-phone-number/"+url.PathEscape(phoneID), req)
	return err
}

// ReleaseNumber permanently releases a purchased number back to the platform.
func (c *Client) ReleaseNumber(ctx context.Context, phoneID string) error {
	phoneID = strings.TrimSpace(phoneID)
	if phoneID == "" {
		return errors.New("daily: phone id required")
	}
	_, err := c.do(ctx, http.MethodDelete, "/release-phone-number/"+url.PathEscape(phoneID), nil)
	return err
}
