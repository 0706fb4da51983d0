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

// DialinConfigs lists the domain dial-in config records on the account.
func (c *Client) DialinConfigs(ctx context.Context) ([]DomainDialinConfig, error) {
	data, err := c.do(ctx, http.MethodGet, "/domain-dialin-config", nil)
	if err != nil {
		return nil, err
	}
	var payload dialinConfigList
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("daily: decode dialin config list: %w", err)
	}
	return payload.Data, nil
}

// CreateDialinConfig creates a domain dial-in config record from the given
// config fields.
func (c *Client) CreateDialinConfig(ctx context.Context, cfg DialinConfig) error {
	if len(cfg) == 0 {
		return errors.New("daily: config payload required")
	}
	_, err := c.do(ctx, http.MethodPost, "/domain-dialin-config", cfg)
	return err
}

// DeleteDialinConfig removes a domain dial-in config record by ID.
func (c *Client) DeleteDialinConfig(ctx context.Context, configID string) error {
	configID = strings.TrimSpace(configID)
	if configID == "" {
		return errors.New("daily: config id required")
	}
	_, err := c.do(ctx, http.MethodDelete, "/domain-dialin-config/"+url.PathEscape(configID), nil)
	return err
}
