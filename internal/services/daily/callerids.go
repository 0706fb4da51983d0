package daily

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// CreateVerifiedCallerID registers a phone number as a caller ID on the
// account. Numbers that could not be transferred are re-registered this way.
func (c *Client) CreateVerifiedCallerID(ctx context.Context, number, name string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errors.New("daily: caller id number required")
	}
	_, err := c.do(ctx, http.MethodPost, "/verified-caller-ids", callerIDRequest{
		Number: number,
		Name:   strings.TrimSpace(name),
	})
	return err
}
