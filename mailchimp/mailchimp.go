// Package mailchimp is a minimal client for the Marketing API list-member
// endpoints. Synchronization is best-effort: callers log failures and
// never let them block the local newsletter record.
package mailchimp

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/liftsforlife/backend/config"
)

// Member statuses the API reports.
const (
	StatusSubscribed   = "subscribed"
	StatusUnsubscribed = "unsubscribed"
	StatusArchived     = "archived"
	StatusCleaned      = "cleaned"
)

type Member struct {
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
}

type Client struct {
	apiKey  string
	listID  string
	baseURL string
	http    *http.Client
}

func New(cfg config.Mailchimp) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		listID:  cfg.ListID,
		baseURL: fmt.Sprintf("https://%s.api.mailchimp.com/3.0", cfg.Server),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a stub server.
func NewWithBaseURL(apiKey, listID, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		listID:  listID,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the client is configured; an unconfigured
// deployment simply skips the sync.
func (c *Client) Enabled() bool { return c.apiKey != "" && c.listID != "" }

// subscriberHash is the MD5 of the lowercased address, per the API spec.
func subscriberHash(email string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(strings.ToLower(email))))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return 0, err
	}
	req.SetBasicAuth("anystring", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Drain so the connection stays reusable.
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, fmt.Errorf("mailchimp %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) GetMember(ctx context.Context, email string) (*Member, error) {
	var m Member
	path := fmt.Sprintf("/lists/%s/members/%s", c.listID, subscriberHash(email))
	status, err := c.do(ctx, http.MethodGet, path, nil, &m)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) AddMember(ctx context.Context, email, firstName, lastName string) error {
	body := map[string]any{
		"email_address": email,
		"status":        StatusSubscribed,
		"merge_fields":  map[string]string{"FNAME": firstName, "LNAME": lastName},
	}
	path := fmt.Sprintf("/lists/%s/members", c.listID)
	_, err := c.do(ctx, http.MethodPost, path, body, nil)
	return err
}

func (c *Client) UpdateMemberStatus(ctx context.Context, email, status string) error {
	body := map[string]any{"status": status}
	path := fmt.Sprintf("/lists/%s/members/%s", c.listID, subscriberHash(email))
	_, err := c.do(ctx, http.MethodPatch, path, body, nil)
	return err
}

// SyncSubscribe brings the remote list member in line with a local
// subscription: absent, archived or cleaned members are (re)added as
// subscribed, unsubscribed members are flipped back.
func (c *Client) SyncSubscribe(ctx context.Context, email, firstName, lastName string) error {
	member, err := c.GetMember(ctx, email)
	if err != nil {
		return err
	}

	switch {
	case member == nil, member.Status == StatusArchived, member.Status == StatusCleaned:
		return c.AddMember(ctx, email, firstName, lastName)
	case member.Status == StatusUnsubscribed:
		return c.UpdateMemberStatus(ctx, email, StatusSubscribed)
	}
	return nil
}

// SyncUnsubscribe marks a currently subscribed member unsubscribed.
func (c *Client) SyncUnsubscribe(ctx context.Context, email string) error {
	member, err := c.GetMember(ctx, email)
	if err != nil {
		return err
	}
	if member != nil && member.Status == StatusSubscribed {
		return c.UpdateMemberStatus(ctx, email, StatusUnsubscribed)
	}
	return nil
}
