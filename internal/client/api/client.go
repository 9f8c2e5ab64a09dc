package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avolkov/finsync/internal/common"
	"github.com/avolkov/finsync/internal/logging"
)

// Client talks JSON over HTTP to the finance service. It implements
// TransactionAPI, AccountAPI and CategoryAPI.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
	log     logging.Logger
}

// NewClient builds a facade for the service at baseURL. The token, when
// non-empty, is sent as a bearer credential. The timeout bounds every call;
// zero means no client-side timeout.
func NewClient(baseURL, token string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do performs one request and decodes the response into out (skipped when
// out is nil). Failures map onto the NetworkError taxonomy: transport
// problems are unreachable, non-2xx responses are bad status, undecodable
// bodies are decode failures.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &common.NetworkError{Kind: common.NetworkDecodeFailure, Err: err}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &common.NetworkError{Kind: common.NetworkUnreachable, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug(ctx, "remote call", "method", method, "path", path)

	resp, err := c.hc.Do(req)
	if err != nil {
		return &common.NetworkError{Kind: common.NetworkUnreachable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &common.NetworkError{Kind: common.NetworkBadStatus, Status: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.NetworkError{Kind: common.NetworkDecodeFailure, Err: err}
	}
	return nil
}
