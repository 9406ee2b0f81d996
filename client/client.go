/*
Package client implements a typed HTTP client of the vault API.

Errors returned by the server are restored to their registered kind, so that
for example multisig.ErrStaleNonce.Is(err) works on the client side.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/api"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/multisig"
)

// Client talks to a vault API server over HTTP.
type Client struct {
	apiURL string
	cli    *http.Client
}

// NewClient returns a client of the API served under apiURL, for example
// http://localhost:8000
func NewClient(apiURL string) *Client {
	return &Client{
		apiURL: apiURL,
		cli:    http.DefaultClient,
	}
}

// WithHTTPClient returns a copy of this client that is using given HTTP
// client.
func (c *Client) WithHTTPClient(cli *http.Client) *Client {
	return &Client{apiURL: c.apiURL, cli: cli}
}

// Info returns the version of the server.
func (c *Client) Info(ctx context.Context) (string, error) {
	var resp api.InfoResponse
	if err := c.do(ctx, http.MethodGet, "/info", nil, &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}

// Nonce returns the last nonce consumed by the vault.
func (c *Client) Nonce(ctx context.Context) (uint64, error) {
	var resp api.NonceResponse
	if err := c.do(ctx, http.MethodGet, "/nonce", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Nonce, nil
}

// Balance returns the value held by the vault.
func (c *Client) Balance(ctx context.Context) (coin.Amount, error) {
	var resp api.BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/balance", nil, &resp); err != nil {
		return coin.Amount{}, err
	}
	return resp.Balance, nil
}

// Owners returns the vault owners and the number of signatures required.
func (c *Client) Owners(ctx context.Context) (*api.OwnersResponse, error) {
	var resp api.OwnersResponse
	if err := c.do(ctx, http.MethodGet, "/owners", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Digest returns the digest owners must sign to authorize intent. A zero
// nonce is never accepted by the vault, so it stands for the next expected
// nonce. The nonce the digest is bound to is returned.
func (c *Client) Digest(ctx context.Context, intent multisig.Intent, nonce uint64) (common.Hash, uint64, error) {
	q := url.Values{}
	q.Set("amount", intent.Amount.String())
	q.Set("recipient", intent.Recipient.String())
	if nonce != 0 {
		q.Set("nonce", strconv.FormatUint(nonce, 10))
	}
	var resp api.DigestResponse
	if err := c.do(ctx, http.MethodGet, "/digest?"+q.Encode(), nil, &resp); err != nil {
		return common.Hash{}, 0, err
	}
	return resp.Digest, resp.Nonce, nil
}

// Account returns the state of an external account.
func (c *Client) Account(ctx context.Context, addr vault.Address) (*api.AccountResponse, error) {
	var resp api.AccountResponse
	if err := c.do(ctx, http.MethodGet, "/accounts/"+addr.String(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Authorize submits a signed withdrawal.
func (c *Client) Authorize(ctx context.Context, intent multisig.Intent, nonce uint64, sigs [][]byte) (*multisig.Receipt, error) {
	req := api.AuthorizeRequest{
		Amount:     intent.Amount,
		Recipient:  intent.Recipient,
		Nonce:      nonce,
		Signatures: make([]hexutil.Bytes, len(sigs)),
	}
	for i, sig := range sigs {
		req.Signatures[i] = sig
	}
	var rc multisig.Receipt
	if err := c.do(ctx, http.MethodPost, "/authorize", req, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

// Deposit adds value to the vault and returns the new vault balance.
func (c *Client) Deposit(ctx context.Context, amount coin.Amount) (coin.Amount, error) {
	var resp api.BalanceResponse
	if err := c.do(ctx, http.MethodPost, "/deposit", api.DepositRequest{Amount: amount}, &resp); err != nil {
		return coin.Amount{}, err
	}
	return resp.Balance, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(errors.ErrEncoding, err.Error())
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "create http request: %s", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.cli.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "do request: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1e5))
		var e api.ErrorResponse
		if err := json.Unmarshal(b, &e); err == nil && e.Code != errors.SuccessCode {
			return errors.FromCode(e.Code, e.Log)
		}
		return errors.Wrapf(errors.ErrNetwork, "bad response: %d %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1e6)).Decode(dest); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "decode response: %s", err)
	}
	return nil
}
