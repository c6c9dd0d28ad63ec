package rpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"

	"github.com/luca-patrignani/iota-adventurer/config"
	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
)

const defaultPageSize = 50

var ErrUnexpectedResult = errors.New("unexpected rpc result")

type Client struct {
	url      string
	http     *http.Client
	contract config.Contract
	logger   *slog.Logger
	ids      atomic.Uint64

	pollInterval time.Duration
	maxPoll      time.Duration
	pageSize     int
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPolling sets the first interval and the overall bound of the finality
// wait. A zero bound disables the elapsed-time limit, so only the context
// ends the wait.
func WithPolling(interval, max time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = interval
		c.maxPoll = max
	}
}

// WithPageSize limits the objects fetched per owned-objects request.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func NewClient(url string, contract config.Contract, opts ...ClientOption) *Client {
	c := &Client{
		url:          url,
		http:         &http.Client{Timeout: 30 * time.Second},
		contract:     contract,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		pollInterval: 200 * time.Millisecond,
		pageSize:     defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) call(ctx context.Context, method string, params ...any) (gjson.Result, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(request{JSONRPC: "2.0", ID: c.ids.Add(1), Method: method, Params: params})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encode %s: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("rpc call", "method", method, "status", resp.StatusCode, "elapsed", time.Since(start))

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return gjson.Result{}, fmt.Errorf("%s: decode response (http %d): %w", method, resp.StatusCode, err)
	}
	if out.Error != nil {
		return gjson.Result{}, out.Error
	}
	return gjson.ParseBytes(out.Result), nil
}

func parseU64(v gjson.Result, what string) (uint64, error) {
	raw := v.Str
	if v.Type == gjson.Number {
		raw = v.Raw
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q", ErrUnexpectedResult, what, v.Raw)
	}
	return n, nil
}

func (c *Client) GetBalance(ctx context.Context, address string) (uint64, error) {
	res, err := c.call(ctx, MethodGetBalance, address, CoinType)
	if err != nil {
		return 0, err
	}
	return parseU64(res.Get("totalBalance"), "totalBalance")
}

// GetOwnedHeroes pages through the hero objects owned by address.
func (c *Client) GetOwnedHeroes(ctx context.Context, address string) ([]game.Hero, error) {
	query := map[string]any{
		"filter":  map[string]any{"StructType": HeroType(c.contract.PackageID)},
		"options": map[string]any{"showContent": true},
	}
	var heroes []game.Hero
	var cursor any
	prev := ""
	for {
		res, err := c.call(ctx, MethodGetOwnedObjects, address, query, cursor, c.pageSize)
		if err != nil {
			return nil, err
		}
		for _, obj := range res.Get("data").Array() {
			h, err := decodeHero(obj.Get("data"))
			if err != nil {
				return nil, err
			}
			heroes = append(heroes, h)
		}
		next := res.Get("nextCursor").String()
		if !res.Get("hasNextPage").Bool() || next == "" || next == prev {
			return heroes, nil
		}
		prev, cursor = next, next
	}
}

func decodeHero(data gjson.Result) (game.Hero, error) {
	fields := data.Get("content.fields")
	h := game.Hero{ID: data.Get("objectId").String()}
	if h.ID == "" {
		return game.Hero{}, fmt.Errorf("%w: hero without object id", ErrUnexpectedResult)
	}
	var err error
	for _, f := range []struct {
		name string
		dst  *uint64
	}{
		{"hp", &h.HP},
		{"max_hp", &h.MaxHP},
		{"xp", &h.XP},
		{"level", &h.Level},
	} {
		if *f.dst, err = parseU64(fields.Get(f.name), f.name); err != nil {
			return game.Hero{}, err
		}
	}
	return h, nil
}

func (c *Client) GetBankConfig(ctx context.Context) (game.BankConfig, error) {
	res, err := c.call(ctx, MethodGetObject, c.contract.GameBankID, map[string]any{"showContent": true})
	if err != nil {
		return game.BankConfig{}, err
	}
	fields := res.Get("data.content.fields")
	if !fields.Exists() {
		return game.BankConfig{}, fmt.Errorf("%w: bank %s has no content", ErrUnexpectedResult, c.contract.GameBankID)
	}
	balance, err := parseU64(fields.Get("balance"), "balance")
	if err != nil {
		return game.BankConfig{}, err
	}
	cost, err := parseU64(fields.Get("heal_cost"), "heal_cost")
	if err != nil {
		return game.BankConfig{}, err
	}
	return game.BankConfig{Balance: balance, HealCost: cost, Admin: fields.Get("admin").String()}, nil
}

// ExecuteTransaction submits signed transaction bytes and returns the digest.
func (c *Client) ExecuteTransaction(ctx context.Context, txBytes []byte, signatures []string) (string, error) {
	res, err := c.call(ctx, MethodExecuteTransaction,
		base64.StdEncoding.EncodeToString(txBytes),
		signatures,
		map[string]any{"showEvents": false},
		"WaitForLocalExecution",
	)
	if err != nil {
		return "", err
	}
	digest := res.Get("digest").String()
	if digest == "" {
		return "", fmt.Errorf("%w: execution returned no digest", ErrUnexpectedResult)
	}
	return digest, nil
}

// GetTransaction fetches an executed transaction with its events.
func (c *Client) GetTransaction(ctx context.Context, digest string) (*events.Response, error) {
	res, err := c.call(ctx, MethodGetTransactionBlock, digest, map[string]any{"showEvents": true})
	if err != nil {
		return nil, err
	}
	var out events.Response
	if err := json.Unmarshal([]byte(res.Raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResult, err)
	}
	return &out, nil
}

// WaitForFinality polls for the transaction with exponential backoff until
// the node knows it. Errors other than "not found" stop the wait.
func (c *Client) WaitForFinality(ctx context.Context, digest string) (*events.Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.pollInterval
	b.MaxInterval = 5 * time.Second

	// A zero maxPoll also overrides the 15 minute default of backoff.Retry.
	return backoff.Retry(ctx, func() (*events.Response, error) {
		resp, err := c.GetTransaction(ctx, digest)
		var rpcErr *Error
		if errors.As(err, &rpcErr) && rpcErr.Code == CodeNotFound {
			c.logger.Debug("transaction not final yet", "digest", digest)
			return nil, err
		}
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		return resp, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(c.maxPoll))
}

// NodeInfo fetches the description served on the root path.
func (c *Client) NodeInfo(ctx context.Context) (NodeInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return NodeInfo{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return NodeInfo{}, err
	}
	defer resp.Body.Close()
	var info NodeInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return NodeInfo{}, fmt.Errorf("%w: node info: %w", ErrUnexpectedResult, err)
	}
	return info, nil
}
