package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/ledger"
)

// Server exposes a ledger.Chain over JSON-RPC.
type Server struct {
	chain  *ledger.Chain
	info   NodeInfo
	logger *slog.Logger
}

type serverOption func(*Server)

func WithServerLogger(logger *slog.Logger) serverOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithNetwork(network string) serverOption {
	return func(s *Server) {
		s.info.Network = network
	}
}

func NewServer(chain *ledger.Chain, opts ...serverOption) *Server {
	s := &Server{
		chain: chain,
		info: NodeInfo{
			Name:      "iota-adventurer-localnet",
			Network:   "localnet",
			PackageID: chain.PackageID(),
			BankID:    chain.BankID(),
			RandomID:  chain.RandomID(),
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Info() NodeInfo {
	return s.info
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.write(w, s.info)
	case http.MethodPost:
		s.serveRPC(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) write(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

type incoming struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      uint64            `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	var req incoming
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.write(w, response{JSONRPC: "2.0", Error: &Error{Code: CodeParseError, Message: err.Error()}})
		return
	}
	out := response{JSONRPC: "2.0", ID: req.ID}
	result, err := s.dispatch(r.Context(), req)
	if err != nil {
		out.Error = toError(err)
		s.logger.Debug("rpc error", "method", req.Method, "err", err)
	} else {
		raw, err := json.Marshal(result)
		if err != nil {
			out.Error = &Error{Code: CodeInternalError, Message: err.Error()}
		} else {
			out.Result = raw
		}
	}
	s.write(w, out)
}

var errInvalidParams = errors.New("invalid params")

func toError(err error) *Error {
	var rpcErr *Error
	switch {
	case errors.As(err, &rpcErr):
		return rpcErr
	case errors.Is(err, errInvalidParams):
		return &Error{Code: CodeInvalidParams, Message: err.Error()}
	case errors.Is(err, ledger.ErrUnknownTransaction), errors.Is(err, ledger.ErrUnknownObject):
		return &Error{Code: CodeNotFound, Message: err.Error()}
	}
	return &Error{Code: CodeExecution, Message: err.Error()}
}

func param[T any](req incoming, i int) (T, error) {
	var v T
	if i >= len(req.Params) {
		return v, fmt.Errorf("%w: %s expects parameter %d", errInvalidParams, req.Method, i)
	}
	if err := json.Unmarshal(req.Params[i], &v); err != nil {
		return v, fmt.Errorf("%w: %s parameter %d: %w", errInvalidParams, req.Method, i, err)
	}
	return v, nil
}

func (s *Server) dispatch(ctx context.Context, req incoming) (any, error) {
	switch req.Method {
	case MethodGetBalance:
		return s.getBalance(ctx, req)
	case MethodGetOwnedObjects:
		return s.getOwnedObjects(ctx, req)
	case MethodGetObject:
		return s.getObject(ctx, req)
	case MethodExecuteTransaction:
		return s.execute(ctx, req)
	case MethodGetTransactionBlock:
		return s.getTransaction(ctx, req)
	}
	return nil, &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("method %q not found", req.Method)}
}

func (s *Server) getBalance(ctx context.Context, req incoming) (any, error) {
	owner, err := param[string](req, 0)
	if err != nil {
		return nil, err
	}
	balance, err := s.chain.GetBalance(ctx, owner)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"coinType":        CoinType,
		"coinObjectCount": 1,
		"totalBalance":    strconv.FormatUint(balance, 10),
		"lockedBalance":   map[string]any{},
	}, nil
}

func heroObject(packageID string, h game.Hero, owner string) map[string]any {
	return map[string]any{
		"objectId": h.ID,
		"owner":    map[string]any{"AddressOwner": owner},
		"content": map[string]any{
			"dataType": "moveObject",
			"type":     HeroType(packageID),
			"fields": map[string]any{
				"id":     map[string]any{"id": h.ID},
				"hp":     strconv.FormatUint(h.HP, 10),
				"max_hp": strconv.FormatUint(h.MaxHP, 10),
				"xp":     strconv.FormatUint(h.XP, 10),
				"level":  strconv.FormatUint(h.Level, 10),
			},
		},
	}
}

type ownedQuery struct {
	Filter struct {
		StructType string `json:"StructType"`
	} `json:"filter"`
}

// getOwnedObjects pages with the object id of the last returned hero as
// cursor.
func (s *Server) getOwnedObjects(ctx context.Context, req incoming) (any, error) {
	owner, err := param[string](req, 0)
	if err != nil {
		return nil, err
	}
	query, err := param[ownedQuery](req, 1)
	if err != nil {
		return nil, err
	}
	cursor, _ := param[string](req, 2)
	limit, err := param[int](req, 3)
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}

	heroes, err := s.chain.GetOwnedHeroes(ctx, owner)
	if err != nil {
		return nil, err
	}
	if query.Filter.StructType != "" && query.Filter.StructType != HeroType(s.chain.PackageID()) {
		heroes = nil
	}
	start := 0
	if cursor != "" {
		for i, h := range heroes {
			if h.ID == cursor {
				start = i + 1
				break
			}
		}
	}
	end := min(start+limit, len(heroes))
	data := make([]map[string]any, 0, end-start)
	for _, h := range heroes[start:end] {
		data = append(data, map[string]any{"data": heroObject(s.chain.PackageID(), h, owner)})
	}
	var next any
	if end > start {
		next = heroes[end-1].ID
	}
	return map[string]any{
		"data":        data,
		"nextCursor":  next,
		"hasNextPage": end < len(heroes),
	}, nil
}

func (s *Server) getObject(ctx context.Context, req incoming) (any, error) {
	id, err := param[string](req, 0)
	if err != nil {
		return nil, err
	}
	if id == s.chain.BankID() {
		bank, err := s.chain.GetBankConfig(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"data": map[string]any{
			"objectId": id,
			"owner":    map[string]any{"Shared": map[string]any{"initial_shared_version": 1}},
			"content": map[string]any{
				"dataType": "moveObject",
				"type":     BankType(s.chain.PackageID()),
				"fields": map[string]any{
					"id":        map[string]any{"id": id},
					"balance":   strconv.FormatUint(bank.Balance, 10),
					"heal_cost": strconv.FormatUint(bank.HealCost, 10),
					"admin":     bank.Admin,
				},
			},
		}}, nil
	}
	hero, owner, err := s.chain.GetHero(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": heroObject(s.chain.PackageID(), hero, owner)}, nil
}

func (s *Server) execute(ctx context.Context, req incoming) (any, error) {
	encoded, err := param[string](req, 0)
	if err != nil {
		return nil, err
	}
	signatures, err := param[[]string](req, 1)
	if err != nil {
		return nil, err
	}
	txBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction bytes: %w", errInvalidParams, err)
	}
	digest, err := s.chain.ExecuteTransaction(ctx, txBytes, signatures)
	if err != nil {
		return nil, err
	}
	return map[string]any{"digest": digest}, nil
}

func (s *Server) getTransaction(ctx context.Context, req incoming) (*events.Response, error) {
	digest, err := param[string](req, 0)
	if err != nil {
		return nil, err
	}
	return s.chain.GetTransaction(ctx, digest)
}
