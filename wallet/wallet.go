package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"go.dedis.ch/kyber/v4/sign/eddsa"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/transaction"
)

var ErrNotConnected = errors.New("wallet not connected")

// Submitter executes signed transactions.
type Submitter interface {
	ExecuteTransaction(ctx context.Context, txBytes []byte, signatures []string) (string, error)
	WaitForFinality(ctx context.Context, digest string) (*events.Response, error)
}

type Wallet struct {
	mu        sync.RWMutex
	keyFile   string
	key       *eddsa.EdDSA
	address   string
	submitter Submitter
	logger    *slog.Logger
}

type walletOption func(*Wallet)

// WithKeyFile persists the key at path. Without it every Connect creates a
// fresh key that lives only in memory.
func WithKeyFile(path string) walletOption {
	return func(w *Wallet) {
		w.keyFile = path
	}
}

func WithLogger(logger *slog.Logger) walletOption {
	return func(w *Wallet) {
		w.logger = logger
	}
}

func New(submitter Submitter, opts ...walletOption) *Wallet {
	w := &Wallet{
		submitter: submitter,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Connect loads the key file, creating it on first use.
func (w *Wallet) Connect() error {
	key, err := w.loadKey()
	if err != nil {
		return err
	}
	pub, err := key.Public.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode public key: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.key = key
	w.address = AddressOf(pub)
	w.logger.Info("wallet connected", "address", w.address)
	return nil
}

func (w *Wallet) loadKey() (*eddsa.EdDSA, error) {
	if w.keyFile == "" {
		return eddsa.NewEdDSA(random.New()), nil
	}
	data, err := os.ReadFile(w.keyFile)
	if errors.Is(err, fs.ErrNotExist) {
		key := eddsa.NewEdDSA(random.New())
		raw, err := key.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("encode key: %w", err)
		}
		if err := os.WriteFile(w.keyFile, []byte(hex.EncodeToString(raw)), 0o600); err != nil {
			return nil, fmt.Errorf("write key file: %w", err)
		}
		w.logger.Info("created new key", "file", w.keyFile)
		return key, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	key := &eddsa.EdDSA{}
	if err := key.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	return key, nil
}

func (w *Wallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.key = nil
	w.address = ""
}

// CurrentAddress returns the connected address, if any.
func (w *Wallet) CurrentAddress() (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.address, w.key != nil
}

// SignAndSubmit signs tx, executes it and waits until its events are final.
func (w *Wallet) SignAndSubmit(ctx context.Context, tx *transaction.Transaction) (*events.Response, error) {
	w.mu.RLock()
	key, address := w.key, w.address
	w.mu.RUnlock()
	if key == nil {
		return nil, ErrNotConnected
	}

	signed := *tx
	signed.Sender = address
	signed.Nonce = rand.Uint64()
	txBytes, err := signed.Bytes()
	if err != nil {
		return nil, err
	}
	sig, err := Sign(key, txBytes)
	if err != nil {
		return nil, err
	}
	digest, err := w.submitter.ExecuteTransaction(ctx, txBytes, []string{sig})
	if err != nil {
		return nil, fmt.Errorf("execute transaction: %w", err)
	}
	w.logger.Debug("transaction submitted", "digest", digest)
	resp, err := w.submitter.WaitForFinality(ctx, digest)
	if err != nil {
		return nil, fmt.Errorf("wait for finality of %s: %w", digest, err)
	}
	return resp, nil
}
