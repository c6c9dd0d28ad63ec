package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pterm/pterm"

	"github.com/luca-patrignani/iota-adventurer/config"
	"github.com/luca-patrignani/iota-adventurer/discovery"
	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/ledger"
	"github.com/luca-patrignani/iota-adventurer/rpc"
)

const defaultPort = 9000

type settings struct {
	PackageID string `env:"IOTA_PACKAGE_ID" envDefault:"0x1d"`
	BankID    string `env:"IOTA_GAME_BANK_ID" envDefault:"0xba"`
	RandomID  string `env:"IOTA_RANDOM_OBJECT_ID" envDefault:"0x8"`

	// Addr is host[:port]. When empty the first free port of 9000-9010 on
	// localhost is used so clients can discover the node.
	Addr    string `env:"LOCALNET_ADDR"`
	Faucet  uint64 `env:"LOCALNET_FAUCET_IOTA" envDefault:"50"`
	Bank    uint64 `env:"LOCALNET_BANK_IOTA" envDefault:"1000"`
	GasFee  uint64 `env:"LOCALNET_GAS_FEE_NANOS" envDefault:"0"`
	Seed    uint64 `env:"LOCALNET_SEED"`
	Verbose bool   `env:"LOCALNET_VERBOSE"`

	// CertFile enables TLS with a self-signed certificate written to it.
	CertFile string `env:"LOCALNET_TLS_CERT_FILE"`
}

func main() {
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	var s settings
	if err := env.Parse(&s); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if s.Verbose {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}

	contract := config.Contract{PackageID: s.PackageID, GameBankID: s.BankID, RandomObjectID: s.RandomID}
	if err := contract.Validate(); err != nil {
		logger.Error("invalid contract", "error", err)
		os.Exit(1)
	}
	opts := []ledger.Option{
		ledger.WithPackageID(contract.PackageID),
		ledger.WithBankID(contract.GameBankID),
		ledger.WithRandomID(contract.RandomObjectID),
		ledger.WithFaucet(game.IotaToNanos(s.Faucet)),
		ledger.WithBankBalance(game.IotaToNanos(s.Bank)),
		ledger.WithGasFee(s.GasFee),
		ledger.WithLogger(logger),
	}
	if s.Seed != 0 {
		opts = append(opts, ledger.WithSeed(s.Seed))
	}
	chain := ledger.NewChain(opts...)

	l, err := listen(s.Addr)
	if err != nil {
		logger.Error("failed to listen", "address", s.Addr, "error", err)
		os.Exit(1)
	}
	scheme := "http"
	if s.CertFile != "" {
		if l, err = withTLS(l, s.CertFile); err != nil {
			logger.Error("failed to set up TLS", "error", err)
			os.Exit(1)
		}
		scheme = "https"
		pterm.Info.Printfln("Certificate written to %s", s.CertFile)
	}
	server := rpc.NewServer(chain, rpc.WithServerLogger(logger), rpc.WithNetwork("localnet"))
	info := server.Info()
	pterm.Info.Printfln("Serving %s on %s://%s", info.Name, scheme, l.Addr())
	if urls, err := clientURLs(l.Addr(), scheme); err != nil {
		logger.Warn("cannot list client endpoints", "error", err)
	} else {
		for _, u := range urls {
			pterm.Info.Printfln("Clients connect with IOTA_RPC_URL=%s", u)
		}
	}
	pterm.Info.Printfln("IOTA_PACKAGE_ID=%s IOTA_GAME_BANK_ID=%s IOTA_RANDOM_OBJECT_ID=%s",
		info.PackageID, info.BankID, info.RandomID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := &http.Server{Handler: server, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
	if err := chain.Verify(); err != nil {
		logger.Error("chain verification failed", "error", err)
		os.Exit(1)
	}
	pterm.Success.Printfln("Stopped after %d blocks", len(chain.Blocks()))
}

func listen(addr string) (net.Listener, error) {
	if addr == "" {
		l, _, err := discovery.NewWithOptions().Listen()
		return l, err
	}
	host, port, err := splitHostPort(addr, defaultPort)
	if err != nil {
		return nil, err
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", port, err)
	}
	return net.Listen("tcp", net.JoinHostPort(host, port))
}
