package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/iota-adventurer/animation"
	"github.com/luca-patrignani/iota-adventurer/application"
	"github.com/luca-patrignani/iota-adventurer/config"
	"github.com/luca-patrignani/iota-adventurer/discovery"
	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/gamelog"
	"github.com/luca-patrignani/iota-adventurer/ledger"
	"github.com/luca-patrignani/iota-adventurer/rpc"
	"github.com/luca-patrignani/iota-adventurer/transaction"
	"github.com/luca-patrignani/iota-adventurer/wallet"
)

const (
	defaultNodePort = 9000
	localFaucet     = 50
)

// backend is what the wallet submits to and the game reads from.
type backend interface {
	application.ChainReader
	wallet.Submitter
}

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [node]\n", os.Args[0])
		os.Exit(1)
	}

	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("I", pterm.FgCyan.ToStyle()),
		putils.LettersFromStringWithStyle("ota ", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("A", pterm.FgCyan.ToStyle()),
		putils.LettersFromStringWithStyle("dventurer", pterm.FgDarkGray.ToStyle()),
	).Render()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	ctx := context.Background()

	var node string
	if len(os.Args) == 2 {
		node = os.Args[1]
	}
	chain, err := connectBackend(ctx, cfg, node, logger)
	if err != nil {
		logger.Error("no ledger available", "error", err)
		os.Exit(1)
	}

	builder, err := transaction.NewBuilder(cfg.Contract)
	if err != nil {
		logger.Error("invalid contract", "error", err)
		os.Exit(1)
	}
	w := wallet.New(chain, wallet.WithKeyFile(cfg.KeyFile), wallet.WithLogger(logger))
	g := application.New(w, chain, builder, events.NewParser(cfg.Contract.PackageID),
		application.WithLogger(logger),
		application.WithRecorder(gamelog.NewRecorder(cfg.MaxLogs)),
		application.WithSlowThreshold(cfg.SlowThreshold),
		application.WithBankFallback(cfg.BankFallback),
	)

	if err := connect(ctx, w, g); err != nil {
		logger.Error("could not connect", "error", err)
	}
	play(ctx, cfg, w, g, logger)
}

// connectBackend picks the localnet ledger: an explicit node, the configured
// RPC endpoint, a discovered local node or a chain inside this process.
func connectBackend(ctx context.Context, cfg config.Config, node string, logger *slog.Logger) (backend, error) {
	h, err := httpClient(cfg.CAFile)
	if err != nil {
		return nil, err
	}
	clientOpts := []rpc.ClientOption{rpc.WithHTTPClient(h), rpc.WithClientLogger(logger)}
	if node != "" {
		url, err := nodeURL(node, defaultNodePort)
		if err != nil {
			return nil, err
		}
		pterm.Info.Printfln("Using node %s", url)
		return rpc.NewClient(url, cfg.Contract, clientOpts...), nil
	}
	if !cfg.InProcess() {
		pterm.Info.Printfln("Using %s", cfg.RPCURL)
		return rpc.NewClient(cfg.RPCURL, cfg.Contract, clientOpts...), nil
	}

	spinner, _ := pterm.DefaultSpinner.Start("Looking for a local node ...")
	entry, err := discovery.NewWithOptions().FindPackage(ctx, cfg.Contract.PackageID)
	if err == nil {
		spinner.Success(fmt.Sprintf("Found %s at %s", entry.Info.Name, entry.URL))
		return rpc.NewClient(entry.URL, cfg.Contract, clientOpts...), nil
	}
	spinner.Warning("No local node found, starting an in-process chain")
	return ledger.NewChain(
		ledger.WithPackageID(cfg.Contract.PackageID),
		ledger.WithBankID(cfg.Contract.GameBankID),
		ledger.WithRandomID(cfg.Contract.RandomObjectID),
		ledger.WithFaucet(game.IotaToNanos(localFaucet)),
		ledger.WithLogger(logger),
	), nil
}

func connect(ctx context.Context, w *wallet.Wallet, g *application.Game) error {
	spinner, _ := pterm.DefaultSpinner.Start("Connecting wallet ...")
	if err := w.Connect(); err != nil {
		spinner.Fail()
		return err
	}
	if err := g.Connect(ctx); err != nil {
		spinner.Fail()
		return err
	}
	address, _ := w.CurrentAddress()
	spinner.Success(fmt.Sprintf("Connected as %s", address))
	return nil
}

func play(ctx context.Context, cfg config.Config, w *wallet.Wallet, g *application.Game, logger *slog.Logger) {
	for {
		s := g.Snapshot()
		printState(s)
		choice, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("What next?").
			WithOptions(menu(s)).
			Show()

		var err error
		switch choice {
		case actionConnect:
			err = connect(ctx, w, g)
		case actionDisconnect:
			w.Disconnect()
			g.Disconnect()
		case actionCreate:
			err = withSpinner("Minting your hero ...", func() error {
				return g.CreateHero(ctx)
			})
		case actionTier:
			err = chooseTier(g)
		case actionFight, actionFightAgain:
			err = fight(ctx, cfg, g)
		case actionHeal:
			err = withSpinner("Healing ...", func() error {
				return g.Heal(ctx)
			})
		case actionContinue:
			err = g.Continue()
		case actionExplorer:
			if s.Battle != nil {
				if url := cfg.ExplorerTxURL(s.Battle.TxDigest); url != "" {
					pterm.Info.Println(url)
				} else {
					pterm.Info.Printfln("Transaction %s", s.Battle.TxDigest)
				}
			}
		case actionRefresh:
			err = g.Refresh(ctx)
		case actionQuit:
			return
		}
		if err != nil {
			logger.Debug("action failed", "action", choice, "error", err)
		}
	}
}

func withSpinner(text string, fn func() error) error {
	spinner, _ := pterm.DefaultSpinner.Start(text)
	err := fn()
	if err != nil {
		spinner.Fail(err.Error())
	} else {
		spinner.Success()
	}
	return err
}

func chooseTier(g *application.Game) error {
	s := g.Snapshot()
	options := tierOptions(s)
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Choose the monster tier").
		WithOptions(options).
		WithDefaultOption(options[s.Tier-1]).
		Show()
	t, err := parseTierOption(choice)
	if err != nil {
		return err
	}
	return g.SelectTier(t)
}

// fight plays the battle phases while the transaction is in flight.
func fight(ctx context.Context, cfg config.Config, g *application.Game) error {
	var mu sync.Mutex
	done := make(chan struct{})
	spinner, _ := pterm.DefaultSpinner.Start("Looking for a monster ...")
	seq := animation.New(cfg.AnimationStep, func(p animation.Phase) {
		mu.Lock()
		defer mu.Unlock()
		spinner.UpdateText(phaseText(p, g.Snapshot()))
		if p == animation.Result {
			close(done)
		}
	})
	seq.Start()
	err := g.Fight(ctx)
	if err != nil {
		seq.Stop()
		spinner.Fail(err.Error())
		return err
	}
	seq.Resolve()
	<-done
	if s := g.Snapshot(); s.Battle != nil && s.Battle.Won {
		spinner.Success("Victory!")
	} else {
		spinner.Warning("Defeat")
	}
	return nil
}
