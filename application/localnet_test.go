package application

import (
	"context"
	"testing"

	"github.com/luca-patrignani/iota-adventurer/config"
	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/ledger"
	"github.com/luca-patrignani/iota-adventurer/transaction"
	"github.com/luca-patrignani/iota-adventurer/wallet"
)

func TestPlayAgainstLocalChain(t *testing.T) {
	ctx := context.Background()
	chain := ledger.NewChain(ledger.WithFaucet(game.IotaToNanos(30)), ledger.WithSeed(7))
	w := wallet.New(chain)
	if err := w.Connect(); err != nil {
		t.Fatal(err)
	}
	builder, err := transaction.NewBuilder(config.Contract{
		PackageID:      chain.PackageID(),
		GameBankID:     chain.BankID(),
		RandomObjectID: chain.RandomID(),
	})
	if err != nil {
		t.Fatal(err)
	}
	g := New(w, chain, builder, events.NewParser(chain.PackageID()))

	if err := g.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if g.State() != Idle {
		t.Fatalf("expected IDLE, got %s", g.State())
	}
	if err := g.CreateHero(ctx); err != nil {
		t.Fatalf("create hero: %v", err)
	}
	s := g.Snapshot()
	if s.State != Ready || s.Player.Hero == nil {
		t.Fatalf("expected READY with a hero, got %+v", s)
	}
	if s.Player.Hero.HP != game.InitialHP {
		t.Fatalf("expected a fresh hero, got %+v", s.Player.Hero)
	}

	for range 3 {
		if err := g.Fight(ctx); err != nil {
			t.Fatalf("fight: %v", err)
		}
		s = g.Snapshot()
		if s.State != Result || s.Battle == nil {
			t.Fatalf("expected RESULT, got %+v", s)
		}
		if s.Battle.HeroHPAfter != s.Player.Hero.HP {
			t.Fatalf("refreshed hero %+v disagrees with the event %+v", s.Player.Hero, s.Battle)
		}
		balance, err := chain.GetBalance(ctx, s.Player.Address)
		if err != nil {
			t.Fatal(err)
		}
		if balance != s.Player.Balance {
			t.Fatalf("displayed balance %d, ledger %d", s.Player.Balance, balance)
		}
		if err := g.Continue(); err != nil {
			t.Fatal(err)
		}
	}

	if !s.Player.Hero.FullHealth() {
		if err := g.Heal(ctx); err != nil {
			t.Fatalf("heal: %v", err)
		}
		if h := g.Snapshot().Heal; h == nil || h.HPAfter != g.Snapshot().Player.Hero.HP {
			t.Fatalf("unexpected heal result %+v", h)
		}
	}
	if err := chain.Verify(); err != nil {
		t.Fatalf("chain must verify: %v", err)
	}
}
