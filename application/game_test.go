package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/luca-patrignani/iota-adventurer/application/mocks"
	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/gamelog"
	"github.com/luca-patrignani/iota-adventurer/transaction"
)

const (
	testPackage = "0xpkg"
	testPlayer  = "0xplayer"
	testHero    = "0xhero"
)

// ledgerState is what the mocked chain reader answers with.
type ledgerState struct {
	mu      sync.Mutex
	balance uint64
	heroes  []game.Hero
	bank    game.BankConfig
	bankErr error
	err     error
}

func (l *ledgerState) set(fn func(l *ledgerState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l)
}

type fixture struct {
	session *mocks.MockSession
	chain   *mocks.MockChainReader
	builder *mocks.MockBuilder
	ledger  *ledgerState
	game    *Game

	mu     sync.Mutex
	states []State
}

func newFixture(t *testing.T, opts ...gameOption) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		session: mocks.NewMockSession(ctrl),
		chain:   mocks.NewMockChainReader(ctrl),
		builder: mocks.NewMockBuilder(ctrl),
		ledger: &ledgerState{
			balance: game.IotaToNanos(20),
			bank:    game.BankConfig{Balance: game.IotaToNanos(1000), HealCost: game.IotaToNanos(5)},
		},
	}
	f.session.EXPECT().CurrentAddress().Return(testPlayer, true).AnyTimes()
	f.chain.EXPECT().GetBalance(gomock.Any(), testPlayer).DoAndReturn(
		func(context.Context, string) (uint64, error) {
			f.ledger.mu.Lock()
			defer f.ledger.mu.Unlock()
			return f.ledger.balance, f.ledger.err
		}).AnyTimes()
	f.chain.EXPECT().GetOwnedHeroes(gomock.Any(), testPlayer).DoAndReturn(
		func(context.Context, string) ([]game.Hero, error) {
			f.ledger.mu.Lock()
			defer f.ledger.mu.Unlock()
			return append([]game.Hero(nil), f.ledger.heroes...), nil
		}).AnyTimes()
	f.chain.EXPECT().GetBankConfig(gomock.Any()).DoAndReturn(
		func(context.Context) (game.BankConfig, error) {
			f.ledger.mu.Lock()
			defer f.ledger.mu.Unlock()
			return f.ledger.bank, f.ledger.bankErr
		}).AnyTimes()

	opts = append([]gameOption{
		WithRand(rand.New(rand.NewPCG(1, 2))),
		OnChange(func(s Snapshot) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if len(f.states) == 0 || f.states[len(f.states)-1] != s.State {
				f.states = append(f.states, s.State)
			}
		}),
	}, opts...)
	f.game = New(f.session, f.chain, f.builder, events.NewParser(testPackage), opts...)
	return f
}

func (f *fixture) withHero(hp, maxHP uint64) {
	f.ledger.set(func(l *ledgerState) {
		l.heroes = []game.Hero{{ID: testHero, HP: hp, MaxHP: maxHP, Level: 1}}
	})
}

func (f *fixture) connect(t *testing.T) {
	t.Helper()
	if err := f.game.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	f.resetStates()
}

func (f *fixture) resetStates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = []State{f.game.State()}
}

func (f *fixture) sequence() []State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]State(nil), f.states...)
}

func sameStates(got, want []State) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func countCategory(entries []gamelog.Entry, c gamelog.Category) int {
	n := 0
	for _, e := range entries {
		if e.Category == c {
			n++
		}
	}
	return n
}

func event(kind string, fields string) events.Event {
	return events.Event{
		Type:       events.EventType(testPackage, kind),
		Sender:     testPlayer,
		ParsedJSON: []byte(fields),
	}
}

func battleResponse(won bool, hpAfter uint64) *events.Response {
	reward := "0"
	if won {
		reward = "3000000000"
	}
	return &events.Response{
		Digest: "9xFq3vJ1bTt2VbkM6cdqSzDxG3R5kQW8",
		Events: []events.Event{event(events.KindBattle, fmt.Sprintf(
			`{"hero_id":%q,"monster_tier":1,"won":%t,"entry_fee":"1000000000","reward":%q,`+
				`"xp_gained":"10","damage_taken":"4","hero_hp_after":"%d","leveled_up":false,"new_level":"1"}`,
			testHero, won, reward, hpAfter))},
	}
}

func TestConnectWithoutHeroIsIdle(t *testing.T) {
	f := newFixture(t)
	f.connect(t)
	s := f.game.Snapshot()
	if s.State != Idle {
		t.Fatalf("expected IDLE, got %s", s.State)
	}
	if !s.Connected || s.Network != NetworkConnected {
		t.Fatalf("expected a connected session, got %+v", s)
	}
	if s.Player.Balance != game.IotaToNanos(20) {
		t.Fatalf("unexpected balance %d", s.Player.Balance)
	}
}

func TestConnectWithHeroIsReady(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)
	if f.game.State() != Ready {
		t.Fatalf("expected READY, got %s", f.game.State())
	}
	if got := f.game.Snapshot().Player.Tier; got != game.Bronze {
		t.Fatalf("expected BRONZE, got %s", got)
	}
}

func TestConnectWithoutWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := mocks.NewMockSession(ctrl)
	session.EXPECT().CurrentAddress().Return("", false)
	g := New(session, mocks.NewMockChainReader(ctrl), mocks.NewMockBuilder(ctrl), events.NewParser(testPackage))
	if err := g.Connect(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if g.State() != Idle {
		t.Fatalf("expected IDLE, got %s", g.State())
	}
}

func TestCreateHeroFromIdle(t *testing.T) {
	f := newFixture(t)
	f.connect(t)
	before := f.game.Logs()

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildCreateHero().Return(tx)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).DoAndReturn(
		func(context.Context, *transaction.Transaction) (*events.Response, error) {
			if f.game.State() != Minting {
				t.Errorf("expected MINTING while submitting, got %s", f.game.State())
			}
			f.withHero(100, 100)
			return &events.Response{
				Digest: "7UgkqZ1Vnc2bSAoe9AT8ZsvfG4U6uCzN",
				Events: []events.Event{event(events.KindHeroCreated,
					fmt.Sprintf(`{"hero_id":%q,"owner":%q}`, testHero, testPlayer))},
			}, nil
		})

	if err := f.game.CreateHero(context.Background()); err != nil {
		t.Fatalf("create hero: %v", err)
	}
	if want := []State{Idle, Minting, Ready}; !sameStates(f.sequence(), want) {
		t.Fatalf("expected %v, got %v", want, f.sequence())
	}
	after := f.game.Logs()
	added := after[:len(after)-len(before)]
	if n := countCategory(added, gamelog.Gain); n != 1 {
		t.Fatalf("expected one gain entry, got %d in %+v", n, added)
	}
	if n := countCategory(added, gamelog.Tx); n != 1 {
		t.Fatalf("expected one tx entry, got %d in %+v", n, added)
	}
	if s := f.game.Snapshot(); s.Player.Hero == nil || s.Player.Hero.ID != testHero {
		t.Fatalf("expected the refreshed hero, got %+v", s.Player)
	}
}

func TestCreateHeroFailureReturnsToIdle(t *testing.T) {
	f := newFixture(t)
	f.connect(t)
	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildCreateHero().Return(tx)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(nil, errors.New("user rejected the request"))

	if err := f.game.CreateHero(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if want := []State{Idle, Minting, Idle}; !sameStates(f.sequence(), want) {
		t.Fatalf("expected %v, got %v", want, f.sequence())
	}
	if f.game.Snapshot().Player.Hero != nil {
		t.Fatal("no hero may be retained after a failed mint")
	}
	if got := f.game.Logs()[0]; got.Category != gamelog.Danger {
		t.Fatalf("expected a danger entry, got %+v", got)
	}
}

func TestCreateHeroWithoutEvent(t *testing.T) {
	f := newFixture(t)
	f.connect(t)
	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildCreateHero().Return(tx)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(&events.Response{Digest: "abc"}, nil)

	if err := f.game.CreateHero(context.Background()); !errors.Is(err, ErrMissingEvent) {
		t.Fatalf("expected ErrMissingEvent, got %v", err)
	}
	if f.game.State() != Idle {
		t.Fatalf("expected IDLE, got %s", f.game.State())
	}
}

func TestCreateHeroRejectedWhenHeroExists(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)
	if err := f.game.CreateHero(context.Background()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFightInsufficientBalance(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.ledger.set(func(l *ledgerState) { l.balance = game.IotaToNanos(1) / 2 })
	f.connect(t)
	before := f.game.Logs()

	err := f.game.Fight(context.Background())
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if f.game.State() != Ready {
		t.Fatalf("expected READY, got %s", f.game.State())
	}
	after := f.game.Logs()
	if len(after) != len(before)+1 {
		t.Fatalf("expected exactly one new entry, got %d", len(after)-len(before))
	}
	if after[0].Category != gamelog.Danger {
		t.Fatalf("expected a danger entry, got %+v", after[0])
	}
	if f.game.Snapshot().Monster != nil {
		t.Fatal("no monster may be selected for a rejected fight")
	}
}

func TestFightInsufficientBalanceFromResult(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)
	if err := f.game.SelectTier(game.Tier4); err != nil {
		t.Fatal(err)
	}

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildFightMonster(testHero, game.Tier4).Return(tx, nil)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).DoAndReturn(
		func(context.Context, *transaction.Transaction) (*events.Response, error) {
			f.ledger.set(func(l *ledgerState) { l.balance = game.IotaToNanos(4) })
			return battleResponse(false, 60), nil
		})
	if err := f.game.Fight(context.Background()); err != nil {
		t.Fatalf("fight: %v", err)
	}
	if f.game.State() != Result {
		t.Fatalf("expected RESULT, got %s", f.game.State())
	}
	before := f.game.Logs()

	if err := f.game.Fight(context.Background()); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if f.game.State() != Result {
		t.Fatalf("expected RESULT to be kept, got %s", f.game.State())
	}
	after := f.game.Logs()
	if len(after) != len(before)+1 || after[0].Category != gamelog.Danger {
		t.Fatalf("expected exactly one danger entry, got %+v", after[:len(after)-len(before)])
	}
}

func TestFightDefeatedHero(t *testing.T) {
	f := newFixture(t)
	f.withHero(0, 100)
	f.connect(t)
	if err := f.game.Fight(context.Background()); !errors.Is(err, ErrHeroDefeated) {
		t.Fatalf("expected ErrHeroDefeated, got %v", err)
	}
	if f.game.Logs()[0].Category != gamelog.Danger {
		t.Fatalf("expected a danger entry, got %+v", f.game.Logs()[0])
	}
}

func TestFightSuccess(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(tx, nil)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).DoAndReturn(
		func(context.Context, *transaction.Transaction) (*events.Response, error) {
			s := f.game.Snapshot()
			if s.State != Battling || s.Monster == nil || s.Monster.Tier != game.Tier1 {
				t.Errorf("expected a tier 1 monster on display while battling, got %+v", s)
			}
			return battleResponse(true, 96), nil
		})

	if err := f.game.Fight(context.Background()); err != nil {
		t.Fatalf("fight: %v", err)
	}
	if want := []State{Ready, Battling, Result}; !sameStates(f.sequence(), want) {
		t.Fatalf("expected %v, got %v", want, f.sequence())
	}
	s := f.game.Snapshot()
	if s.Battle == nil {
		t.Fatal("expected a battle result")
	}
	if !s.Battle.Won || s.Battle.Reward != game.IotaToNanos(3) || s.Battle.HeroHPAfter != 96 {
		t.Fatalf("unexpected result %+v", s.Battle)
	}
	if s.Battle.Monster != *s.Monster {
		t.Fatalf("result must carry the displayed monster, got %+v and %+v", s.Battle.Monster, *s.Monster)
	}
	if s.Battle.TxDigest == "" {
		t.Fatal("expected the transaction digest on the result")
	}
}

func TestFightFailureReturnsToReady(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(tx, nil)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(nil, errors.New(
		`MoveAbort(MoveLocation { module: 0xpkg::game, function_name: Some("fight_monster") }, 2) in command 1`))

	if err := f.game.Fight(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if want := []State{Ready, Battling, Ready}; !sameStates(f.sequence(), want) {
		t.Fatalf("expected %v, got %v", want, f.sequence())
	}
	s := f.game.Snapshot()
	if s.Battle != nil || s.Monster != nil {
		t.Fatalf("no result may be retained, got %+v", s)
	}
	latest := s.Logs[0]
	if latest.Category != gamelog.Danger || !strings.Contains(latest.Message, game.ErrorMessage(game.AbortInsufficientPay)) {
		t.Fatalf("expected a translated abort, got %+v", latest)
	}
}

func TestFightWithoutEventReturnsToReady(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(tx, nil)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(&events.Response{
		Digest: "abc",
		Events: []events.Event{event(events.KindBattle, `{"hero_id":"0xhero","won":"maybe"}`)},
	}, nil)

	if err := f.game.Fight(context.Background()); !errors.Is(err, ErrMissingEvent) {
		t.Fatalf("expected ErrMissingEvent, got %v", err)
	}
	if f.game.State() != Ready || f.game.Snapshot().Battle != nil {
		t.Fatalf("expected READY without a result, got %+v", f.game.Snapshot())
	}
}

func TestHealRejectedBeforeSubmission(t *testing.T) {
	f := newFixture(t)
	f.withHero(10, 100)
	f.ledger.set(func(l *ledgerState) { l.balance = game.IotaToNanos(3) })
	f.connect(t)
	before := f.game.Logs()

	if err := f.game.Heal(context.Background()); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	after := f.game.Logs()
	if len(after) != len(before)+1 || after[0].Category != gamelog.Danger {
		t.Fatalf("expected one danger entry, got %+v", after[:len(after)-len(before)])
	}
	if f.game.State() != Ready {
		t.Fatalf("expected READY, got %s", f.game.State())
	}
}

func TestHealFullHealth(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)
	if err := f.game.Heal(context.Background()); !errors.Is(err, ErrFullHealth) {
		t.Fatalf("expected ErrFullHealth, got %v", err)
	}
}

func TestHealSuccess(t *testing.T) {
	f := newFixture(t)
	f.withHero(40, 100)
	f.connect(t)

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildHealHero(testHero, game.IotaToNanos(5)).Return(tx)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).DoAndReturn(
		func(context.Context, *transaction.Transaction) (*events.Response, error) {
			f.withHero(100, 100)
			return &events.Response{
				Digest: "heal",
				Events: []events.Event{event(events.KindHeal, fmt.Sprintf(
					`{"hero_id":%q,"cost":"5000000000","hp_restored":"60","hp_after":"100"}`, testHero))},
			}, nil
		})

	if err := f.game.Heal(context.Background()); err != nil {
		t.Fatalf("heal: %v", err)
	}
	if want := []State{Ready, Healing, Ready}; !sameStates(f.sequence(), want) {
		t.Fatalf("expected %v, got %v", want, f.sequence())
	}
	s := f.game.Snapshot()
	if s.Heal == nil || s.Heal.HPRestored != 60 || s.Heal.HPAfter != 100 {
		t.Fatalf("unexpected heal result %+v", s.Heal)
	}
	if s.Player.Hero.HP != 100 {
		t.Fatalf("expected the refreshed hero, got %+v", s.Player.Hero)
	}
	if s.CanHeal() {
		t.Fatal("heal must not be offered at full health")
	}
}

func TestHealFromResultClearsBattle(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)

	fightTx := &transaction.Transaction{}
	f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(fightTx, nil)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), fightTx).DoAndReturn(
		func(context.Context, *transaction.Transaction) (*events.Response, error) {
			f.withHero(50, 100)
			return battleResponse(false, 50), nil
		})
	if err := f.game.Fight(context.Background()); err != nil {
		t.Fatal(err)
	}

	healTx := &transaction.Transaction{Nonce: 1}
	f.builder.EXPECT().BuildHealHero(testHero, game.IotaToNanos(5)).Return(healTx)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), healTx).Return(nil, errors.New("network unreachable"))
	if err := f.game.Heal(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	s := f.game.Snapshot()
	if s.State != Ready || s.Battle != nil || s.Monster != nil {
		t.Fatalf("expected READY with the battle cleared, got %+v", s)
	}
}

func TestContinue(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)
	if err := f.game.Continue(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(tx, nil)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(battleResponse(true, 100), nil)
	if err := f.game.Fight(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := f.game.Continue(); err != nil {
		t.Fatal(err)
	}
	s := f.game.Snapshot()
	if s.State != Ready || s.Battle != nil || s.Monster != nil {
		t.Fatalf("expected READY with nothing displayed, got %+v", s)
	}
}

func TestRefreshKeepsResult(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(tx, nil)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(battleResponse(true, 100), nil)
	if err := f.game.Fight(context.Background()); err != nil {
		t.Fatal(err)
	}
	f.ledger.set(func(l *ledgerState) { l.heroes = nil })
	if err := f.game.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f.game.State() != Result {
		t.Fatalf("an unacknowledged result must stay on screen, got %s", f.game.State())
	}
	if err := f.game.Continue(); err != nil {
		t.Fatal(err)
	}
	if f.game.State() != Idle {
		t.Fatalf("expected IDLE once the result is dismissed without a hero, got %s", f.game.State())
	}
}

func TestDisconnectReconciles(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)
	f.game.Disconnect()
	s := f.game.Snapshot()
	if s.State != Idle || s.Connected || s.Player.Hero != nil {
		t.Fatalf("expected a forgotten session, got %+v", s)
	}
	if err := f.game.Fight(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestPendingGuard(t *testing.T) {
	f := newFixture(t)
	f.withHero(50, 100)
	f.connect(t)

	started := make(chan struct{})
	release := make(chan struct{})
	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(tx, nil)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).DoAndReturn(
		func(context.Context, *transaction.Transaction) (*events.Response, error) {
			close(started)
			<-release
			return battleResponse(true, 50), nil
		})

	done := make(chan error)
	go func() {
		done <- f.game.Fight(context.Background())
	}()
	<-started
	if !f.game.Snapshot().Pending {
		t.Error("expected the pending flag while a fight is outstanding")
	}
	if err := f.game.Heal(context.Background()); !errors.Is(err, ErrActionPending) {
		t.Errorf("expected ErrActionPending, got %v", err)
	}
	if err := f.game.Fight(context.Background()); !errors.Is(err, ErrActionPending) {
		t.Errorf("expected ErrActionPending, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("fight: %v", err)
	}
	if f.game.Snapshot().Pending {
		t.Fatal("pending flag must be cleared")
	}
}

func TestSelectTier(t *testing.T) {
	f := newFixture(t)
	f.withHero(100, 100)
	f.connect(t)
	if err := f.game.SelectTier(game.Tier(9)); !errors.Is(err, game.ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
	if err := f.game.SelectTier(game.Tier3); err != nil {
		t.Fatal(err)
	}
	s := f.game.Snapshot()
	if s.Tier != game.Tier3 {
		t.Fatalf("expected tier 3, got %s", s.Tier)
	}
	if s.WinRate() != game.CalculateWinRate(game.Tier3, 1) {
		t.Fatalf("unexpected win rate %d", s.WinRate())
	}
	if s.RewardRange() != game.ExpectedRewardRange(game.Tier3) {
		t.Fatalf("unexpected reward range %+v", s.RewardRange())
	}
}

func TestNetworkStatus(t *testing.T) {
	var mu sync.Mutex
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	step := time.Duration(0)
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(step)
		return clock
	}
	f := newFixture(t, WithClock(now), WithSlowThreshold(5*time.Second))
	f.withHero(100, 100)
	f.connect(t)
	if got := f.game.Snapshot().Network; got != NetworkConnected {
		t.Fatalf("expected connected, got %s", got)
	}

	mu.Lock()
	step = 6 * time.Second
	mu.Unlock()
	if err := f.game.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.game.Snapshot().Network; got != NetworkSlow {
		t.Fatalf("expected slow, got %s", got)
	}

	f.ledger.set(func(l *ledgerState) { l.err = errors.New("connection refused") })
	if err := f.game.Refresh(context.Background()); err == nil {
		t.Fatal("expected a refresh error")
	}
	if got := f.game.Snapshot().Network; got != NetworkDisconnected {
		t.Fatalf("expected disconnected, got %s", got)
	}
}

func TestBankFallback(t *testing.T) {
	f := newFixture(t)
	f.withHero(10, 100)
	f.ledger.set(func(l *ledgerState) { l.bankErr = errors.New("object not found") })
	f.connect(t)
	s := f.game.Snapshot()
	if !s.BankDefault || s.Bank.HealCost != game.DefaultHealCost {
		t.Fatalf("expected the default heal cost, got %+v", s.Bank)
	}
	if countCategory(s.Logs, gamelog.Danger) != 1 {
		t.Fatalf("the fallback must be logged, got %+v", s.Logs)
	}
}

func TestBankFallbackDisabled(t *testing.T) {
	f := newFixture(t, WithBankFallback(false))
	f.withHero(10, 100)
	f.ledger.set(func(l *ledgerState) { l.bankErr = errors.New("object not found") })
	if err := f.game.Connect(context.Background()); err == nil {
		t.Fatal("expected connect to fail")
	}
	if got := f.game.Snapshot().Network; got != NetworkDisconnected {
		t.Fatalf("expected disconnected, got %s", got)
	}
}

func TestCreateHeroKeepsMintedHeroWhenRefreshFails(t *testing.T) {
	f := newFixture(t)
	f.connect(t)

	tx := &transaction.Transaction{}
	f.builder.EXPECT().BuildCreateHero().Return(tx)
	f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).DoAndReturn(
		func(context.Context, *transaction.Transaction) (*events.Response, error) {
			f.ledger.set(func(l *ledgerState) { l.err = errors.New("connection reset by peer") })
			return &events.Response{
				Digest: "7UgkqZ1Vnc2bSAoe9AT8ZsvfG4U6uCzN",
				Events: []events.Event{event(events.KindHeroCreated,
					fmt.Sprintf(`{"hero_id":%q,"owner":%q}`, testHero, testPlayer))},
			}, nil
		})

	if err := f.game.CreateHero(context.Background()); err != nil {
		t.Fatalf("create hero: %v", err)
	}
	s := f.game.Snapshot()
	if s.State != Ready {
		t.Fatalf("expected READY, got %s", s.State)
	}
	if s.Player.Hero == nil || s.Player.Hero.ID != testHero {
		t.Fatalf("expected the minted hero, got %+v", s.Player)
	}
	if s.Player.Hero.HP != game.InitialHP || s.Player.Hero.MaxHP != game.MaxHP || s.Player.Hero.Level != 1 {
		t.Fatalf("expected a fresh hero, got %+v", s.Player.Hero)
	}
	if !s.CanFight() {
		t.Fatal("a freshly minted hero must be able to fight")
	}
}

func TestOutcomeEntryPrecedesTransaction(t *testing.T) {
	assertLatest := func(t *testing.T, g *Game, outcome gamelog.Category) {
		t.Helper()
		logs := g.Logs()
		if len(logs) < 2 {
			t.Fatalf("expected at least two entries, got %+v", logs)
		}
		if logs[0].Category != gamelog.Tx {
			t.Fatalf("expected the transaction as the newest entry, got %+v", logs[0])
		}
		if logs[1].Category != outcome {
			t.Fatalf("expected a %v entry before the transaction, got %+v", outcome, logs[1])
		}
	}

	t.Run("create", func(t *testing.T) {
		f := newFixture(t)
		f.connect(t)
		tx := &transaction.Transaction{}
		f.builder.EXPECT().BuildCreateHero().Return(tx)
		f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).DoAndReturn(
			func(context.Context, *transaction.Transaction) (*events.Response, error) {
				f.withHero(100, 100)
				return &events.Response{
					Digest: "7UgkqZ1Vnc2bSAoe9AT8ZsvfG4U6uCzN",
					Events: []events.Event{event(events.KindHeroCreated,
						fmt.Sprintf(`{"hero_id":%q,"owner":%q}`, testHero, testPlayer))},
				}, nil
			})
		if err := f.game.CreateHero(context.Background()); err != nil {
			t.Fatalf("create hero: %v", err)
		}
		assertLatest(t, f.game, gamelog.Gain)
	})

	t.Run("fight", func(t *testing.T) {
		f := newFixture(t)
		f.withHero(100, 100)
		f.connect(t)
		tx := &transaction.Transaction{}
		f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(tx, nil)
		f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(battleResponse(true, 96), nil)
		if err := f.game.Fight(context.Background()); err != nil {
			t.Fatalf("fight: %v", err)
		}
		assertLatest(t, f.game, gamelog.Gain)
	})

	t.Run("fight without event", func(t *testing.T) {
		f := newFixture(t)
		f.withHero(100, 100)
		f.connect(t)
		tx := &transaction.Transaction{}
		f.builder.EXPECT().BuildFightMonster(testHero, game.Tier1).Return(tx, nil)
		f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(&events.Response{Digest: "abc"}, nil)
		if err := f.game.Fight(context.Background()); !errors.Is(err, ErrMissingEvent) {
			t.Fatalf("expected ErrMissingEvent, got %v", err)
		}
		assertLatest(t, f.game, gamelog.Danger)
	})

	t.Run("heal", func(t *testing.T) {
		f := newFixture(t)
		f.withHero(40, 100)
		f.connect(t)
		tx := &transaction.Transaction{}
		f.builder.EXPECT().BuildHealHero(testHero, game.IotaToNanos(5)).Return(tx)
		f.session.EXPECT().SignAndSubmit(gomock.Any(), tx).Return(&events.Response{
			Digest: "heal",
			Events: []events.Event{event(events.KindHeal, fmt.Sprintf(
				`{"hero_id":%q,"cost":"5000000000","hp_restored":"60","hp_after":"100"}`, testHero))},
		}, nil)
		if err := f.game.Heal(context.Background()); err != nil {
			t.Fatalf("heal: %v", err)
		}
		assertLatest(t, f.game, gamelog.Gain)
	})
}
