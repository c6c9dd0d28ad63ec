package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/luca-patrignani/iota-adventurer/animation"
	"github.com/luca-patrignani/iota-adventurer/application"
	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/gamelog"
)

const (
	actionConnect    = "Connect wallet"
	actionDisconnect = "Disconnect"
	actionCreate     = "Create hero"
	actionTier       = "Choose tier"
	actionFight      = "Fight"
	actionFightAgain = "Fight again"
	actionHeal       = "Heal"
	actionContinue   = "Continue"
	actionExplorer   = "Show transaction"
	actionRefresh    = "Refresh"
	actionQuit       = "Quit"
)

// menu lists the actions offered in the current state.
func menu(s application.Snapshot) []string {
	if !s.Connected {
		return []string{actionConnect, actionQuit}
	}
	var actions []string
	switch s.State {
	case application.Idle:
		actions = append(actions, actionCreate)
	case application.Ready:
		if s.CanFight() {
			actions = append(actions, actionFight, actionTier)
		}
		if s.CanHeal() {
			actions = append(actions, actionHeal)
		}
	case application.Result:
		actions = append(actions, actionContinue, actionFightAgain, actionTier)
		if s.CanHeal() {
			actions = append(actions, actionHeal)
		}
		actions = append(actions, actionExplorer)
	}
	return append(actions, actionRefresh, actionDisconnect, actionQuit)
}

func tierOptions(s application.Snapshot) []string {
	var level uint64 = 1
	if s.Player.Hero != nil {
		level = s.Player.Hero.Level
	}
	var options []string
	for _, t := range game.Tiers() {
		r := game.ExpectedRewardRange(t)
		options = append(options, fmt.Sprintf("%d. %s, %d%% win, reward %s-%s",
			t, t.Label(), game.CalculateWinRate(t, level),
			game.FormatIota(r.Min, 0), game.FormatReward(r.Max)))
	}
	return options
}

func parseTierOption(option string) (game.Tier, error) {
	prefix, _, found := strings.Cut(option, ".")
	if !found {
		return 0, fmt.Errorf("%w: %q", game.ErrInvalidTier, option)
	}
	n, err := strconv.ParseUint(prefix, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", game.ErrInvalidTier, option)
	}
	t := game.Tier(n)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %d", game.ErrInvalidTier, n)
	}
	return t, nil
}

func phaseText(p animation.Phase, s application.Snapshot) string {
	name := "a monster"
	if s.Monster != nil {
		name = s.Monster.Name
	}
	switch p {
	case animation.Encounter:
		return fmt.Sprintf("A wild %s appears!", name)
	case animation.Charging:
		return fmt.Sprintf("Charging at %s ...", name)
	case animation.Clash:
		return fmt.Sprintf("Clashing with %s ...", name)
	case animation.Result:
		return "The dust settles"
	}
	return "Waiting ..."
}

func hpBar(hp, maxHP uint64, width int) string {
	if maxHP == 0 {
		return strings.Repeat("░", width)
	}
	filled := int(min(hp, maxHP) * uint64(width) / maxHP)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case hp*4 <= maxHP:
		return pterm.LightRed(bar)
	case hp*2 <= maxHP:
		return pterm.LightYellow(bar)
	}
	return pterm.LightGreen(bar)
}

func networkBadge(s application.Snapshot) string {
	switch s.Network {
	case application.NetworkConnected:
		return pterm.LightGreen("● connected")
	case application.NetworkSlow:
		return pterm.LightYellow(fmt.Sprintf("● slow (%s)", s.Latency.Round(time.Millisecond)))
	}
	return pterm.LightRed("● disconnected")
}

func printHeroInfo(s application.Snapshot) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	title := "No wallet"
	if s.Player.Address != "" {
		title = s.Player.Address[:min(len(s.Player.Address), 12)] + "..."
	}
	body := fmt.Sprintf("%s\nBalance: %s IOTA\n", networkBadge(s), game.FormatIota(s.Player.Balance, 2))
	if h := s.Player.Hero; h != nil {
		body += fmt.Sprintf("%s %s\nHP %s %d/%d\nLevel %d, %s XP\n",
			pterm.LightCyan(string(s.Player.Tier)), s.Player.Tier.Title(),
			hpBar(h.HP, h.MaxHP, 20), h.HP, h.MaxHP,
			h.Level, humanize.Comma(int64(h.XP)))
	} else {
		body += pterm.Gray("No hero yet\n")
	}
	if !s.LastRefresh.IsZero() {
		body += pterm.Gray("updated " + humanize.Time(s.LastRefresh))
	}
	return pbox.WithTitle(title).WithTitleTopLeft().Sprint(body)
}

func printTierInfo(s application.Snapshot) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	r := s.RewardRange()
	fee, _ := s.Tier.EntryFee()
	heal := fmt.Sprintf("Heal cost: %s IOTA", game.FormatIota(s.Bank.HealCost, 2))
	if s.BankDefault {
		heal += pterm.LightYellow(" (default)")
	}
	return pbox.WithTitle(pterm.LightYellow("|" + s.Tier.String() + "|")).WithTitleTopCenter().Sprintf(
		"Entry fee: %s IOTA\nWin rate: %d%%\nReward: %s to %s\n%s",
		game.FormatIota(fee, 2), s.WinRate(), game.FormatReward(r.Min), game.FormatReward(r.Max), heal)
}

func getBattlePanel(s application.Snapshot) (pterm.Panel, bool) {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	switch {
	case s.Battle != nil:
		b := s.Battle
		var outcome string
		if b.Won {
			outcome = pterm.LightGreen(fmt.Sprintf("Defeated %s, won %s", b.Monster.Name, game.FormatReward(b.Reward)))
		} else {
			outcome = pterm.LightRed(fmt.Sprintf("%s was too strong", b.Monster.Name))
		}
		text := fmt.Sprintf("%s\n+%d XP, -%d HP, HP now %d", outcome, b.XPGained, b.DamageTaken, b.HeroHPAfter)
		if b.LeveledUp {
			text += pterm.LightMagenta(fmt.Sprintf("\nLevel up! Level %d", b.NewLevel))
		}
		return pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|RESULT|")).WithTitleTopCenter().Sprint(text)}, true
	case s.Heal != nil:
		text := fmt.Sprintf("Restored %d HP for %s IOTA, HP now %d",
			s.Heal.HPRestored, game.FormatIota(s.Heal.Cost, 2), s.Heal.HPAfter)
		return pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|HEALED|")).WithTitleTopCenter().Sprint(text)}, true
	case s.Monster != nil:
		text := fmt.Sprintf("%s\n%s", pterm.LightRed(s.Monster.Name), s.Monster.Description)
		return pterm.Panel{Data: pbox.WithTitle(pterm.LightRed("|BATTLE|")).WithTitleTopCenter().Sprint(text)}, true
	}
	return pterm.Panel{}, false
}

func categoryStyle(c gamelog.Category) func(a ...any) string {
	switch c {
	case gamelog.Combat:
		return pterm.LightMagenta
	case gamelog.Gain:
		return pterm.LightGreen
	case gamelog.Danger:
		return pterm.LightRed
	case gamelog.Tx:
		return pterm.LightBlue
	}
	return pterm.Gray
}

func printLog(entries []gamelog.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%-14s %s\n",
			pterm.Gray(humanize.Time(e.Timestamp)), categoryStyle(e.Category)(e.Message)))
	}
	if sb.Len() == 0 {
		sb.WriteString(pterm.Gray("Nothing happened yet"))
	}
	return pterm.DefaultBox.WithTitle("Log").WithTitleTopLeft().Sprint(strings.TrimRight(sb.String(), "\n"))
}

func printState(s application.Snapshot) {
	top := []pterm.Panel{{Data: printHeroInfo(s)}}
	if s.Player.Hero != nil {
		top = append(top, pterm.Panel{Data: printTierInfo(s)})
	}
	rows := [][]pterm.Panel{top}
	if battle, ok := getBattlePanel(s); ok {
		rows = append(rows, []pterm.Panel{battle})
	}
	rows = append(rows, []pterm.Panel{{Data: printLog(s.Logs)}})
	pterm.DefaultPanel.WithPanels(rows).Render()
}
