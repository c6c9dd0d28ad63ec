package game

import (
	"fmt"
	"regexp"
	"strconv"
)

// Abort codes raised by the game contract.
const (
	AbortHeroDead        uint64 = 0
	AbortInvalidTier     uint64 = 1
	AbortInsufficientPay uint64 = 2
	AbortFullHealth      uint64 = 3
	AbortBankUnderfunded uint64 = 4
)

var contractErrors = map[uint64]string{
	AbortHeroDead:        "hero is already dead",
	AbortInvalidTier:     "invalid monster tier",
	AbortInsufficientPay: "insufficient payment",
	AbortFullHealth:      "hero is already at full health",
	AbortBankUnderfunded: "game bank is underfunded",
}

// ErrorMessage translates a contract abort code for the player.
func ErrorMessage(code uint64) string {
	if msg, ok := contractErrors[code]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error (code: %d)", code)
}

var abortPattern = regexp.MustCompile(`MoveAbort\(.*?,\s*(\d+)\)`)

// ParseAbortCode extracts the abort code from a failed execution message of
// the form "MoveAbort(<location>, <code>)".
func ParseAbortCode(err error) (uint64, bool) {
	if err == nil {
		return 0, false
	}
	m := abortPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	code, perr := strconv.ParseUint(m[1], 10, 64)
	if perr != nil {
		return 0, false
	}
	return code, true
}

// Describe renders a submission error, translating contract aborts.
func Describe(err error) string {
	if code, ok := ParseAbortCode(err); ok {
		return ErrorMessage(code)
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
