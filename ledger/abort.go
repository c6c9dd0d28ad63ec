package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTransaction = errors.New("unknown transaction")
	ErrUnknownObject      = errors.New("unknown object")
	ErrNotOwner           = errors.New("object not owned by sender")
	ErrInsufficientGas    = errors.New("insufficient gas coin balance")
	ErrUnsupportedCall    = errors.New("unsupported move call")
	ErrMissingSignature   = errors.New("missing signature")
	ErrSenderMismatch     = errors.New("transaction sender did not sign it")
)

// AbortError is a contract abort. Its message follows the node's
// "MoveAbort(<location>, <code>)" format.
type AbortError struct {
	Package  string
	Function string
	Code     uint64
	Command  int
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("MoveAbort(MoveLocation { module: %s::game, function_name: Some(%q) }, %d) in command %d",
		e.Package, e.Function, e.Code, e.Command)
}
