package transaction

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

type ArgumentKind uint8

const (
	ArgGasCoin ArgumentKind = iota + 1
	ArgInput
	ArgResult
)

// Argument points at the gas coin, an input or the output of a command.
type Argument struct {
	Kind   ArgumentKind `cramberry:"1"`
	Index  uint32       `cramberry:"2"`
	Nested uint32       `cramberry:"3"`
}

// GasCoin is the coin paying for the transaction.
func GasCoin() Argument {
	return Argument{Kind: ArgGasCoin}
}

type InputKind uint8

const (
	InputObject InputKind = iota + 1
	InputPure
)

type Input struct {
	Kind     InputKind `cramberry:"1"`
	ObjectID string    `cramberry:"2"`
	Pure     []byte    `cramberry:"3"`
}

type CommandKind uint8

const (
	CmdMoveCall CommandKind = iota + 1
	CmdSplitCoins
)

// Command is either a Move call or a coin split. Fields not used by the kind
// are left zero.
type Command struct {
	Kind      CommandKind `cramberry:"1"`
	Package   string      `cramberry:"2"`
	Module    string      `cramberry:"3"`
	Function  string      `cramberry:"4"`
	Arguments []Argument  `cramberry:"5"`
	Coin      Argument    `cramberry:"6"`
	Amounts   []Argument  `cramberry:"7"`
}

// Target renders a Move call as "<package>::<module>::<function>".
func (c Command) Target() string {
	return fmt.Sprintf("%s::%s::%s", c.Package, c.Module, c.Function)
}

// Transaction is a programmable transaction. Sender and Nonce are filled in
// by the wallet right before signing.
type Transaction struct {
	Inputs   []Input   `cramberry:"1"`
	Commands []Command `cramberry:"2"`
	Sender   string    `cramberry:"3"`
	Nonce    uint64    `cramberry:"4"`
}

var (
	ErrMalformed  = errors.New("malformed transaction")
	ErrNoMoveCall = errors.New("transaction has no move call")
)

func (tx *Transaction) object(id string) Argument {
	tx.Inputs = append(tx.Inputs, Input{Kind: InputObject, ObjectID: id})
	return Argument{Kind: ArgInput, Index: uint32(len(tx.Inputs) - 1)}
}

func (tx *Transaction) pure(b []byte) Argument {
	tx.Inputs = append(tx.Inputs, Input{Kind: InputPure, Pure: b})
	return Argument{Kind: ArgInput, Index: uint32(len(tx.Inputs) - 1)}
}

func (tx *Transaction) pureU64(v uint64) Argument {
	return tx.pure(binary.LittleEndian.AppendUint64(nil, v))
}

func (tx *Transaction) pureU8(v uint8) Argument {
	return tx.pure([]byte{v})
}

// splitCoins carves amount out of the gas coin and returns the new coin.
func (tx *Transaction) splitCoins(amount uint64) Argument {
	amountArg := tx.pureU64(amount)
	tx.Commands = append(tx.Commands, Command{
		Kind:    CmdSplitCoins,
		Coin:    GasCoin(),
		Amounts: []Argument{amountArg},
	})
	return Argument{Kind: ArgResult, Index: uint32(len(tx.Commands) - 1), Nested: 0}
}

func (tx *Transaction) moveCall(pkg, module, function string, args ...Argument) {
	tx.Commands = append(tx.Commands, Command{
		Kind:      CmdMoveCall,
		Package:   pkg,
		Module:    module,
		Function:  function,
		Arguments: args,
	})
}

// MoveCall returns the last Move call of the transaction.
func (tx *Transaction) MoveCall() (Command, error) {
	for i := len(tx.Commands) - 1; i >= 0; i-- {
		if tx.Commands[i].Kind == CmdMoveCall {
			return tx.Commands[i], nil
		}
	}
	return Command{}, ErrNoMoveCall
}

// Payment is the total amount split off the gas coin.
func (tx *Transaction) Payment() uint64 {
	var total uint64
	for _, c := range tx.Commands {
		if c.Kind != CmdSplitCoins {
			continue
		}
		for _, a := range c.Amounts {
			v, err := tx.U64(a)
			if err == nil {
				total += v
			}
		}
	}
	return total
}

func (tx *Transaction) input(a Argument, kind InputKind) (Input, error) {
	if a.Kind != ArgInput || int(a.Index) >= len(tx.Inputs) {
		return Input{}, fmt.Errorf("%w: argument %+v is not an input", ErrMalformed, a)
	}
	in := tx.Inputs[a.Index]
	if in.Kind != kind {
		return Input{}, fmt.Errorf("%w: input %d has kind %d", ErrMalformed, a.Index, in.Kind)
	}
	return in, nil
}

// U64 reads a pure u64 argument.
func (tx *Transaction) U64(a Argument) (uint64, error) {
	in, err := tx.input(a, InputPure)
	if err != nil {
		return 0, err
	}
	if len(in.Pure) != 8 {
		return 0, fmt.Errorf("%w: u64 input has %d bytes", ErrMalformed, len(in.Pure))
	}
	return binary.LittleEndian.Uint64(in.Pure), nil
}

// U8 reads a pure u8 argument.
func (tx *Transaction) U8(a Argument) (uint8, error) {
	in, err := tx.input(a, InputPure)
	if err != nil {
		return 0, err
	}
	if len(in.Pure) != 1 {
		return 0, fmt.Errorf("%w: u8 input has %d bytes", ErrMalformed, len(in.Pure))
	}
	return in.Pure[0], nil
}

// ObjectID reads an object argument.
func (tx *Transaction) ObjectID(a Argument) (string, error) {
	in, err := tx.input(a, InputObject)
	if err != nil {
		return "", err
	}
	return in.ObjectID, nil
}

// Bytes encodes the transaction for signing and submission.
func (tx *Transaction) Bytes() ([]byte, error) {
	b, err := cramberry.Marshal(*tx)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	return b, nil
}

// Digest returns the base58 blake2b-256 hash of the encoded transaction.
func (tx *Transaction) Digest() (string, error) {
	b, err := tx.Bytes()
	if err != nil {
		return "", err
	}
	return DigestOf(b), nil
}

// DigestOf hashes already encoded transaction bytes.
func DigestOf(b []byte) string {
	sum := blake2b.Sum256(b)
	return base58.Encode(sum[:])
}

// Decode reverses Bytes.
func Decode(b []byte) (*Transaction, error) {
	var tx Transaction
	if err := cramberry.Unmarshal(b, &tx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &tx, nil
}
