package rpc

import (
	"encoding/json"
	"fmt"
)

// Methods of the node interface.
const (
	MethodGetBalance          = "iotax_getBalance"
	MethodGetOwnedObjects     = "iotax_getOwnedObjects"
	MethodGetObject           = "iota_getObject"
	MethodExecuteTransaction  = "iota_executeTransactionBlock"
	MethodGetTransactionBlock = "iota_getTransactionBlock"
)

// Error codes returned by the node.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeExecution      = -32002
	CodeNotFound       = -32004
)

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is an error object returned by the node.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// NodeInfo describes a node and the game deployment it serves.
type NodeInfo struct {
	Name      string `json:"name"`
	Network   string `json:"network"`
	PackageID string `json:"package_id"`
	BankID    string `json:"bank_id"`
	RandomID  string `json:"random_id"`
}
