// Package rpc speaks the node's JSON-RPC 2.0 interface over HTTP.
//
// # Core Components
//
// Client: Reads balances, hero objects and the game bank, executes signed
// transactions and waits for their finality. It implements both the chain
// reader of the game and the submitter of the wallet.
//
// Server: Serves the same methods from an in-process ledger so that several
// clients can share one local chain. A GET on the root path returns the node
// information used by discovery.
package rpc
