// Package ledger implements an in-process chain that executes the game
// contract, for offline play and end-to-end tests.
//
// # Core Components
//
// Chain: Holds account balances, hero objects and the game bank. It verifies
// signed transactions, executes their commands atomically and records the
// emitted events. It answers the same reads as a remote node.
//
// Blockchain: An append-only log of executed transactions with hash chaining
// for tamper detection.
//
// Block: A single executed transaction with its sender, events and a
// cryptographic link to the previous block.
//
// # Contract Rules
//
// A fight rolls against the displayed win rate of the hero's level. A win pays
// between the tier's base reward and five IOTA more out of the bank, a loss
// costs hit points. Failures abort with the contract's codes 0 to 4 and leave
// no trace on the chain.
//
// # Usage
//
// Create a chain with the deployment ids, optionally fund accounts, then
// submit transactions signed by the wallet package. Verify can be called at
// any time to check that the block log is intact.
package ledger
