// Package transaction builds the programmable transactions sent to the game
// contract.
//
// # Core Components
//
// Transaction: An ordered list of inputs (object references and pure values)
// and commands (coin splits and Move calls). Commands refer to inputs, to the
// gas coin or to the results of earlier commands through Arguments.
//
// Builder: Produces the three requests of the game (create hero, fight monster
// and heal hero) against a fixed contract deployment. Building touches neither
// the network nor the wallet.
//
// # Encoding
//
// Bytes encodes a transaction deterministically with cramberry; the same bytes
// are signed by the wallet and executed by the ledger. Digest is the base58
// blake2b-256 hash of those bytes.
package transaction
