// Package wallet is a minimal local keystore that plays the role of the
// browser wallet: it exposes the connected address and signs and submits
// transactions.
//
// # Core Components
//
// Wallet: Holds one EdDSA key, loaded from or written to a key file on
// Connect. SignAndSubmit signs the encoded transaction, hands it to a
// Submitter and waits for finality.
//
// Submitter: The node endpoint executing signed transactions. The RPC client
// and the in-process ledger both implement it.
//
// # Signatures
//
// A signature is the base64 encoding of a scheme flag, the 64 byte EdDSA
// signature and the 32 byte public key. The signed message is the blake2b-256
// digest of the transaction bytes prefixed with the transaction intent.
// Addresses are the hex blake2b-256 digest of the flag and public key.
package wallet
