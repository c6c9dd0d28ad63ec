// Package application coordinates a game session: it owns the session state,
// checks preconditions, drives the wallet and the chain reader through each
// action and records what happened.
//
// # Core Components
//
// Game: The session object. It holds exactly one State at a time and exposes
// one method per user action. Every method returns after the ledger round
// trip has settled.
//
// Snapshot: An immutable copy of everything a screen needs, handed to the
// change observer after every transition.
//
// # States
//
//	IDLE      connected without a hero, or not connected
//	MINTING   create hero in flight
//	READY     hero loaded, no action in flight
//	BATTLING  fight in flight
//	HEALING   heal in flight
//	RESULT    battle outcome on screen until Continue
//
// # Refresh Over Mutate
//
// Balances and the hero are never computed locally. After every confirmed
// action and on connect the game re-reads balance, heroes and bank
// configuration from the chain.
package application
