package ledger

import "github.com/luca-patrignani/iota-adventurer/events"

// Block records one executed transaction.
type Block struct {
	Index     int            `json:"index"`
	Timestamp int64          `json:"timestamp"`
	PrevHash  string         `json:"prev_hash"`
	Hash      string         `json:"hash"`
	Digest    string         `json:"digest"`
	Sender    string         `json:"sender"`
	Events    []events.Event `json:"events"`
	Metadata  Metadata       `json:"metadata"`
}

type Metadata struct {
	Function string            `json:"function"`
	GasFee   uint64            `json:"gas_fee"`
	Extra    map[string]string `json:"extra,omitempty"`
}
