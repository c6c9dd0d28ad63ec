package rpc

import "fmt"

// CoinType is the native coin.
const CoinType = "0x2::iota::IOTA"

// HeroType is the struct type of hero objects of a package.
func HeroType(packageID string) string {
	return fmt.Sprintf("%s::game::Hero", packageID)
}

// BankType is the struct type of the game bank of a package.
func BankType(packageID string) string {
	return fmt.Sprintf("%s::game::GameBank", packageID)
}
