package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Key prefixes, also used as the key type reported to cache hooks.
const (
	KeyTypeSeparation = "separation"
	KeyTypeOrders     = "orders"
)

// SeparationKeyOpts holds the options that change a separation result.
type SeparationKeyOpts struct {
	Transitive bool `json:"transitive"`
}

// OrdersKeyOpts holds the options that change an order listing.
type OrdersKeyOpts struct {
	Dimension  string `json:"dimension"`
	BestOnly   bool   `json:"best_only"`
	Transitive bool   `json:"transitive"`
}

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// SeparationKey keys the result of a separation loop.
	SeparationKey(tilingHash string, opts SeparationKeyOpts) string

	// OrdersKey keys the orders found by a single pass.
	OrdersKey(tilingHash string, opts OrdersKeyOpts) string
}

// DefaultKeyer produces keys of the form "type:sha256(hash, opts)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SeparationKey implements Keyer.
func (DefaultKeyer) SeparationKey(tilingHash string, opts SeparationKeyOpts) string {
	return hashKey(KeyTypeSeparation, tilingHash, opts)
}

// OrdersKey implements Keyer.
func (DefaultKeyer) OrdersKey(tilingHash string, opts OrdersKeyOpts) string {
	return hashKey(KeyTypeOrders, tilingHash, opts)
}

// Hash returns the hex SHA-256 of data. Tilings are hashed over their
// canonical JSON, so equal tilings share keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey hashes the tiling hash together with the options, so two option
// sets never collide, and prefixes the key type.
func hashKey(keyType, tilingHash string, opts any) string {
	data, err := json.Marshal(struct {
		Tiling string `json:"tiling"`
		Opts   any    `json:"opts"`
	}{tilingHash, opts})
	if err != nil {
		panic("cache: unencodable key options: " + err.Error())
	}
	return keyType + ":" + Hash(data)
}
