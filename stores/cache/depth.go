// Package cache holds the confirmation-depth caches that sit in front of the node.
package cache

// SafetyMargin is the depth a block or transaction must exceed before it is cached.
const SafetyMargin = 6

// ConfirmationDepth is the number of blocks on top of height, itself included.
// A height above the tip has depth 0.
func ConfirmationDepth(tip, height uint64) uint64 {
	if height > tip {
		return 0
	}

	return tip - height + 1
}

// Eligible reports whether a node reported confirmation count is deep enough to cache.
func Eligible(confirmations int64) bool {
	return confirmations > SafetyMargin
}
