package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Keyer derives deterministic cache keys from a method call signature.
//
// Contract:
// - Determinism: semantically equal arguments must produce the same key,
//   regardless of map iteration order.
// - Sensitivity: calls differing in any argument value must map to different
//   keys with overwhelming probability.
// - Errors: arguments that cannot be canonicalized (functions, channels,
//   cyclic values) fail with ErrUnkeyable.
type Keyer interface {
	// Key generates a cache key from the owner identity, the method
	// identity, and the call arguments.
	Key(owner, method string, args any) (string, error)
}

// DefaultKeyer generates SHA-256 based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key generates a deterministic cache key.
// Format: cache:<owner>:<method>:<hash>
// where hash is the first 16 bytes of SHA-256(canonical JSON(args)) in hex.
func (k *DefaultKeyer) Key(owner, method string, args any) (string, error) {
	if owner == "" || method == "" {
		return "", fmt.Errorf("%w: owner and method are required", ErrInvalidKey)
	}

	canonical, err := canonicalize(args)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnkeyable, err)
	}

	hash := sha256.Sum256(canonical)
	key := fmt.Sprintf("cache:%s:%s:%s", owner, method, hex.EncodeToString(hash[:16]))

	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// canonicalize produces a deterministic JSON representation of the arguments.
// Maps are sorted by key to ensure consistent ordering.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		// encoding/json sorts map keys and serializes struct fields in
		// declaration order, both deterministic.
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
