package manifest

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ParseSeed decodes one seed. Recognised prefixes are "base58:", "hex:",
// "pubkey:" (32 key bytes) and "u8:" (a single byte, typically a bump).
// Anything else is taken as raw UTF-8.
func ParseSeed(s string) ([]byte, error) {
	prefix, rest, ok := strings.Cut(s, ":")
	if !ok {
		return []byte(s), nil
	}

	var (
		seed []byte
		err  error
	)
	switch prefix {
	case "base58":
		seed, err = base58.Decode(rest)
	case "hex":
		seed, err = hex.DecodeString(rest)
	case "pubkey":
		var key solana.PublicKey
		key, err = solana.PublicKeyFromBase58(rest)
		seed = key.Bytes()
	case "u8":
		var v uint64
		v, err = strconv.ParseUint(rest, 10, 8)
		seed = []byte{byte(v)}
	default:
		return []byte(s), nil
	}
	if err != nil {
		return nil, fmt.Errorf("seed %q: %w", s, err)
	}
	if len(seed) > solana.MaxSeedLength {
		return nil, fmt.Errorf("seed %q: %d bytes exceeds %d", s, len(seed), solana.MaxSeedLength)
	}
	return seed, nil
}

// ParseSeeds decodes a seed list with ParseSeed.
func ParseSeeds(list []string) ([][]byte, error) {
	seeds := make([][]byte, 0, len(list))
	for _, s := range list {
		seed, err := ParseSeed(s)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// DecodeData decodes instruction bytes given as "hex:", "base64:" or
// "base58:" prefixed text. Without a prefix hex is tried first, then base58.
func DecodeData(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		switch prefix {
		case "hex":
			return hex.DecodeString(strings.TrimPrefix(rest, "0x"))
		case "base64":
			return base64.StdEncoding.DecodeString(rest)
		case "base58":
			return base58.Decode(rest)
		default:
			return nil, fmt.Errorf("unknown encoding %q", prefix)
		}
	}

	if data, err := hex.DecodeString(strings.TrimPrefix(s, "0x")); err == nil {
		return data, nil
	}
	data, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("data is neither hex nor base58")
	}
	return data, nil
}
