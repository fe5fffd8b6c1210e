package password

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Params controls Argon2id hashing cost.
// MemoryKiB is in KiB as required by argon2.IDKey.
type Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// maxPasswordBytes bounds the plaintext fed into the KDF.
// Anything longer is attacker-shaped input, not a credential.
const maxPasswordBytes = 1024

// DefaultParams returns a strong baseline for interactive logins.
// Values can be overridden via env (see FromEnv).
func DefaultParams() Params {
	// Clamp parallelism to [1..4] to keep resource usage predictable in containers.
	threads := runtime.NumCPU()
	if threads <= 0 {
		threads = 1
	}
	if threads > 4 {
		threads = 4
	}

	return Params{
		MemoryKiB:   64 * 1024, // 64 MiB
		Iterations:  3,
		Parallelism: uint8(threads), // #nosec G115 -- clamped to [1..4] above; safe conversion.
		SaltLength:  16,
		KeyLength:   32,
	}
}

// FromEnv loads hashing parameters from environment variables.
//
// Env surface:
// - GATE_ARGON2_MEMORY_KIB
// - GATE_ARGON2_ITERATIONS
// - GATE_ARGON2_PARALLELISM
// - GATE_ARGON2_SALT_LEN
// - GATE_ARGON2_KEY_LEN
func FromEnv() (Params, error) {
	p := DefaultParams()

	if v, ok := os.LookupEnv("GATE_ARGON2_MEMORY_KIB"); ok {
		u, err := atou32(v, 8*1024, 1024*1024) // 8 MiB .. 1 GiB
		if err != nil {
			return Params{}, fmt.Errorf("GATE_ARGON2_MEMORY_KIB: %w", err)
		}
		p.MemoryKiB = u
	}

	if v, ok := os.LookupEnv("GATE_ARGON2_ITERATIONS"); ok {
		u, err := atou32(v, 1, 20)
		if err != nil {
			return Params{}, fmt.Errorf("GATE_ARGON2_ITERATIONS: %w", err)
		}
		p.Iterations = u
	}

	if v, ok := os.LookupEnv("GATE_ARGON2_PARALLELISM"); ok {
		u, err := atou32(v, 1, 64)
		if err != nil {
			return Params{}, fmt.Errorf("GATE_ARGON2_PARALLELISM: %w", err)
		}
		if u > math.MaxUint8 {
			return Params{}, fmt.Errorf("GATE_ARGON2_PARALLELISM: out of range [1..%d]", math.MaxUint8)
		}
		p.Parallelism = uint8(u)
	}

	if v, ok := os.LookupEnv("GATE_ARGON2_SALT_LEN"); ok {
		u, err := atou32(v, 8, 64)
		if err != nil {
			return Params{}, fmt.Errorf("GATE_ARGON2_SALT_LEN: %w", err)
		}
		p.SaltLength = u
	}

	if v, ok := os.LookupEnv("GATE_ARGON2_KEY_LEN"); ok {
		u, err := atou32(v, 16, 64)
		if err != nil {
			return Params{}, fmt.Errorf("GATE_ARGON2_KEY_LEN: %w", err)
		}
		p.KeyLength = u
	}

	return p, nil
}

func atou32(s string, minVal, maxVal uint32) (uint32, error) {
	s = strings.TrimSpace(s)
	u64, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an unsigned integer")
	}

	u := uint32(u64)
	if u < minVal || u > maxVal {
		return 0, fmt.Errorf("out of range [%d..%d]", minVal, maxVal)
	}
	return u, nil
}
