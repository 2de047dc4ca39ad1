// Package pak generates, parses and verifies prefixed API keys.
//
// Key Format:
//
//   - Prefix: issuer name chosen by the caller (e.g. "mycompany")
//   - Short token: public base58 identifier, optionally starting with a
//     fixed short token prefix
//   - Long token: secret base58 encoded random bytes
//   - Text form: <prefix>_<short token>_<long token>
//
// Hash Format:
//
//   - Lowercase hex of the configured digest over the long token
//     (64 characters for SHA-256)
//
// Security:
//
//   - Randomness comes from a caller supplied RandomSource; a failed draw is
//     an error (or a panic on the Must path), never a retry
//   - Only the long token hash should be stored
//   - CheckHash compares in constant time
//   - Key never prints its long token; use FullString to hand a key out
//
// Keys are assembled through a Builder:
//
//	gen, err := pak.NewBuilder().Prefix("mycompany").StandardDefaults().Finalize()
//	if err != nil {
//		return err
//	}
//	key, hash, err := gen.GenerateKeyAndHash()
package pak
