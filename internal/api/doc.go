// Package api talks to the WasmEdge release host. It resolves version
// tokens against the published tag list, derives the release asset for a
// target platform, fetches the per-version checksum manifest, streams
// asset downloads to disk, and verifies downloaded files against their
// manifest digest.
//
// # Integrity Model
//
// Every download is verified against a single SHA256 entry from the
// release's checksum manifest before it is handed to extraction. Nothing
// beyond that one comparison is checked; a missing manifest entry is an
// error, never an implicit pass.
//
// # Architecture
//
//   - Client: tag listing, manifest fetch, asset download
//   - Asset: deterministic (version, OS, arch) naming
//   - VerifyChecksum: streaming SHA256 comparison
//
// Network access is confined to Client; Asset and VerifyChecksum are pure
// and filesystem-only respectively.
package api
