// Package serialize is the storage-facing codec layer for run
// descriptions.
//
// Serialization happens in two steps: a document is first converted to its
// plain mapping form, and the mapping is then encoded to one of two text
// formats: compact JSON or human-readable YAML. Both formats carry the
// exact same mapping shape, so either can decode what the other produced.
//
// # Versions
//
// Three version terms matter at this boundary:
//
//   - native version: the version actually present in a given serialized
//     document
//   - current version: the version used by the live in-memory
//     representation
//   - storage version: the version written to durable storage, chosen for
//     backward compatibility with older readers
//
// Function names follow the "To*"/"From*" convention where the middle part
// names the format, with "ForStorage", "AsVersion", "ToCurrent" and
// "ToNative" suffixes describing the version handling.
//
// # Errors
//
// A mapping whose version tag matches no known variant fails with
// UNKNOWN_VERSION. A conversion request with no registered converter fails
// with UNSUPPORTED_CONVERSION. Malformed text fails with PARSE_ERROR
// wrapping the decoder's error. All errors propagate to the caller; this
// package never retries and never logs.
//
// # Concurrency
//
// Every function here is a pure function of its input and the read-only
// converter table; all are safe for unsynchronized concurrent use.
package serialize
