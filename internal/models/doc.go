// Package models defines the core domain models for the guest list.
//
// # Models
//
//   - Guest: one attendee on the list, created locally or by the remote seed
//   - Color: the cosmetic tag a guest is rendered with
//
// Guests are identified by an int64 ID. Locally added guests use the Unix
// millisecond timestamp of their creation; seeded guests keep the ID the seed
// provider assigned. The two ranges are not reconciled, so an ID collision is
// possible in theory and callers must not assume uniqueness.
//
// # Serialization
//
// The JSON tags on Guest are the durable blob format and the RPC format. The
// blob has no version field; changing a tag changes what older blobs decode to.
package models
