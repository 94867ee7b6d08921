// Package domain contains the core entities and value objects of the IR bridge.
//
// This package is the innermost layer. It has no dependencies on infrastructure
// concerns (radio, IR hardware, terminal, logging) and holds only pure logic.
//
// # Entities
//
//   - [RawFrame]: one inbound chunk of bytes delivered by the wireless link
//   - [DurationSequence]: ordered mark/space lengths in microseconds
//   - [ConnectionState]: link connection flag shared between execution contexts
//   - [Session]: the presentational state of one bridging run
//   - [Counters]: frame and transmission statistics
//
// # Wire format
//
// A RawFrame of N bytes carries floor((N-2)/2) big-endian 16-bit durations
// followed by a fixed 2-byte trailer that is never decoded. See [Decode].
package domain
