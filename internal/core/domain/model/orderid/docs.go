// Package orderid implements the human-readable order identifier:
// a region prefix derived from the shipping address followed by a
// per-region sequence number, for example "DHA0007".
//
// The package includes:
//   - RegionKey: the uppercase prefix that partitions the counter space
//   - Sequence: a positive counter value rendered with at least four digits
//   - Identifier: the concatenation stored on the order as customOrderId
//
// Derivation rules:
//   - The first non-blank candidate (state, division, city) is used, otherwise "GEN"
//   - Only the first three characters are kept and they are uppercased
//   - Candidates shorter than three characters are kept whole ("ny" -> "NY")
//   - Sequences wider than four digits are never truncated (10000 -> "10000")
//
// Everything here is pure and deterministic; allocation of sequence values
// belongs to the SequenceAllocator domain service.
package orderid
