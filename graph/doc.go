// Package graph defines the call graph model shared by the generator and
// code generator, plus the binary artifact codec used to hand graphs
// between them.
//
// A Graph is immutable once generated: strategies build it incrementally,
// freeze it, and encode it to the artifact format. The code generator
// decodes and validates the artifact but never mutates it.
//
// The artifact is a protobuf wire-format message with two record kinds:
//
//	Graph { 1: root_id (varint), 2: repeated Node (bytes) }
//	Node  { 1: id (varint), 2: depth (varint),
//	        3: intra_control_flow (varint bool), 4: callees (packed varint),
//	        5: prefetch (varint bool) }
//
// Encoding is canonical: nodes are written in stable order (root first,
// remaining ids ascending) with fields in tag order, so a fixed graph
// always encodes to identical bytes and Encode(Decode(b)) == b for any
// artifact produced by Encode. Field changes are additive only; decoders
// skip unknown fields.
package graph
