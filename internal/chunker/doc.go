// Package chunker splits large payloads into independently keyed,
// independently verified encrypted chunks.
//
// Each chunk i of N is encrypted under its own key, derived from the item key
// with the cascade in internal/kdf, into its own envelope. Chunks can be
// produced and consumed one at a time, so a multi-gigabyte file never has to
// be buffered in full. Chunk order is significant: decryption proceeds
// strictly in index order, and the first chunk whose verification fails
// aborts reassembly with no output.
package chunker
