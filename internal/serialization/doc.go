// Package serialization persists matrices and trained parameters.
//
// Two formats are supported.
//
// The raw matrix format stores a single matrix with no header magic or
// version:
//
//	[4 bytes: rows (int32 LE)]
//	[4 bytes: cols (int32 LE)]
//	[rows*cols × 4 bytes: float32 LE, row-major]
//
// The checkpoint format bundles named parameters with training metadata:
//
//	Format Structure:
//	  [4 bytes: Magic "MGRD"]
//	  [4 bytes: Version (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [8 bytes: Data Size (uint64 LE)]
//	  [32 bytes: SHA-256 of header and data]
//	  [Header: JSON metadata]
//	  [Tensor data: float32 LE, row-major, one tensor after another]
//
// Example usage:
//
//	// Save trained parameters
//	meta := serialization.CheckpointMeta{Epoch: 10, Optimizer: "adam"}
//	if err := serialization.SaveCheckpoint("mlp.ckpt", params, meta); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Restore them into a freshly built model
//	ckpt, err := serialization.LoadCheckpoint("mlp.ckpt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ckpt.Restore(params); err != nil {
//	    log.Fatal(err)
//	}
package serialization
