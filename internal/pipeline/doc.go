// Package pipeline provides a framework for executing run steps in sequence.
//
// The pipeline pattern is used to process a directory tree through multiple
// stages: folder discovery, filename normalization, concurrent reconciliation,
// and the mode-specific mutation (delete or copy). Each stage is implemented
// as a Step that receives the accumulated run report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running runs
// 4. The scan/clean/relocate modes become step arrangements, not code paths
//
// Only the analysis stage runs concurrently (errgroup with a limit); every
// stage that mutates the tree runs sequentially on the coordinating goroutine.
package pipeline
