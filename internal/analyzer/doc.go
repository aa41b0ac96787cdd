// Package analyzer composes fetching, extraction, and matching into
// failure-isolated per-URL analyses, and runs batches of them under a
// bounded concurrency cap.
//
// # Components
//
//   - Runner: executes one AnalysisTask end to end. Every failure mode
//     (invalid target domain, network error, non-200 status, unparseable
//     markup) is captured into the returned PageAnalysis; nothing escapes
//     the Run boundary.
//   - Dispatcher: schedules many tasks with errgroup under a concurrency
//     limit, aggregates exactly one record per task, and emits progress
//     after each completion.
//
// A single task's failure never aborts a batch. Cancelling the batch
// context stops new fetches; tasks that never ran still produce records
// (marked with the cancellation error), so the one-record-per-task
// invariant holds even for partial runs.
package analyzer
