// Package batch applies the script parser to many files concurrently.
//
// A [Coordinator] runs one task per file on a bounded pool. Results arrive
// in completion order; [Report.Sort] restores a stable order before a
// report is written. A file that cannot be read, is not valid UTF-8, or
// makes the parser panic is recorded as a failed [Result]. The run always
// covers every file.
package batch
