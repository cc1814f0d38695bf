/*
Package operation runs one replacement pass over a directory tree.

	+-------------+     +-------------+     +-------------+
	|    Walk     | --> |   Filter    | --> |   Rewrite   |
	|  (batches)  |     | (skip bak)  |     | (per file)  |
	+-------------+     +-------------+     +------+------+
	                                               |
	                                        +------+------+
	                                        |  Change Log |
	                                        +-------------+

🎯 Purpose:
- Drives the walker, the filter and the rewriter for a validated RunConfig
- Records the start of the run, every skip and the final summary

🔄 Flow:
1. Log the full configuration before touching anything
2. For each directory batch, drop backups, the run log and ignored files
3. Rewrite the remaining files one at a time, in walk order
4. Log the summary, or log the failure and stop

⚡ Guarantees:
- Files are processed sequentially
- Cancellation is noticed between files, never in the middle of one
- The first I/O error ends the run and is returned to the caller

🔍 Example:

	op, err := operation.New(operation.Options{Config: cfg, Logger: logger})
	report, err := op.Run(ctx)
*/
package operation
