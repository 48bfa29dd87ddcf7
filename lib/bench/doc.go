// Package bench contains the run coordinator: the component that takes a
// validated configuration, executes the concurrent workload against a
// fresh map model, and emits one sample per successful run.
//
// A run moves through a fixed lifecycle:
//
//	configured -> prefilling -> running -> measuring -> completed
//	                                 \-> failed
//
// The wall-clock timer covers the running phase only, from just before
// the first worker is launched to just after the last worker finishes.
// Prefill and the post-run memory measurement are excluded.
//
// Iteration partitioning uses floor division: each of the T workers
// executes total/T operations and the remainder is dropped, so the
// reported iteration count is (total/T)*T. This keeps per-worker load
// identical across variants at the cost of a sub-T rounding loss.
//
// Failed runs (worker panic, cancelled context, exceeded deadline) are
// logged and produce no sample; a sweep continues with the remaining
// runs.
package bench
