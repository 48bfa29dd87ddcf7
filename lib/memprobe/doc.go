// Package memprobe abstracts the process memory-usage measurement the
// benchmark records per run. The coordinator treats the probe as an
// opaque integer-valued service; the default implementation reads
// /proc/self/statm on Linux and falls back to runtime memory statistics
// on other platforms.
package memprobe
