// Package tarpipe copies directory trees between two devices by streaming a
// tar archive from a producer process on the source device into a consumer
// process on the target device.
//
// The protocol is strict about ordering: the consumer ("tar xf - -C dst")
// starts first, then the producer ("tar -C src -cf - ."). Everything the
// producer writes is forwarded to the consumer's standard input, which is
// closed once the producer has exited. If the producer fails the consumer
// is killed and the producer's stderr is reported; if the consumer fails
// its stderr is reported.
//
// A Copier falls back to core.CopyTree when either device cannot start
// processes, lacks tar, or a path is virtual. The tar lookup is remembered
// per device.
package tarpipe
