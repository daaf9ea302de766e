package core

import "context"

// The Async helpers run the synchronous operation and then hand its result
// to the continuation on the calling goroutine. Calls issued in sequence
// complete in the same sequence.

// AsyncReadFile reads p and passes the outcome to cont.
func AsyncReadFile(ctx context.Context, a Access, p Path, limit, offset int64, cont func([]byte, error)) {
	data, err := a.ReadFile(ctx, p, limit, offset)
	cont(data, err)
}

// AsyncWriteFile writes data to p and passes the outcome to cont.
func AsyncWriteFile(ctx context.Context, a Access, p Path, data []byte, offset int64, cont func(int64, error)) {
	n, err := a.WriteFile(ctx, p, data, offset)
	cont(n, err)
}

// AsyncCopyFile copies src to dst and passes the outcome to cont.
func AsyncCopyFile(ctx context.Context, r Resolver, src, dst Path, cont func(error)) {
	cont(CopyFile(ctx, r, src, dst))
}
