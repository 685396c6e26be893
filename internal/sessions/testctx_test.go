package sessions

import (
	"context"
	"testing"
)

// testCtx mirrors testing.T.Context (Go 1.24+) for older toolchains: the
// returned context is canceled when the test's cleanup runs.
func testCtx(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
