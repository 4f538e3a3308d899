// index for context values
package wctx

import (
	"context"
	"sync/atomic"
)

type key int

const (
	funcKey     key = 1
	selectorKey key = 2
	versionKey  key = 3
	counterKey  key = 4
)

// Name or signature of the function being
// encoded or decoded
func WithFunc(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, funcKey, name)
}

func Func(ctx context.Context) string {
	name, _ := ctx.Value(funcKey).(string)
	return name
}

func WithSelector(ctx context.Context, sel [4]byte) context.Context {
	return context.WithValue(ctx, selectorKey, sel)
}

// ok is false when no selector was set
func Selector(ctx context.Context) ([4]byte, bool) {
	sel, ok := ctx.Value(selectorKey).([4]byte)
	return sel, ok
}

func WithVersion(ctx context.Context, v string) context.Context {
	return context.WithValue(ctx, versionKey, v)
}

func Version(ctx context.Context) string {
	v, _ := ctx.Value(versionKey).(string)
	return v
}

func WithCounter(ctx context.Context, c *uint64) context.Context {
	return context.WithValue(ctx, counterKey, c)
}

func CounterAdd(ctx context.Context, n uint64) uint64 {
	cptr, ok := ctx.Value(counterKey).(*uint64)
	if !ok {
		return 0
	}
	return atomic.AddUint64(cptr, n)
}

func Counter(ctx context.Context) uint64 {
	cptr, ok := ctx.Value(counterKey).(*uint64)
	if !ok {
		return 0
	}
	return atomic.LoadUint64(cptr)
}
