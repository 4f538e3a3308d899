// custom slog handler
//
// Adapted from: https://github.com/jba/slog
// BSD 3-Clause License
// Copyright (c) 2022, Jonathan Amsterdam
package wslog

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// Writes records as a single line of key=value pairs:
//
//	l=info msg=decoded fn=transfer sel=0xa9059cbb n=2
//
// Byte slices and the fixed size arrays used for
// selectors, addresses and words are written as 0x hex.
type Handler struct {
	ctxs      []func(context.Context) (string, any)
	opts      slog.HandlerOptions
	prefix    string
	preformat string
	mu        *sync.Mutex
	w         io.Writer
}

func New(w io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.ReplaceAttr == nil {
		h.opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr { return a }
	}
	return h
}

// Registers a context value with the handler.
// f returns the key for the log line and the value
// found in the context. An empty key skips the value.
// For example, a func returning ("fn", wctx.Func(ctx))
// becomes: fn=transfer
func (h *Handler) RegisterContext(f func(context.Context) (string, any)) {
	h.mu.Lock()
	h.ctxs = append(h.ctxs, f)
	h.mu.Unlock()
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *Handler) clone() *Handler {
	h.mu.Lock()
	ctxs := append([]func(context.Context) (string, any){}, h.ctxs...)
	h.mu.Unlock()
	return &Handler{
		ctxs:      ctxs,
		opts:      h.opts,
		prefix:    h.prefix,
		preformat: h.preformat,
		mu:        h.mu,
		w:         h.w,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.prefix += name + "."
	return c
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf []byte
	for _, a := range attrs {
		buf = h.appendAttr(buf, h.prefix, a)
	}
	c := h.clone()
	c.preformat += string(buf)
	return c
}

var bpool = sync.Pool{New: func() any { b := make([]byte, 0, 1024); return &b }}

func freebuf(b *[]byte) {
	if cap(*b) <= 16<<10 {
		*b = (*b)[:0]
		bpool.Put(b)
	}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var (
		bufp = bpool.Get().(*[]byte)
		buf  = *bufp
	)
	defer func() {
		*bufp = buf
		freebuf(bufp)
	}()
	buf = append(buf, "l="...)
	buf = append(buf, strings.ToLower(r.Level.String())...)
	buf = append(buf, ' ')
	if len(r.Message) > 0 {
		buf = append(buf, "msg="...)
		buf = appendString(buf, r.Message)
		buf = append(buf, ' ')
	}
	for _, f := range h.ctxs {
		k, v := f(ctx)
		if k == "" {
			continue
		}
		buf = append(buf, k...)
		buf = append(buf, '=')
		buf = appendValue(buf, slog.AnyValue(v))
		buf = append(buf, ' ')
	}
	buf = append(buf, h.preformat...)
	if h.opts.AddSource && r.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := fs.Next()
		buf = append(buf, "src="...)
		buf = append(buf, f.File...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(f.Line), 10)
		buf = append(buf, ' ')
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, h.prefix, a)
		return true
	})
	buf = bytes.TrimSuffix(buf, []byte(" "))
	buf = append(buf, '\n')
	h.mu.Lock()
	_, err := h.w.Write(buf)
	h.mu.Unlock()
	return err
}

func (h *Handler) appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(nil, a)
	}
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() != slog.KindGroup {
		buf = append(buf, prefix...)
		buf = append(buf, a.Key...)
		buf = append(buf, '=')
		buf = appendValue(buf, a.Value)
		return append(buf, ' ')
	}
	// Group
	if a.Key != "" {
		prefix += a.Key + "."
	}
	for _, a := range a.Value.Group() {
		buf = h.appendAttr(buf, prefix, a)
	}
	return buf
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendString(buf, v.String())
	case slog.KindAny:
		switch b := v.Any().(type) {
		case []byte:
			return appendHex(buf, b)
		case [4]byte:
			return appendHex(buf, b[:])
		case [20]byte:
			return appendHex(buf, b[:])
		case [32]byte:
			return appendHex(buf, b[:])
		case error:
			return appendString(buf, b.Error())
		}
		return appendString(buf, fmt.Sprintf("%v", v.Any()))
	default:
		return fmt.Appendf(buf, "%v", v.Any())
	}
}

func appendHex(buf []byte, b []byte) []byte {
	buf = append(buf, '0', 'x')
	return append(buf, hex.EncodeToString(b)...)
}

// quotes s when it would otherwise break up the line
func appendString(buf []byte, s string) []byte {
	if s == "" || strings.ContainsAny(s, " =\"\n\t") {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}
