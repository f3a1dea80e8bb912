package debugger

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

const (
	// maxReadSize caps a single memory read. Protects both the
	// transport and the ASCII rendering below.
	maxReadSize = 1024

	// defaultReadSize is used when the caller gives no size.
	defaultReadSize = 16

	// defaultMaxResults caps a memory search when the caller gives
	// no limit.
	defaultMaxResults = 100
)

// ReadMemory reads size bytes at addr. size is clamped to maxReadSize
// silently. When the reply carries hex data, a parallel printable
// rendering is attached under "ascii"; error replies are returned
// without it.
func (b *Bridge) ReadMemory(ctx context.Context, addr string, size int) any {
	if size <= 0 {
		size = defaultReadSize
	}
	if size > maxReadSize {
		size = maxReadSize
	}

	reply, err := b.client.Call(ctx, "/memory/read", url.Values{
		"addr": {addr},
		"size": {strconv.Itoa(size)},
	})
	if err != nil {
		return map[string]any{"error": err.Error(), "address": addr}
	}

	if reply.Kind == ReplyObject {
		if data, ok := reply.Object["data"].(string); ok {
			reply.Object["ascii"] = asciiOverlay(data)
		}
	}
	return reply.Value()
}

// asciiOverlay renders a hex byte string as printable text, one
// character per byte. Bytes outside [32,126] and unparsable pairs
// become '.'.
func asciiOverlay(hexData string) string {
	var sb strings.Builder
	for i := 0; i+2 <= len(hexData); i += 2 {
		v, err := strconv.ParseUint(hexData[i:i+2], 16, 8)
		if err != nil || v < 32 || v > 126 {
			sb.WriteByte('.')
			continue
		}
		sb.WriteByte(byte(v))
	}
	return sb.String()
}

// WriteMemory writes a hex byte string at addr. Byte-count reporting
// is the backend's responsibility.
func (b *Bridge) WriteMemory(ctx context.Context, addr, data string) any {
	return b.call(ctx, "/memory/write", url.Values{
		"addr": {addr},
		"data": {data},
	}, map[string]any{"success": false})
}

// FindPattern searches a memory region for the first occurrence of a
// byte pattern. Wildcard syntax (e.g. "48 8B 05 ?? ?? ?? ??") is
// owned by the backend and forwarded verbatim. Failure normalizes to
// found:false rather than an exceptional path.
func (b *Bridge) FindPattern(ctx context.Context, start string, size int, pattern string) any {
	return b.call(ctx, "/pattern/find_mem", url.Values{
		"start":   {start},
		"size":    {strconv.Itoa(size)},
		"pattern": {pattern},
	}, map[string]any{"found": false})
}

// SearchAndReplace finds a pattern in a region and overwrites it with
// another. Pure delegation.
func (b *Bridge) SearchAndReplace(ctx context.Context, start string, size int, search, replace string) any {
	return b.call(ctx, "/pattern/search_replace_mem", url.Values{
		"start":   {start},
		"size":    {strconv.Itoa(size)},
		"search":  {search},
		"replace": {replace},
	}, map[string]any{"success": false})
}

// MemorySearch finds all occurrences of a pattern in a region, capped
// at maxResults (backend-side truncation; the cap is forwarded, never
// applied here). Callers can always read "count" and "results".
func (b *Bridge) MemorySearch(ctx context.Context, start string, size int, pattern string, maxResults int) any {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return b.call(ctx, "/memory/search", url.Values{
		"start":   {start},
		"size":    {strconv.Itoa(size)},
		"pattern": {pattern},
		"max":     {strconv.Itoa(maxResults)},
	}, map[string]any{"count": 0, "results": []any{}})
}
