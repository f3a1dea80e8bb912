package debugger

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMemory_ClampsSize(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		wantParam string
	}{
		{"over the cap", 4096, "1024"},
		{"exactly the cap", 1024, "1024"},
		{"under the cap", 64, "64"},
		{"zero falls back to default", 0, "16"},
		{"negative falls back to default", -5, "16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSize string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSize = r.URL.Query().Get("size")
				w.Write([]byte(`{"address":"0x401000","data":"90"}`))
			}))
			defer srv.Close()
			b := NewBridge(newTestClient(t, srv.URL, 2*time.Second))

			b.ReadMemory(context.Background(), "0x401000", tt.requested)
			assert.Equal(t, tt.wantParam, gotSize)
		})
	}
}

func TestReadMemory_ASCIIOverlay(t *testing.T) {
	// "Hello" + NUL + 0xFF
	b := newTestBridge(t, map[string]string{
		"/memory/read": `{"address":"0x401000","size":7,"data":"48656c6c6f00ff"}`,
	}, nil)

	res := b.ReadMemory(context.Background(), "0x401000", 7)
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "48656c6c6f00ff", obj["data"])
	assert.Equal(t, "Hello..", obj["ascii"])

	hexData := obj["data"].(string)
	ascii := obj["ascii"].(string)
	assert.Equal(t, len(hexData)/2, len(ascii))
}

func TestReadMemory_NoOverlayWithoutData(t *testing.T) {
	b := newTestBridge(t, map[string]string{
		"/memory/read": `{"success":false,"message":"address not readable"}`,
	}, nil)

	res := b.ReadMemory(context.Background(), "0x0", 16)
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, obj, "ascii")
}

func TestReadMemory_FailureEchoesAddress(t *testing.T) {
	res := deadBridge(t).ReadMemory(context.Background(), "0x401000", 16)
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0x401000", obj["address"])
	assert.Contains(t, obj, "error")
	assert.NotContains(t, obj, "ascii")
}

func TestASCIIOverlay(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want string
	}{
		{"printable", "414243", "ABC"},
		{"space is printable", "20", " "},
		{"tilde is printable", "7e", "~"},
		{"below range", "1f", "."},
		{"above range", "7f", "."},
		{"mixed", "004869ff", ".Hi."},
		{"empty", "", ""},
		{"odd trailing nibble dropped", "414", "A"},
		{"unparsable pair", "4z41", ".A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, asciiOverlay(tt.hex))
		})
	}
}

func TestASCIIOverlay_FullByteRange(t *testing.T) {
	var hexData strings.Builder
	for b := 0; b < 256; b++ {
		fmt.Fprintf(&hexData, "%02x", b)
	}
	out := asciiOverlay(hexData.String())
	require.Len(t, out, 256)
	for i := 0; i < 256; i++ {
		if i >= 32 && i <= 126 {
			assert.Equal(t, byte(i), out[i])
		} else {
			assert.Equal(t, byte('.'), out[i])
		}
	}
}

func TestWriteMemory_PassThrough(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"bytes_written":4}`))
	}))
	defer srv.Close()
	b := NewBridge(newTestClient(t, srv.URL, 2*time.Second))

	res := b.WriteMemory(context.Background(), "0x401000", "90909090")
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, obj["success"])
	assert.Equal(t, float64(4), obj["bytes_written"])
	assert.Contains(t, gotQuery, "data=90909090")
}

func TestWriteMemory_FailureShape(t *testing.T) {
	res := deadBridge(t).WriteMemory(context.Background(), "0x401000", "90")
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, obj["success"])
	assert.Contains(t, obj, "error")
}

func TestFindPattern_ForwardsPatternVerbatim(t *testing.T) {
	var gotPattern string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPattern = r.URL.Query().Get("pattern")
		w.Write([]byte(`{"found":true,"address":"0x401234"}`))
	}))
	defer srv.Close()
	b := NewBridge(newTestClient(t, srv.URL, 2*time.Second))

	const pattern = "48 8B 05 ?? ?? ?? ??"
	res := b.FindPattern(context.Background(), "0x401000", 0x1000, pattern)
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, obj["found"])
	assert.Equal(t, pattern, gotPattern)
}

func TestFindPattern_FailureNormalizesToNotFound(t *testing.T) {
	res := deadBridge(t).FindPattern(context.Background(), "0x401000", 0x1000, "90 90")
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, obj["found"])
	assert.Contains(t, obj, "error")
}

func TestMemorySearch_ZeroMatches(t *testing.T) {
	b := newTestBridge(t, map[string]string{
		"/memory/search": `{"count":0,"results":[]}`,
	}, nil)

	res := b.MemorySearch(context.Background(), "0x401000", 0x1000, "cc", 0)
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), obj["count"])
	assert.Empty(t, obj["results"])
	assert.NotContains(t, obj, "error")
}

func TestMemorySearch_FailureShape(t *testing.T) {
	res := deadBridge(t).MemorySearch(context.Background(), "0x401000", 0x1000, "cc", 0)
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0, obj["count"])
	results, ok := obj["results"].([]any)
	require.True(t, ok)
	assert.Empty(t, results)
	assert.Contains(t, obj, "error")
}

func TestMemorySearch_MaxResultsForwarded(t *testing.T) {
	tests := []struct {
		name      string
		max       int
		wantParam string
	}{
		{"default when unset", 0, "100"},
		{"explicit cap", 25, "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMax string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMax = r.URL.Query().Get("max")
				w.Write([]byte(`{"count":0,"results":[]}`))
			}))
			defer srv.Close()
			b := NewBridge(newTestClient(t, srv.URL, 2*time.Second))

			b.MemorySearch(context.Background(), "0x401000", 0x1000, "cc", tt.max)
			assert.Equal(t, tt.wantParam, gotMax)
		})
	}
}

func TestSearchAndReplace_Delegates(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()
	b := NewBridge(newTestClient(t, srv.URL, 2*time.Second))

	res := b.SearchAndReplace(context.Background(), "0x401000", 0x1000, "74 05", "eb 05")
	obj, ok := res.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, obj["success"])
	assert.Contains(t, gotQuery, "search=")
	assert.Contains(t, gotQuery, "replace=")
}
