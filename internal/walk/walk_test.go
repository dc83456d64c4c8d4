package walk

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhr3/textscan/linescan"
)

var stations = []string{"Hamburg", "Bulawayo", "Palembang", "St. John's", "Cracow", "Bridgetown", "Istanbul", "Roseau"}

func measurements(rng *rand.Rand, lines int) []byte {
	var b bytes.Buffer
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&b, "%s;%.1f", stations[rng.Intn(len(stations))], rng.Float64()*80-30)
		if rng.Intn(5) == 0 {
			b.WriteString(";note")
		}
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func TestWalk(t *testing.T) {
	buf := []byte("Hamburg;12.0\nBulawayo;8.9;dry\n\nRoseau;34.4")
	st, err := Walk(context.Background(), buf, Config{Delim: ';', Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, Stats{Lines: 4, Delims: 4, MaxFields: 3, Bytes: len(buf)}, st)
	assert.Equal(t, "lines=4 matched=0 delims=4 maxfields=3 bytes=42", st.String())
}

func TestWalkImplementationsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	buf := measurements(rng, 5000)
	ctx := context.Background()

	want, err := Walk(ctx, buf, Config{Delim: ';', Workers: 1, Impl: Naive})
	require.NoError(t, err)
	assert.Equal(t, 5000, want.Lines)
	assert.Equal(t, len(buf), want.Bytes)

	for _, impl := range []Impl{SWAR, Naive} {
		for _, workers := range []int{1, 2, 3, 8, 64} {
			for _, window := range []int{0, 5, 64} {
				cfg := Config{Delim: ';', Workers: workers, Window: window, Impl: impl}
				got, err := Walk(ctx, buf, cfg)
				require.NoError(t, err)
				assert.Equal(t, want, got, "%+v", cfg)
			}
		}
	}
}

func TestWalkReverse(t *testing.T) {
	buf := []byte("a;b\nc\n;d")
	ctx := context.Background()

	for _, impl := range []Impl{SWAR, Naive} {
		st, err := Walk(ctx, buf, Config{Delim: ';', Reverse: true, Workers: 4, Impl: impl})
		require.NoError(t, err)
		// segments: "\n;d", "\nc", "a;b"
		assert.Equal(t, Stats{Lines: 3, Delims: 2, MaxFields: 2, Bytes: len(buf)}, st, impl)
	}

	rng := rand.New(rand.NewSource(2))
	buf = measurements(rng, 2000)
	fwd, err := Walk(ctx, buf, Config{Delim: ';'})
	require.NoError(t, err)
	rev, err := Walk(ctx, buf, Config{Delim: ';', Reverse: true})
	require.NoError(t, err)
	assert.Equal(t, fwd.Delims, rev.Delims)
	assert.Equal(t, fwd.Bytes, rev.Bytes)
	// a trailing newline opens one extra segment
	assert.Equal(t, fwd.Lines+1, rev.Lines)
}

func TestWalkKeywords(t *testing.T) {
	buf := []byte("Hamburg;12.0\nBulawayo;8.9\nHamburg;3.1\nRoseau;30.2\n")
	for _, impl := range []Impl{SWAR, Naive} {
		st, err := Walk(context.Background(), buf, Config{
			Delim:    ';',
			Workers:  2,
			Keywords: []string{"Hamburg", "Roseau"},
			Impl:     impl,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, st.Lines)
		assert.Equal(t, 3, st.Matched)
	}
}

func TestWalkEmpty(t *testing.T) {
	st, err := Walk(context.Background(), nil, Config{Delim: ';'})
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}

func TestWalkErrors(t *testing.T) {
	ctx := context.Background()
	_, err := Walk(ctx, []byte("x"), Config{Delim: ';', Impl: "simd"})
	assert.ErrorContains(t, err, "unknown implementation")

	_, err = Walk(ctx, []byte("x"), Config{Delim: '\n'})
	assert.ErrorContains(t, err, "newline")
}

func TestWalkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	buf := []byte(strings.Repeat("a;b\n", 4*checkEvery))

	for _, impl := range []Impl{SWAR, Naive} {
		_, err := Walk(ctx, buf, Config{Delim: ';', Workers: 1, Impl: impl})
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestStatsMerge(t *testing.T) {
	s := Stats{Lines: 2, Matched: 1, Delims: 3, MaxFields: 4, Bytes: 10}
	s.Merge(Stats{Lines: 1, Delims: 7, MaxFields: 8, Bytes: 5})
	assert.Equal(t, Stats{Lines: 3, Matched: 1, Delims: 10, MaxFields: 8, Bytes: 15}, s)
}

func TestSplit(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	buf := measurements(rng, 3000)
	buf = append(buf, "unterminated;tail"...)

	for _, parts := range []int{1, 2, 7, 100, 10000} {
		chunks, err := split(buf, parts, ';')
		require.NoError(t, err)
		assert.LessOrEqual(t, len(chunks), parts)
		assert.Equal(t, buf, bytes.Join(chunks, nil), "parts %d", parts)
		for i, c := range chunks {
			require.NotEmpty(t, c)
			if i < len(chunks)-1 {
				require.Equal(t, byte('\n'), c[len(c)-1], "chunk %d of %d", i, parts)
			}
		}
	}
}

// A line longer than every chunk keeps the buffer whole; the backward
// search crosses several scanner windows.
func TestSplitLongLine(t *testing.T) {
	buf := []byte(strings.Repeat("x;", 3*linescan.DefaultWindow) + "\nshort\n")
	chunks, err := split(buf, 4, ';')
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, buf, chunks[0])

	chunks, err = split(buf, 2, ';')
	require.NoError(t, err)
	require.Len(t, chunks, 1)
}

func TestLineStart(t *testing.T) {
	buf := []byte("ab\ncd;ef\ngh")
	r := linescan.NewResult(5)
	m := linescan.NewMask(';')

	tests := []struct{ at, lo, want int }{
		{11, 0, 9},
		{9, 0, 9},
		{8, 0, 3},
		{3, 0, 3},
		{2, 0, 0},
		{8, 4, 4},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got, err := lineStart(buf, tt.at, tt.lo, m, r)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "lineStart(at=%d, lo=%d)", tt.at, tt.lo)
	}
}
