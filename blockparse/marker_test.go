package blockparse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineProc(t *testing.T, line string) *Processor {
	t.Helper()
	p := newProcessor(nil, []byte(line))
	require.True(t, p.nextLine(), "must load a line")
	return p
}

func Test_Marker_parse(t *testing.T) {
	for _, tc := range []struct {
		name   string
		marker Marker
		in     string
		ok     bool
		info   ListInfo
		col    int // expected cursor column after a match
	}{
		{
			name: "dash bullet", marker: Bullets(), in: "- milk", ok: true,
			info: ListInfo{Bullet: '-'},
		},
		{
			name: "plus bullet", marker: Bullets(), in: "+ milk", ok: true,
			info: ListInfo{Bullet: '+'},
		},
		{
			name: "star bullet", marker: Bullets(), in: "* milk", ok: true,
			info: ListInfo{Bullet: '*'},
		},
		{
			name: "bare bullet", marker: Bullets(), in: "-", ok: true,
			info: ListInfo{Bullet: '-'},
		},
		{name: "not a bullet", marker: Bullets(), in: "x milk"},
		{name: "digit is not a bullet", marker: Bullets(), in: "1. x"},
		{
			name: "custom bullet alphabet", marker: Bullets(':'), in: ": x", ok: true,
			info: ListInfo{Bullet: ':'},
		},
		{name: "custom alphabet excludes defaults", marker: Bullets(':'), in: "- x"},

		{
			name: "dotted ordinal", marker: Ordinals(), in: "1. x", ok: true,
			info: ListInfo{Ordered: true, Bullet: '1', Delim: '.', Start: "1", DefaultStart: "1"},
			col:  1,
		},
		{
			name: "parenthesized ordinal", marker: Ordinals(), in: "3) x", ok: true,
			info: ListInfo{Ordered: true, Bullet: '1', Delim: ')', Start: "3", DefaultStart: "1"},
			col:  1,
		},
		{
			name: "multi digit ordinal", marker: Ordinals(), in: "42) x", ok: true,
			info: ListInfo{Ordered: true, Bullet: '1', Delim: ')', Start: "42", DefaultStart: "1"},
			col:  2,
		},
		{
			name: "lone zero", marker: Ordinals(), in: "0. x", ok: true,
			info: ListInfo{Ordered: true, Bullet: '1', Delim: '.', Start: "0", DefaultStart: "1"},
			col:  1,
		},
		{
			name: "leading zeros trimmed", marker: Ordinals(), in: "007. x", ok: true,
			info: ListInfo{Ordered: true, Bullet: '1', Delim: '.', Start: "7", DefaultStart: "1"},
			col:  3,
		},
		{
			name: "all zeros keep one", marker: Ordinals(), in: "0000. x", ok: true,
			info: ListInfo{Ordered: true, Bullet: '1', Delim: '.', Start: "0", DefaultStart: "1"},
			col:  4,
		},
		{
			name: "zeros inside survive", marker: Ordinals(), in: "010) x", ok: true,
			info: ListInfo{Ordered: true, Bullet: '1', Delim: ')', Start: "10", DefaultStart: "1"},
			col:  3,
		},
		{name: "no delimiter", marker: Ordinals(), in: "12x"},
		{name: "line ends before delimiter", marker: Ordinals(), in: "12"},
		{name: "no digits", marker: Ordinals(), in: ". x"},
		{name: "bullet is not an ordinal", marker: Ordinals(), in: "- x"},
		{
			name: "custom delimiter", marker: Ordinals(':'), in: "3: x", ok: true,
			info: ListInfo{Ordered: true, Bullet: '1', Delim: ':', Start: "3", DefaultStart: "1"},
			col:  1,
		},
		{name: "custom delimiter excludes defaults", marker: Ordinals(':'), in: "3. x"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := lineProc(t, tc.in)
			info, ok := tc.marker.parse(p)
			if !tc.ok {
				assert.False(t, ok, "expected no marker in %q", tc.in)
				return
			}
			require.True(t, ok, "expected a marker in %q", tc.in)
			assert.Equal(t, tc.info, info, "expected marker shape")
			assert.Equal(t, tc.col, p.Column(), "expected cursor column")
		})
	}
}

func Test_Marker_digitRuns(t *testing.T) {
	const digits = "1234567890"
	for n := 1; n <= len(digits); n++ {
		in := digits[:n] + ". x"
		t.Run(fmt.Sprintf("%v digits", n), func(t *testing.T) {
			p := lineProc(t, in)
			info, ok := Ordinals().parse(p)
			if n > 9 {
				assert.False(t, ok, "ten digits make no marker")
				return
			}
			require.True(t, ok, "expected a marker in %q", in)
			assert.Equal(t, digits[:n], info.Start, "expected start literal")
			assert.Equal(t, n, p.Column(), "cursor should rest on the delimiter")
			assert.Equal(t, byte('.'), p.Current(), "cursor should rest on the delimiter")
		})
	}
}

func Test_Marker_cursor(t *testing.T) {
	t.Run("bullet does not advance", func(t *testing.T) {
		p := lineProc(t, "- x")
		_, ok := Bullets().parse(p)
		require.True(t, ok, "expected a marker")
		assert.Equal(t, 0, p.Column(), "bullet recognition should not move the cursor")
		assert.Equal(t, byte('-'), p.Current(), "cursor should still read the bullet")
	})
	t.Run("ordinal stops on delimiter", func(t *testing.T) {
		p := lineProc(t, "12. x")
		_, ok := Ordinals().parse(p)
		require.True(t, ok, "expected a marker")
		assert.Equal(t, 2, p.Column(), "cursor should rest on the delimiter")
		assert.Equal(t, byte('.'), p.Current(), "cursor should still read the delimiter")
	})
}

func Test_NewListParser(t *testing.T) {
	ruler := &RulerParser{}

	t.Run("default markers", func(t *testing.T) {
		l, err := NewListParser(ruler)
		require.NoError(t, err, "must build the default list parser")
		assert.Equal(t, "-+*0123456789", string(l.Triggers()), "expected claimed bytes")
	})

	t.Run("explicit markers", func(t *testing.T) {
		l, err := NewListParser(ruler, Bullets('-'), Ordinals('.'))
		require.NoError(t, err, "must build the list parser")
		assert.Equal(t, "-0123456789", string(l.Triggers()), "expected claimed bytes")
	})

	t.Run("bullet byte claimed twice", func(t *testing.T) {
		_, err := NewListParser(ruler, Bullets(), Bullets('*'))
		if assert.Error(t, err, "expected a configuration error") {
			assert.Contains(t, err.Error(), "claimed twice", "expected claim collision")
		}
	})

	t.Run("digit claimed by a bullet", func(t *testing.T) {
		_, err := NewListParser(ruler, Bullets('1'), Ordinals())
		if assert.Error(t, err, "expected a configuration error") {
			assert.Contains(t, err.Error(), "claimed twice", "expected claim collision")
		}
	})

	t.Run("two ordinal recognizers collide", func(t *testing.T) {
		_, err := NewListParser(ruler, Ordinals('.'), Ordinals(')'))
		assert.Error(t, err, "both claim the decimal digits")
	})
}
