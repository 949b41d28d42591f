package policy

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/require"
)

func insertAll(p Policy[string], keys ...string) {
	for _, k := range keys {
		p.OnInsert(k)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"fifo", FIFO},
		{"LIFO", LIFO},
		{" lru ", LRU},
		{"Mru", MRU},
		{"lfu", LFU},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, got.String(), kindNames[got])
		})
	}

	_, err := ParseKind("random")
	require.Error(t, err)
	require.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestKindText(t *testing.T) {
	require := require.New(t)

	for _, k := range Kinds() {
		text, err := k.MarshalText()
		require.NoError(err)

		var got Kind
		require.NoError(got.UnmarshalText(text))
		require.Equal(k, got)
	}

	_, err := Kind(42).MarshalText()
	require.Error(err)
	require.Equal("unknown", Kind(42).String())
	require.False(Kind(-1).Valid())
}

func TestNew(t *testing.T) {
	require := require.New(t)

	for _, k := range Kinds() {
		p, err := New[string](k)
		require.NoError(err)
		require.Zero(p.Len())

		_, ok := p.Victim()
		require.False(ok)
	}

	_, err := New[string](Kind(99))
	require.Error(err)
	require.Equal(errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestVictimOrder(t *testing.T) {
	tests := []struct {
		kind Kind
		// ops run after inserting A, B, C, D.
		ops        func(p Policy[string])
		wantVictim string
		wantKeys   []string
	}{
		{
			kind:       FIFO,
			ops:        func(p Policy[string]) { p.OnAccess("A"); p.OnUpdate("A") },
			wantVictim: "A",
			wantKeys:   []string{"A", "B", "C", "D"},
		},
		{
			kind:       LIFO,
			ops:        func(p Policy[string]) { p.OnAccess("D") },
			wantVictim: "D",
			wantKeys:   []string{"D", "C", "B", "A"},
		},
		{
			kind:       LIFO,
			ops:        func(p Policy[string]) { p.OnUpdate("B") },
			wantVictim: "B",
			wantKeys:   []string{"B", "D", "C", "A"},
		},
		{
			kind:       LRU,
			ops:        func(p Policy[string]) { p.OnAccess("A") },
			wantVictim: "B",
			wantKeys:   []string{"B", "C", "D", "A"},
		},
		{
			kind:       LRU,
			ops:        func(p Policy[string]) { p.OnUpdate("A"); p.OnAccess("B") },
			wantVictim: "C",
			wantKeys:   []string{"C", "D", "A", "B"},
		},
		{
			kind:       MRU,
			ops:        func(p Policy[string]) { p.OnAccess("A") },
			wantVictim: "A",
			wantKeys:   []string{"A", "D", "C", "B"},
		},
		{
			kind:       MRU,
			ops:        func(p Policy[string]) {},
			wantVictim: "D",
			wantKeys:   []string{"D", "C", "B", "A"},
		},
		{
			kind: LFU,
			ops: func(p Policy[string]) {
				p.OnAccess("A")
				p.OnAccess("A")
				p.OnAccess("B")
			},
			wantVictim: "C",
			wantKeys:   []string{"C", "D", "B", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require := require.New(t)

			p, err := New[string](tt.kind)
			require.NoError(err)
			insertAll(p, "A", "B", "C", "D")
			tt.ops(p)

			victim, ok := p.Victim()
			require.True(ok)
			require.Equal(tt.wantVictim, victim)
			require.Equal(tt.wantKeys, p.Keys())
			require.Equal(4, p.Len())
		})
	}
}

func TestRemoveAndClear(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			require := require.New(t)

			p, err := New[string](k)
			require.NoError(err)
			insertAll(p, "A", "B", "C")

			p.Remove("B")
			p.Remove("missing")
			require.False(p.Contains("B"))
			require.True(p.Contains("A"))
			require.True(p.Contains("C"))
			require.Equal(2, p.Len())
			require.NotContains(p.Keys(), "B")

			// Tracking calls for unknown keys are ignored.
			p.OnAccess("B")
			p.OnUpdate("B")
			require.Equal(2, p.Len())

			p.Clear()
			require.Zero(p.Len())
			require.Empty(p.Keys())
			_, ok := p.Victim()
			require.False(ok)
		})
	}
}

func TestLFUTieBreakUsesInsertionOrder(t *testing.T) {
	require := require.New(t)

	p := NewLFU[string]()
	insertAll(p, "A", "B", "C")

	// B reaches frequency 2 before A does; A was still inserted first.
	p.OnAccess("B")
	p.OnAccess("A")
	p.OnAccess("C")

	victim, ok := p.Victim()
	require.True(ok)
	require.Equal("A", victim)
	require.Equal([]string{"A", "B", "C"}, p.Keys())
}

func TestLFUUpdateCountsAsUse(t *testing.T) {
	require := require.New(t)

	p := NewLFU[string]()
	insertAll(p, "A", "B")
	p.OnUpdate("A")

	freq, ok := p.Frequency("A")
	require.True(ok)
	require.Equal(uint64(2), freq)

	victim, _ := p.Victim()
	require.Equal("B", victim)
}

func TestLFUMinFrequencyAfterRemove(t *testing.T) {
	require := require.New(t)

	p := NewLFU[string]()
	insertAll(p, "A", "B")
	p.OnAccess("A")
	p.OnAccess("A")
	p.OnAccess("B")

	// Frequencies: A=3, B=2. Removing B leaves only A.
	p.Remove("B")
	victim, ok := p.Victim()
	require.True(ok)
	require.Equal("A", victim)

	p.Remove("A")
	_, ok = p.Victim()
	require.False(ok)
}

func TestLFUReinsertStartsFresh(t *testing.T) {
	require := require.New(t)

	p := NewLFU[string]()
	insertAll(p, "A", "B")
	p.OnAccess("A")
	p.OnAccess("A")

	p.Remove("A")
	_, ok := p.Frequency("A")
	require.False(ok)

	p.OnInsert("A")
	freq, ok := p.Frequency("A")
	require.True(ok)
	require.Equal(uint64(1), freq)

	// A is now the most recent insertion at frequency 1.
	victim, _ := p.Victim()
	require.Equal("B", victim)
	require.Equal([]string{"B", "A"}, p.Keys())

	// Inserting a tracked key again is ignored.
	p.OnInsert("B")
	freq, _ = p.Frequency("B")
	require.Equal(uint64(1), freq)
	require.Equal(2, p.Len())
}
