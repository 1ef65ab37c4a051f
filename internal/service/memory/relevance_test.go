package memory

import (
	"strings"
	"testing"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/stretchr/testify/assert"
)

func memories(texts ...string) []core.Memory {
	out := make([]core.Memory, len(texts))
	for i, text := range texts {
		out[i] = core.Memory{ID: int64(i + 1), Text: text}
	}
	return out
}

func texts(ms []core.Memory) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"tell", "me", "about", "hiking"}, Tokenize("Tell me ABOUT hiking"))
	assert.Equal(t, []string{"a", "", "b"}, Tokenize("a  b"))
	assert.Equal(t, []string{""}, Tokenize(""))
	// only the space character separates tokens
	assert.Equal(t, []string{"tab\tseparated"}, Tokenize("tab\tseparated"))
}

func TestTokensOverlap(t *testing.T) {
	tests := []struct {
		name   string
		query  []string
		memory []string
		want   bool
	}{
		{name: "exact token", query: []string{"hiking"}, memory: []string{"i", "love", "hiking"}, want: true},
		{name: "query token inside memory token", query: []string{"hik"}, memory: []string{"hiking"}, want: true},
		{name: "memory token inside query token", query: []string{"colorados"}, memory: []string{"colorado"}, want: true},
		{name: "no relation", query: []string{"pizza"}, memory: []string{"hiking", "colorado"}, want: false},
		{name: "single character matches broadly", query: []string{"o"}, memory: []string{"colorado"}, want: true},
		{name: "empty query token matches anything", query: []string{"pizza", ""}, memory: []string{"hiking"}, want: true},
		{name: "empty memory token matches anything", query: []string{"pizza"}, memory: []string{"hiking", ""}, want: true},
		{name: "no tokens at all", query: nil, memory: []string{"hiking"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokensOverlap(tt.query, tt.memory))
		})
	}
}

func TestFindRelevant(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		memories []core.Memory
		want     []string
	}{
		{
			name:     "empty store",
			query:    "anything",
			memories: nil,
			want:     nil,
		},
		{
			name:     "shared word",
			query:    "Tell me about hiking",
			memories: memories("I love hiking in Colorado"),
			want:     []string{"I love hiking in Colorado"},
		},
		{
			name:     "no shared substrings",
			query:    "pizza",
			memories: memories("went skiing", "blue car"),
			want:     nil,
		},
		{
			name:     "case insensitive",
			query:    "COLORADO",
			memories: memories("trip to colorado"),
			want:     []string{"trip to colorado"},
		},
		{
			name:     "capped at three in storage order",
			query:    "cat",
			memories: memories("cat one", "dog", "cat two", "cat three", "cat four"),
			want:     []string{"cat one", "cat two", "cat three"},
		},
		{
			name:     "double space in query matches everything",
			query:    "zzz  qqq",
			memories: memories("alpha", "beta"),
			want:     []string{"alpha", "beta"},
		},
		{
			name:     "double space in memory matches any query",
			query:    "zzz",
			memories: memories("alpha", "beta  gamma"),
			want:     []string{"beta  gamma"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindRelevant(tt.query, tt.memories)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, texts(got))
		})
	}
}

func TestFindRelevant_NeverMoreThanThreeAndOrdered(t *testing.T) {
	var store []core.Memory
	for i := 0; i < 20; i++ {
		store = append(store, core.Memory{ID: int64(i), Text: strings.Repeat("x", i+1)})
	}

	got := FindRelevant("x", store)
	assert.Len(t, got, MaxRelevant)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].ID, got[i].ID)
	}
}

func TestFindRelevant_Idempotent(t *testing.T) {
	store := memories("I love hiking", "my dog is named Rex", "hiking boots are brown")
	first := FindRelevant("hiking with rex", store)
	second := FindRelevant("hiking with rex", store)
	assert.Equal(t, first, second)
	assert.Equal(t, memories("I love hiking", "my dog is named Rex", "hiking boots are brown"), store)
}
