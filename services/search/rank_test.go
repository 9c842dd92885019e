package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type doc struct {
	id     string
	fields []string
}

func (d doc) SearchFields() []string { return d.fields }

func ids(docs []doc) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.id
	}
	return out
}

func TestRank_StablePartition(t *testing.T) {
	in := []doc{
		{"a", []string{"House Cleaning"}},
		{"b", []string{"Emergency Plumbing"}},
		{"c", []string{"Garden care", "plumbing tools"}},
		{"d", []string{"Painting"}},
		{"e", []string{"PLUMBER on call"}},
	}

	out := Rank(in, "plumb fast")

	assert.Equal(t, []string{"b", "c", "e", "a", "d"}, ids(out))
}

func TestRank_BlankQueryReturnsInput(t *testing.T) {
	in := []doc{{"x", []string{"one"}}, {"y", []string{"two"}}}

	assert.Equal(t, in, Rank(in, ""))
	assert.Equal(t, in, Rank(in, "   "))
}

func TestRank_OnlyFirstTokenCounts(t *testing.T) {
	in := []doc{
		{"a", []string{"cleaning"}},
		{"b", []string{"plumbing"}},
	}

	out := Rank(in, "plumbing cleaning")

	assert.Equal(t, []string{"b", "a"}, ids(out))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []doc{{"a", []string{"x"}}, {"b", []string{"match"}}}

	_ = Rank(in, "match")

	assert.Equal(t, []string{"a", "b"}, ids(in))
}

func TestFirstWord(t *testing.T) {
	assert.Equal(t, "deep", FirstWord("  Deep  clean "))
	assert.Equal(t, "", FirstWord(""))
}
