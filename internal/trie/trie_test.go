package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Trie_lookup(t *testing.T) {
	testCases := []struct {
		name   string
		insert map[string]int
		key    string
		expect int
	}{
		{
			name:   "empty trie returns default",
			insert: map[string]int{},
			key:    "anything",
			expect: -1,
		},
		{
			name:   "exact match",
			insert: map[string]int{"while": 7},
			key:    "while",
			expect: 7,
		},
		{
			name:   "prefix of inserted word returns default",
			insert: map[string]int{"while": 7},
			key:    "whi",
			expect: -1,
		},
		{
			name:   "extension of inserted word returns default",
			insert: map[string]int{"end": 3},
			key:    "endless",
			expect: -1,
		},
		{
			name:   "word sharing prefix with inserted word",
			insert: map[string]int{"end": 3, "endif": 4, "endwhile": 5},
			key:    "endif",
			expect: 4,
		},
		{
			name:   "shorter word stored along longer one",
			insert: map[string]int{"end": 3, "endif": 4, "endwhile": 5},
			key:    "end",
			expect: 3,
		},
		{
			name:   "empty key returns default",
			insert: map[string]int{"end": 3},
			key:    "",
			expect: -1,
		},
		{
			name:   "key with byte outside alphabet returns default",
			insert: map[string]int{"end": 3},
			key:    "en_d",
			expect: -1,
		},
		{
			name:   "uppercase is outside the alphabet",
			insert: map[string]int{"end": 3},
			key:    "End",
			expect: -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			tr := New(-1)
			for w, v := range tc.insert {
				assert.True(tr.Insert(w, v))
			}

			assert.Equal(tc.expect, tr.Lookup(tc.key))
		})
	}
}

func Test_Trie_insertRejectsBadKeys(t *testing.T) {
	assert := assert.New(t)

	tr := New(0)
	assert.False(tr.Insert("no_good", 1))
	assert.False(tr.Insert("UP", 2))
	assert.Equal(0, tr.Lookup("no_good"))
}

func Test_Trie_overwrite(t *testing.T) {
	assert := assert.New(t)

	tr := New(0)
	assert.True(tr.Insert("key", 1))
	assert.True(tr.Insert("key", 2))
	assert.Equal(2, tr.Lookup("key"))
}
