package trieset

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Wildcard is the pattern rune accepted by KeysThatMatch. It matches
// exactly one letter of the alphabet at its position.
const Wildcard = '.'

// InvalidCharacterError reports a character outside the supported alphabet
// in a key or pattern, along with its rune offset in the input.
type InvalidCharacterError struct {
	Char   rune
	Offset int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("trieset: unsupported character %q at offset %d", e.Char, e.Offset)
}

// node is a node in a TrieSet. terminal marks that the path from the root
// to this node spells a stored key.
type node struct {
	children map[rune]*node
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// TrieSet is a set of strings over a restricted Latin alphabet, stored as
// a trie with one letter per edge. The zero value is not usable; create
// one with New or NewWithAlphabet.
//
// A TrieSet is not safe for concurrent use. Concurrent readers are fine
// only while no Add or Delete is in flight; callers that mutate from
// multiple goroutines must supply their own synchronization.
type TrieSet struct {
	alphabet *Alphabet
	root     *node
	n        int
	nfc      bool
}

// New creates an empty TrieSet over the Latin alphabet. NFC composition of
// input is off by default; keys match by exact code points.
func New() *TrieSet {
	return NewWithAlphabet(Latin)
}

// NewWithAlphabet creates an empty TrieSet over the given alphabet.
func NewWithAlphabet(a *Alphabet) *TrieSet {
	return &TrieSet{alphabet: a, root: newNode()}
}

// WithNFC sets the TrieSet to compose all input to Unicode NFC before
// validation and traversal, so that decomposed sequences land on their
// precomposed in-alphabet form.
func (t *TrieSet) WithNFC() *TrieSet {
	t.nfc = true
	return t
}

// WithoutNFC sets the TrieSet to take input code points as given.
func (t *TrieSet) WithoutNFC() *TrieSet {
	t.nfc = false
	return t
}

// Add inserts key into the set. Every character is validated against the
// alphabet before any mutation; on an unsupported character Add returns an
// InvalidCharacterError and the set is unchanged. The empty string is a
// legal key. Re-adding a present key is a no-op.
func (t *TrieSet) Add(key string) error {
	key = t.fold(key)
	if err := t.validate(key); err != nil {
		return err
	}
	t.insert(key)
	return nil
}

// AddAll inserts every key. All keys are validated before any is inserted,
// so a failure leaves the set unchanged.
func (t *TrieSet) AddAll(keys ...string) error {
	folded := make([]string, len(keys))
	for i, key := range keys {
		folded[i] = t.fold(key)
		if err := t.validate(folded[i]); err != nil {
			return err
		}
	}
	for _, key := range folded {
		t.insert(key)
	}
	return nil
}

// insert assumes key has been folded and validated.
func (t *TrieSet) insert(key string) {
	current := t.root
	for _, r := range key {
		child, ok := current.children[r]
		if !ok {
			child = newNode()
			current.children[r] = child
		}
		current = child
	}
	if !current.terminal {
		current.terminal = true
		t.n++
	}
}

// Contains reports whether key is in the set. Characters outside the
// alphabet never error here; no stored key can contain them, so the
// result is simply false.
func (t *TrieSet) Contains(key string) bool {
	current := t.root
	for _, r := range t.fold(key) {
		next, ok := current.children[r]
		if !ok {
			return false
		}
		current = next
	}
	return current.terminal
}

// Delete removes key from the set and reports whether it was present.
// Deleting an absent key is a no-op. Nodes left childless and
// non-terminal by the removal are pruned upward, so the node count stays
// proportional to the current key set.
func (t *TrieSet) Delete(key string) bool {
	letters := []rune(t.fold(key))
	path := make([]*node, 0, len(letters)+1)
	path = append(path, t.root)
	current := t.root
	for _, r := range letters {
		next, ok := current.children[r]
		if !ok {
			return false
		}
		current = next
		path = append(path, current)
	}
	if !current.terminal {
		return false
	}
	current.terminal = false
	t.n--
	for i := len(letters); i > 0; i-- {
		child := path[i]
		if child.terminal || len(child.children) > 0 {
			break
		}
		delete(path[i-1].children, letters[i-1])
	}
	return true
}

// Size returns the number of keys in the set.
func (t *TrieSet) Size() int {
	return t.n
}

// IsEmpty reports whether the set holds no keys.
func (t *TrieSet) IsEmpty() bool {
	return t.n == 0
}

// Walk calls fn for each key in the set in ascending code-point order,
// stopping early if fn returns false.
func (t *TrieSet) Walk(fn func(key string) bool) {
	t.root.walk(nil, fn)
}

// Keys returns every key in the set in ascending code-point order.
func (t *TrieSet) Keys() []string {
	var keys []string
	t.Walk(func(key string) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// KeysWithPrefix returns every key starting with prefix, in ascending
// code-point order. A prefix that leads nowhere, including one containing
// characters outside the alphabet, yields an empty result.
func (t *TrieSet) KeysWithPrefix(prefix string) []string {
	prefix = t.fold(prefix)
	current := t.root
	for _, r := range prefix {
		next, ok := current.children[r]
		if !ok {
			return nil
		}
		current = next
	}
	var keys []string
	current.walk([]rune(prefix), func(key string) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// LongestPrefixOf returns the longest key in the set that is a prefix of
// query, and whether any such key exists. The walk stops at the first
// character with no matching edge, so query may contain characters outside
// the alphabet.
func (t *TrieSet) LongestPrefixOf(query string) (string, bool) {
	query = t.fold(query)
	end := -1
	current := t.root
	if current.terminal {
		end = 0
	}
	for i, r := range query {
		next, ok := current.children[r]
		if !ok {
			break
		}
		current = next
		if current.terminal {
			end = i + utf8.RuneLen(r)
		}
	}
	if end < 0 {
		return "", false
	}
	return query[:end], true
}

// KeysThatMatch returns every key of the same length as pattern whose
// letters match it position by position, in ascending code-point order.
// The Wildcard rune matches any single letter; all other pattern
// characters must be alphabet letters or KeysThatMatch returns an
// InvalidCharacterError.
func (t *TrieSet) KeysThatMatch(pattern string) ([]string, error) {
	pattern = t.fold(pattern)
	offset := 0
	for _, r := range pattern {
		if r != Wildcard && !t.alphabet.Contains(r) {
			return nil, &InvalidCharacterError{Char: r, Offset: offset}
		}
		offset++
	}
	var keys []string
	t.root.match([]rune(pattern), nil, &keys)
	return keys, nil
}

// match collects keys under n matching the remaining pattern. Branching
// at a wildcard is over the node's actual edges, never the full alphabet.
func (n *node) match(pattern, prefix []rune, keys *[]string) {
	if len(pattern) == 0 {
		if n.terminal {
			*keys = append(*keys, string(prefix))
		}
		return
	}
	r := pattern[0]
	if r == Wildcard {
		for _, edge := range n.sortedEdges() {
			n.children[edge].match(pattern[1:], append(prefix, edge), keys)
		}
		return
	}
	if next, ok := n.children[r]; ok {
		next.match(pattern[1:], append(prefix, r), keys)
	}
}

// walk visits keys under n in ascending edge order, emitting at terminal
// nodes. Returns false once fn has asked to stop.
func (n *node) walk(prefix []rune, fn func(string) bool) bool {
	if n.terminal {
		if !fn(string(prefix)) {
			return false
		}
	}
	for _, r := range n.sortedEdges() {
		if !n.children[r].walk(append(prefix, r), fn) {
			return false
		}
	}
	return true
}

// sortedEdges returns the node's edge labels in ascending code-point
// order, which is the alphabet's rank order by construction.
func (n *node) sortedEdges() []rune {
	edges := make([]rune, 0, len(n.children))
	for r := range n.children {
		edges = append(edges, r)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	return edges
}

func (t *TrieSet) fold(s string) string {
	if t.nfc {
		return norm.NFC.String(s)
	}
	return s
}

// validate checks every character of key against the alphabet. Runs
// before any mutation so a failed Add leaves the set untouched.
func (t *TrieSet) validate(key string) error {
	offset := 0
	for _, r := range key {
		if !t.alphabet.Contains(r) {
			return &InvalidCharacterError{Char: r, Offset: offset}
		}
		offset++
	}
	return nil
}

// nodeCount returns the number of nodes in the trie including the root.
func (t *TrieSet) nodeCount() int {
	return t.root.countNodes()
}

func (n *node) countNodes() int {
	count := 1
	for _, child := range n.children {
		count += child.countNodes()
	}
	return count
}
