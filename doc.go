/*
Package trieset provides a set of strings stored as a trie over a
restricted Latin alphabet: the uppercase and lowercase letters of Basic
Latin, Latin-1 Supplement and Latin Extended-A, minus a handful of
excluded code points. It supports membership testing, deletion with
pruning, prefix enumeration, longest-prefix matching and single-character
wildcard matching.

A TrieSet is not safe for concurrent mutation; callers that share one
across goroutines must synchronize externally.
*/
package trieset
