package trieset

import (
	"sort"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/rangetable"
)

// Unicode block bounds of the supported letters.
const (
	startLatinBasicUpper = 0x0041
	endLatinBasicUpper   = 0x005A

	startLatinBasicLower = startLatinBasicUpper + 0x0020
	endLatinBasicLower   = endLatinBasicUpper + 0x0020

	startLatin1Upper = 0x00C0
	endLatin1Upper   = 0x00DE

	startLatin1Lower = 0x00DF
	endLatin1Lower   = startLatin1Lower + 0x0020

	startLatinExtA = 0x0100
	endLatinExtA   = 0x017F
)

// excludesLatin1 holds the arithmetic operators embedded in the Latin-1
// Supplement letter ranges: multiplication sign U+00D7 and division sign
// U+00F7.
var excludesLatin1 = []rune{0x00D7, 0x00F7}

// excludesLatinExtA holds the Latin Extended-A code points left out of the
// alphabet:
//
//	U+0138 old Greenlandic 'kra' letter
//	U+0149 deprecated small letter apostrophe n
//	U+017F old small letter long s
var excludesLatinExtA = []rune{0x0138, 0x0149, 0x017F}

// Per-block letter slices, ascending code-point order. Case within Latin
// Extended-A follows the Unicode case of each code point rather than a
// range split.
var (
	LatinBasicUpper = lettersBetween(startLatinBasicUpper, endLatinBasicUpper, nil, nil)
	LatinBasicLower = lettersBetween(startLatinBasicLower, endLatinBasicLower, nil, nil)

	Latin1Upper = lettersBetween(startLatin1Upper, endLatin1Upper, excludesLatin1, nil)
	Latin1Lower = lettersBetween(startLatin1Lower, endLatin1Lower, excludesLatin1, nil)

	LatinExtAUpper = lettersBetween(startLatinExtA, endLatinExtA, excludesLatinExtA, unicode.IsUpper)
	LatinExtALower = lettersBetween(startLatinExtA, endLatinExtA, excludesLatinExtA, unicode.IsLower)
)

// AllUpper is every supported uppercase letter across the three blocks, in
// ascending code-point order.
var AllUpper = concatRunes(LatinBasicUpper, Latin1Upper, LatinExtAUpper)

// AllLower is every supported lowercase letter across the three blocks, in
// ascending code-point order.
var AllLower = concatRunes(LatinBasicLower, Latin1Lower, LatinExtALower)

// AllLetters is the sorted union of AllUpper and AllLower.
var AllLetters = sortedUnion(AllUpper, AllLower)

// Latin is the alphabet of uppercase and lowercase letters from Basic
// Latin, Latin-1 Supplement and Latin Extended-A, minus the excluded code
// points. It is the default alphabet of New.
var Latin = NewAlphabet(AllLetters)

// Alphabet is an immutable set of letters legal as trie edge labels. It
// supplies membership testing and a dense rank in ascending code-point
// order. Build one with NewAlphabet; the zero value is unusable.
type Alphabet struct {
	letters []rune
	set     runes.Set
	rank    map[rune]int
}

// NewAlphabet builds an Alphabet from the given letters. Duplicates are
// dropped and the letters are kept in ascending code-point order.
func NewAlphabet(letters []rune) *Alphabet {
	sorted := sortedUnion(letters)
	a := &Alphabet{
		letters: sorted,
		set:     runes.In(rangetable.New(sorted...)),
		rank:    make(map[rune]int, len(sorted)),
	}
	for i, r := range sorted {
		a.rank[r] = i
	}
	return a
}

// Contains reports whether r is a letter of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	return a.set.Contains(r)
}

// Rank returns the index of r in the alphabet's ascending code-point
// order, or -1 if r is not in the alphabet.
func (a *Alphabet) Rank(r rune) int {
	i, ok := a.rank[r]
	if !ok {
		return -1
	}
	return i
}

// Size returns the number of letters in the alphabet.
func (a *Alphabet) Size() int {
	return len(a.letters)
}

// Letters returns a copy of the alphabet's letters in ascending code-point
// order.
func (a *Alphabet) Letters() []rune {
	out := make([]rune, len(a.letters))
	copy(out, a.letters)
	return out
}

// lettersBetween collects the code points of [lo, hi] that are not in excl
// and satisfy keep (if non-nil).
func lettersBetween(lo, hi rune, excl []rune, keep func(rune) bool) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		if excluded(r, excl) {
			continue
		}
		if keep != nil && !keep(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func excluded(r rune, excl []rune) bool {
	for _, x := range excl {
		if r == x {
			return true
		}
	}
	return false
}

func concatRunes(slices ...[]rune) []rune {
	var n int
	for _, s := range slices {
		n += len(s)
	}
	out := make([]rune, 0, n)
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}

func sortedUnion(slices ...[]rune) []rune {
	seen := make(map[rune]struct{})
	var out []rune
	for _, s := range slices {
		for _, r := range s {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
