// Package wordfreq turns lyric text into weighted words for the cloud layout
package wordfreq

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// ErrNoWords is returned when nothing survives tokenising and filtering
var ErrNoWords = errors.New("need at least 1 word to plot a word cloud")

// weightScale is the weight of the most frequent word
const weightScale = 1000

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_']*`)

// WordCount is a display form and its frequency
type WordCount struct {
	Word  string
	Count int
}

// Options controls tokenising
type Options struct {
	NormalizePlurals bool
	Stopwords        map[string]struct{} // lowercase; nil means the English list
}

// Process counts words in text. Counting is case-insensitive; each word is
// reported in its most frequent casing.
func Process(text string, opts Options) map[string]int {
	stop := opts.Stopwords
	if stop == nil {
		stop = englishStopwords
	}

	// lowercase form -> casing -> count, plus first-seen order of casings
	cases := make(map[string]map[string]int)
	order := make(map[string][]string)

	for _, word := range tokenPattern.FindAllString(text, -1) {
		if len(word) >= 2 && strings.EqualFold(word[len(word)-2:], "'s") {
			word = word[:len(word)-2]
		}
		if word == "" || isNumber(word) {
			continue
		}
		lower := strings.ToLower(word)
		if _, skip := stop[lower]; skip {
			continue
		}

		if cases[lower] == nil {
			cases[lower] = make(map[string]int)
		}
		if _, seen := cases[lower][word]; !seen {
			order[lower] = append(order[lower], word)
		}
		cases[lower][word]++
	}

	if opts.NormalizePlurals {
		mergePlurals(cases, order)
	}

	counts := make(map[string]int, len(cases))
	for lower, byCase := range cases {
		best, total := "", 0
		for _, word := range order[lower] {
			n := byCase[word]
			total += n
			if best == "" || n > byCase[best] {
				best = word
			}
		}
		counts[best] = total
	}
	return counts
}

// mergePlurals folds "words" into "word" when both occur. Keys ending in
// "ss" are left alone.
func mergePlurals(cases map[string]map[string]int, order map[string][]string) {
	var plurals []string
	for lower := range cases {
		if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
			plurals = append(plurals, lower)
		}
	}
	sort.Strings(plurals)

	for _, plural := range plurals {
		singular := plural[:len(plural)-1]
		target, ok := cases[singular]
		if !ok {
			continue
		}
		for _, word := range order[plural] {
			form := word[:len(word)-1]
			if _, seen := target[form]; !seen {
				order[singular] = append(order[singular], form)
			}
			target[form] += cases[plural][word]
		}
		delete(cases, plural)
		delete(order, plural)
	}
}

// Top returns at most n words ordered by descending count, ties alphabetical
func Top(counts map[string]int, n int) []WordCount {
	words := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if n > 0 && len(words) > n {
		words = words[:n]
	}
	return words
}

// Weights maps frequencies onto integer weights so that a layout sizing words
// linearly by weight reproduces relative scaling rs: the size of a word is
// proportional to rs*f/fmax + (1-rs). rs is clamped to [0, 1].
func Weights(words []WordCount, rs float64) map[string]int {
	rs = math.Max(0, math.Min(1, rs))

	maxCount := 0
	for _, w := range words {
		if w.Count > maxCount {
			maxCount = w.Count
		}
	}

	weights := make(map[string]int, len(words))
	if maxCount == 0 {
		return weights
	}
	for _, w := range words {
		v := int(math.Round(weightScale * (rs*float64(w.Count)/float64(maxCount) + (1 - rs))))
		if v < 1 {
			v = 1
		}
		weights[w.Word] = v
	}
	return weights
}

// Prepare runs Process, Top and Weights and fails with ErrNoWords when the
// text has nothing to plot.
func Prepare(text string, maxWords int, rs float64, opts Options) (map[string]int, []WordCount, error) {
	words := Top(Process(text, opts), maxWords)
	if len(words) == 0 {
		return nil, nil, ErrNoWords
	}
	return Weights(words, rs), words, nil
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
