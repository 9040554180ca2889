package persona

import "strings"

// Flesch reading ease:
//
//	206.835 - 1.015*(words/sentences) - 84.6*(syllables/words)
//
// Syllables are estimated by counting vowel groups with a trailing
// silent-e adjustment, which tracks the common textstat heuristic
// closely enough for the coarse complexity buckets built on top.

func fleschReadingEase(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := countSentences(text)
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	return 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))
}

func countSentences(text string) int {
	n := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

func countSyllables(word string) int {
	word = strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
