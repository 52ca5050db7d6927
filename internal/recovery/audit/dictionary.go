package audit

import (
	"iter"
	"slices"
)

// Built-in word lists for the common security question categories. These are
// deliberately small; operators with better knowledge of the registrant
// supply their own lists via Dictionary.
var builtinDictionaries = map[string][]string{
	"pets": {
		"bella", "buddy", "charlie", "coco", "daisy", "felix", "gismo",
		"gizmo", "jack", "lucky", "luna", "max", "milo", "molly", "oscar",
		"rex", "rocky", "sam", "shadow", "whiskers",
	},
	"surnames": {
		"anderson", "brown", "clark", "davis", "harris", "jackson",
		"johnson", "jones", "lewis", "lister", "martin", "miller", "moore",
		"robinson", "smith", "taylor", "thompson", "walker", "white",
		"williams", "wilson",
	},
	"streets": {
		"church", "elm", "high", "hill", "king", "main", "maple", "mill",
		"oak", "park", "queen", "spring", "station", "victoria",
		"washington", "westminster", "westminister",
	},
}

// BuiltinDictionary returns the curated word list for a question category
// ("pets", "surnames", "streets"). The second return value reports whether
// the category exists.
func BuiltinDictionary(category string) (iter.Seq[string], bool) {
	words, ok := builtinDictionaries[category]
	if !ok {
		return nil, false
	}
	return Dictionary(words), true
}

// Categories lists the available built-in dictionary categories, sorted.
func Categories() []string {
	out := make([]string, 0, len(builtinDictionaries))
	for category := range builtinDictionaries {
		out = append(out, category)
	}
	slices.Sort(out)
	return out
}
