package plugin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/fjson/value"
)

// SuggestKeys ranks candidates by fuzzy distance to target and returns the
// closest n, nearest first. The distance is fuzzy.LevenshteinDistance over
// the case-folded strings; candidates at equal distance keep their input
// order. Grounded on the teacher's own use of the fuzzysearch library for
// decorator-name suggestions (runtime/planner/planner.go).
func SuggestKeys(target string, candidates []string, n int) []string {
	folded := strings.ToLower(target)
	dist := make(map[string]int, len(candidates))
	for _, c := range candidates {
		dist[c] = fuzzy.LevenshteinDistance(folded, strings.ToLower(c))
	}
	ranked := append([]string(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool { return dist[ranked[i]] < dist[ranked[j]] })
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// KeySuggestor is a Validate hook that flags object keys outside an
// allowed set and attaches the closest allowed key as a hint (spec §3.4
// "hints"), using SuggestKeys.
type KeySuggestor struct {
	name        string
	allowedKeys []string
}

// NewKeySuggestor returns a KeySuggestor plugin named name that rejects
// any object key not in allowedKeys.
func NewKeySuggestor(name string, allowedKeys []string) *KeySuggestor {
	return &KeySuggestor{name: name, allowedKeys: allowedKeys}
}

// Name implements Plugin.
func (k *KeySuggestor) Name() string { return k.name }

// Validate implements Validate.
func (k *KeySuggestor) Validate(v *value.Value, path string) error {
	if v.Kind() != value.KindObject {
		return nil
	}
	obj, _ := v.Object()
	for _, key := range obj.Keys() {
		if contains(k.allowedKeys, key) {
			continue
		}
		msg := fmt.Sprintf("unknown key %q at %s", key, path)
		if suggestions := SuggestKeys(key, k.allowedKeys, 1); len(suggestions) > 0 {
			msg += fmt.Sprintf(" (did you mean %q?)", suggestions[0])
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
