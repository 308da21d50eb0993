package fileutil

import (
	"path/filepath"
	"sort"
	"strings"
)

// Substitutions maps literal tokens to their replacement text
type Substitutions map[string]string

// replacer orders tokens longest first so that a token which is a prefix of
// another never shadows it.
func (s Substitutions) replacer() *strings.Replacer {
	tokens := make([]string, 0, len(s))
	for token := range s {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	pairs := make([]string, 0, 2*len(tokens))
	for _, token := range tokens {
		pairs = append(pairs, token, s[token])
	}
	return strings.NewReplacer(pairs...)
}

// Apply replaces every token occurrence in text
func (s Substitutions) Apply(text string) string {
	if len(s) == 0 {
		return text
	}
	return s.replacer().Replace(text)
}

// ApplyPath replaces tokens segment by segment, so a replacement can never
// introduce or remove a path separator boundary.
func (s Substitutions) ApplyPath(rel string) string {
	if len(s) == 0 || rel == "" {
		return rel
	}
	r := s.replacer()
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for i, seg := range segments {
		segments[i] = r.Replace(seg)
	}
	return filepath.FromSlash(strings.Join(segments, "/"))
}
