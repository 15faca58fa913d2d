package intent

import "strings"

// Classifier decides whether a prompt is asking for image generation.
// It is a heuristic gate, not a scored classifier: binary output only.
// Image intent overrides per-model template selection downstream.
type Classifier struct {
	imageNouns    []string
	creationVerbs []string
	quality       []string
}

// New creates a classifier with the standard keyword sets
func New() *Classifier {
	return &Classifier{
		imageNouns: []string{
			"image", "picture", "photo", "visual", "graphic",
			"illustration", "artwork", "thumbnail", "poster", "banner",
		},
		creationVerbs: []string{
			"create", "generate", "make", "design", "draw", "produce", "craft",
		},
		quality: []string{
			"high quality", "vibrant", "eye-catching", "ultra",
			"stunning", "dramatic", "cinematic",
		},
	}
}

// IsImageRequest returns true iff the prompt names an image artifact and
// either a creation verb or a quality descriptor. Matching is substring
// containment over the lower-cased prompt, so "pictures" and "creating"
// count.
func (c *Classifier) IsImageRequest(prompt string) bool {
	lower := strings.ToLower(prompt)
	if !containsAny(lower, c.imageNouns) {
		return false
	}
	return containsAny(lower, c.creationVerbs) || containsAny(lower, c.quality)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
