package host

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var nameAdjectives = []string{
	"quiet", "amber", "brisk", "calm", "dusty", "eager", "faint", "gentle",
	"hazy", "idle", "jolly", "keen", "lively", "misty", "noble", "olive",
	"plain", "quick", "rusty", "sunny", "tidy", "vivid", "windy", "young",
}

var nameNouns = []string{
	"fox", "otter", "heron", "wren", "badger", "lynx", "finch", "vole",
	"marten", "swift", "crane", "hare", "mole", "newt", "raven", "stoat",
	"tern", "shrew", "snipe", "gecko",
}

// GenerateName produces a random three-word session name like "quiet-amber-fox"
// -- an adjective pair plus a noun, giving a large enough combination space
// that collisions against a handful of concurrent sessions are rare.
func GenerateName() string {
	a1 := pick(nameAdjectives)
	a2 := pick(nameAdjectives)
	n := pick(nameNouns)
	return fmt.Sprintf("%s-%s-%s", a1, a2, n)
}

// GenerateUniqueName retries GenerateName until it produces a name absent
// from existing, or gives up after a bounded number of attempts.
func GenerateUniqueName(existing []string) (string, error) {
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n] = true
	}
	const maxRetries = 100
	for i := 0; i < maxRetries; i++ {
		name := GenerateName()
		if !seen[name] {
			return name, nil
		}
	}
	return "", fmt.Errorf("generate unique session name: exhausted %d retries", maxRetries)
}

func pick(words []string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return words[0]
	}
	return words[n.Int64()]
}
