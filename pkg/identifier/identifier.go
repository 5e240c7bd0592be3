// pkg/identifier/identifier.go
package identifier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/moment-ml/preprocess/pkg/config"
)

const maxSlugLen = 30

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9_]`)
	multiUnderscore = regexp.MustCompile(`_+`)
)

// Generator builds deterministic identifiers for every entity in a
// batch. The same inputs always yield the same IDs, so reruns produce
// stable references across datasets.
type Generator struct {
	hashLen int
}

// NewGenerator creates a new Generator instance
func NewGenerator(cfg config.IdentityConfig) *Generator {
	hashLen := cfg.HashLength
	if hashLen <= 0 || hashLen > 64 {
		hashLen = 8
	}
	return &Generator{hashLen: hashLen}
}

// BookID derives a book identifier from its Project Gutenberg number.
func (g *Generator) BookID(gutenbergID int) string {
	return fmt.Sprintf("gutenberg_%d", gutenbergID)
}

// UnknownBookID derives a stable identifier for a book whose Gutenberg
// number could not be resolved.
func (g *Generator) UnknownBookID(title string) string {
	return "book_" + g.shortHash(title)
}

// PassageID derives a passage identifier from its book and position.
func (g *Generator) PassageID(bookID string, passageNumber int) string {
	return fmt.Sprintf("%s_passage_%d", bookID, passageNumber)
}

// UserID derives a user identifier from the reader's name. The slug
// keeps IDs readable; the hash suffix disambiguates name collisions
// after slugging.
func (g *Generator) UserID(name string) string {
	return fmt.Sprintf("user_%s_%s", slugify(name), g.shortHash(name))
}

// InterpretationID derives an identifier from the interpretation's
// owning user, passage, and a prefix of its text. Including the text
// keeps distinct interpretations of the same passage distinct.
func (g *Generator) InterpretationID(userID, passageID, text string) string {
	if len(text) > 100 {
		text = text[:100]
	}
	return "moment_" + g.shortHash(userID+"_"+passageID+"_"+text)
}

func (g *Generator) shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:g.hashLen]
}

// slugify lowercases a name and reduces it to [a-z0-9_], capped at
// thirty characters.
func slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}
