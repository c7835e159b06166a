// Package reference generates human-shareable lead reference numbers of the
// form MOT-YYYYMMDD-HHMMSS-XXXXX.
package reference

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const (
	Prefix       = "MOT"
	SuffixLength = 5
	alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var pattern = regexp.MustCompile(`^MOT-\d{8}-\d{6}-[A-Z0-9]{5}$`)

// Generator produces reference numbers from a clock and a random source.
// The suffix is not cryptographically random; it only separates references
// created within the same second.
type Generator struct {
	now  func() time.Time
	intn func(n int) int
}

// NewGenerator returns a generator reading the local wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now, intn: rand.Intn}
}

// NewGeneratorWith returns a generator with an explicit clock and random source,
// mainly for tests.
func NewGeneratorWith(now func() time.Time, intn func(n int) int) *Generator {
	return &Generator{now: now, intn: intn}
}

var defaultGenerator = NewGenerator()

// Generate returns a new reference number from the default generator.
func Generate() string {
	return defaultGenerator.Generate()
}

// Generate returns a new reference number, e.g. MOT-20241215-143052-A7B2K.
func (g *Generator) Generate() string {
	now := g.now()

	var b strings.Builder
	b.Grow(len(Prefix) + 1 + 8 + 1 + 6 + 1 + SuffixLength)
	b.WriteString(Prefix)
	b.WriteByte('-')
	b.WriteString(now.Format("20060102"))
	b.WriteByte('-')
	b.WriteString(now.Format("150405"))
	b.WriteByte('-')
	for i := 0; i < SuffixLength; i++ {
		b.WriteByte(alphabet[g.intn(len(alphabet))])
	}
	return b.String()
}

// Valid reports whether ref has the reference number format.
func Valid(ref string) bool {
	return pattern.MatchString(ref)
}
