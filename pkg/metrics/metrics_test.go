package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/model"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestComputeBasicCounts(t *testing.T) {
	c := newTestCalculator(t)

	set := c.Compute("The cat sat. The dog ran. Birds fly high today.")

	assert.Equal(t, 10, set.WordCount)
	assert.Equal(t, 3, set.SentenceCount)
	assert.InDelta(t, 10.0/3.0, set.AvgSentenceLength, 0.001)
	assert.Greater(t, set.CharCount, 0)
}

func TestComputeEmptyText(t *testing.T) {
	c := newTestCalculator(t)

	for _, text := range []string{"", "   \n  "} {
		set := c.Compute(text)
		assert.Equal(t, model.MetricsSet{SentenceCount: 1}, set)
		assert.GreaterOrEqual(t, set.SentenceCount, 1, "sentence count must stay a safe divisor")
	}
}

func TestComputeAlwaysCountsAtLeastOneSentence(t *testing.T) {
	c := newTestCalculator(t)

	set := c.Compute("Hi")

	assert.Equal(t, 1, set.SentenceCount)
	assert.Equal(t, 1, set.WordCount)
}

func TestComputeCharCountExcludesWhitespace(t *testing.T) {
	c := newTestCalculator(t)

	set := c.Compute("ab cd ef")

	assert.Equal(t, 6, set.CharCount)
}

func TestComputeAvgWordLengthIgnoresPunctuation(t *testing.T) {
	c := newTestCalculator(t)

	set := c.Compute("cat, dog!")

	// Six letters across two words.
	assert.InDelta(t, 3.0, set.AvgWordLength, 0.001)
}

func TestReadabilityStaysInRange(t *testing.T) {
	c := newTestCalculator(t)

	texts := []string{
		"The cat sat on the mat.",
		"Incomprehensibility notwithstanding, multisyllabic terminology predominates exceptionally convoluted documentation.",
		"Go. Run. Stop. Wait. Now.",
	}

	for _, text := range texts {
		set := c.Compute(text)
		assert.GreaterOrEqual(t, set.ReadabilityScore, 0.0, "text: %s", text)
		assert.LessOrEqual(t, set.ReadabilityScore, 100.0, "text: %s", text)
	}
}

func TestSimpleTextReadsEasierThanDenseText(t *testing.T) {
	c := newTestCalculator(t)

	simple := c.Compute("The cat sat on the mat. The dog ran to the park.")
	dense := c.Compute("Incomprehensibility notwithstanding, multisyllabic terminology predominates exceptionally convoluted documentation.")

	assert.Greater(t, simple.ReadabilityScore, dense.ReadabilityScore)
}

func TestCountSyllables(t *testing.T) {
	cases := map[string]int{
		"cat":       1,
		"reading":   2,
		"beautiful": 3,
		"a":         1,
		"rhythm":    1,
	}

	for word, want := range cases {
		assert.Equal(t, want, countSyllables(word), "word: %s", word)
	}
}

func TestDescribeDistribution(t *testing.T) {
	dist := Describe([]float64{1, 2, 3, 4, 5})

	assert.InDelta(t, 3.0, dist.Mean, 0.001)
	assert.Equal(t, 1.0, dist.Min)
	assert.Equal(t, 5.0, dist.Max)
	assert.LessOrEqual(t, dist.Q1, dist.Q3)
	assert.InDelta(t, dist.Q3-dist.Q1, dist.IQR, 0.001)
}

func TestDescribeEmptyAndUniform(t *testing.T) {
	assert.Equal(t, Distribution{}, Describe(nil))

	uniform := Describe([]float64{7, 7, 7, 7})
	assert.Equal(t, 0.0, uniform.StdDev)
	assert.Equal(t, 0.0, uniform.IQR)
}
