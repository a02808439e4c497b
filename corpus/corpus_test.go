package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartborrow/smartborrow-go/log"
)

func TestLoad(t *testing.T) {
	c, err := Load("testdata", &log.NoOpLogger{})
	require.NoError(t, err)

	t.Run("numerical facts", func(t *testing.T) {
		require.Len(t, c.NumericalFacts, 3)
		assert.Equal(t, "$7,395", c.NumericalFacts[0].Value)
		assert.Equal(t, "pell_grant", c.NumericalFacts[0].Category)
		assert.Equal(t, "3", c.NumericalFacts[0].PageReference)
	})

	t.Run("structured knowledge", func(t *testing.T) {
		require.Contains(t, c.Knowledge, "pell_grant")
		pell := c.Knowledge["pell_grant"]
		assert.Contains(t, pell.Definition, "Federal Pell Grant")
		assert.Len(t, pell.Requirements, 2)
		assert.Len(t, pell.NumericalData, 1)
		assert.Equal(t, []string{"fafsa", "student_aid_index"}, pell.RelatedConcepts)
	})

	t.Run("complaint categories", func(t *testing.T) {
		require.Contains(t, c.ComplaintCategories, "repayment_trouble")
		assert.Equal(t, 1240, c.ComplaintCategories["repayment_trouble"].ComplaintCount)
		assert.InDelta(t, 34.5, c.ComplaintCategories["repayment_trouble"].Percentage, 1e-9)
	})

	t.Run("faqs", func(t *testing.T) {
		require.Len(t, c.FAQs, 2)
		assert.Equal(t, "grants", c.FAQs[0].Category)
	})

	t.Run("expanded categories keyed by original_category", func(t *testing.T) {
		require.Contains(t, c.ExpandedCategories, "repayment_trouble")
		assert.Contains(t, c.ExpandedCategories["repayment_trouble"].ExpandedKeywords, "income-driven")
	})

	t.Run("stats", func(t *testing.T) {
		stats := c.Stats()
		assert.Equal(t, 3, stats.NumericalFacts)
		assert.Equal(t, 2, stats.Concepts)
		assert.Equal(t, 2, stats.ComplaintCategories)
		assert.Equal(t, 2, stats.FAQs)
		assert.Equal(t, 1, stats.ExpandedCategories)
	})
}

func TestLoad_MissingFilesDegradeToEmpty(t *testing.T) {
	c, err := Load(t.TempDir(), &log.NoOpLogger{})
	require.NoError(t, err)

	assert.Empty(t, c.NumericalFacts)
	assert.Empty(t, c.Knowledge)
	assert.Empty(t, c.ComplaintCategories)
	assert.Empty(t, c.FAQs)
	assert.Empty(t, c.ExpandedCategories)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, NumericalDataFile), []byte("{not json"), 0o644)
	require.NoError(t, err)

	_, err = Load(dir, &log.NoOpLogger{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}
