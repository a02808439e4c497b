package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smartborrow/smartborrow-go/log"
)

// File names produced by the ingestion pipeline. Load resolves them relative to
// the processed-data directory.
const (
	NumericalDataFile       = "numerical_data.json"
	StructuredKnowledgeFile = "structured_knowledge.json"
	ComplaintCategoriesFile = "complaint_categories.json"
	ComplaintFAQsFile       = "complaint_faqs.json"
	ExpandedCategoriesFile  = "expanded_categories.json"
)

// ErrMalformed is returned (wrapped) when a corpus file exists but cannot be
// decoded. A missing file is not an error: the matching store stays empty so that
// retrieval degrades to zero matches instead of failing outright.
var ErrMalformed = errors.New("malformed corpus file")

// Load reads every corpus file under dir. Missing files are logged and skipped;
// malformed files abort the load with an error wrapping ErrMalformed, so callers
// can tell a broken corpus apart from a genuinely empty one.
func Load(dir string, logger log.Logger) (*Corpus, error) {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}

	c := &Corpus{
		Knowledge:           map[string]Concept{},
		ComplaintCategories: map[string]ComplaintCategory{},
		ExpandedCategories:  map[string]ExpandedCategory{},
	}

	if err := loadJSON(filepath.Join(dir, NumericalDataFile), &c.NumericalFacts, logger); err != nil {
		return nil, err
	}
	logger.Info("loaded %d numerical data points", len(c.NumericalFacts))

	if err := loadJSON(filepath.Join(dir, StructuredKnowledgeFile), &c.Knowledge, logger); err != nil {
		return nil, err
	}
	logger.Info("loaded structured knowledge with %d concepts", len(c.Knowledge))

	if err := loadJSON(filepath.Join(dir, ComplaintCategoriesFile), &c.ComplaintCategories, logger); err != nil {
		return nil, err
	}
	logger.Info("loaded complaint categories with %d categories", len(c.ComplaintCategories))

	if err := loadJSON(filepath.Join(dir, ComplaintFAQsFile), &c.FAQs, logger); err != nil {
		return nil, err
	}
	logger.Info("loaded %d FAQ entries", len(c.FAQs))

	var expanded []ExpandedCategory
	if err := loadJSON(filepath.Join(dir, ExpandedCategoriesFile), &expanded, logger); err != nil {
		return nil, err
	}
	// The expanded categories file is a list keyed by original_category.
	for _, item := range expanded {
		name := item.OriginalCategory
		if name == "" {
			name = "unknown"
		}
		c.ExpandedCategories[name] = item
	}
	logger.Info("loaded expanded categories with %d categories", len(c.ExpandedCategories))

	return c, nil
}

func loadJSON(path string, v any, logger log.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("corpus file %s missing, store stays empty", filepath.Base(path))
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w: %v", filepath.Base(path), ErrMalformed, err)
	}
	return nil
}
