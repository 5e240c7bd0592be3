// pkg/model/processed.go
package model

// ProcessedMoment is the enriched output record for one interpretation.
// It references its passage and user by generated ID (a lookup, not an
// owning reference). Immutable once assembled; lives for one pipeline run.
type ProcessedMoment struct {
	InterpretationID      string           `json:"interpretation_id"`
	UserID                string           `json:"user_id"`
	BookID                string           `json:"book_id"`
	PassageID             string           `json:"passage_id"`
	BookTitle             string           `json:"book_title"`
	PassageNumber         int              `json:"passage_number"`
	CharacterID           int              `json:"character_id"`
	CharacterName         string           `json:"character_name"`
	CleanedInterpretation string           `json:"cleaned_interpretation"`
	OriginalWordCount     int              `json:"original_word_count"`
	Validation            ValidationResult `json:"validation"`
	DetectedIssues        IssueReport      `json:"detected_issues"`
	Metrics               MetricsSet       `json:"metrics"`
	Anomalies             AnomalyReport    `json:"anomalies"`
	Timestamp             string           `json:"timestamp"`
}

// ProcessedBook is the enriched output record for one literary passage.
type ProcessedBook struct {
	BookID        string           `json:"book_id"`
	PassageID     string           `json:"passage_id"`
	BookTitle     string           `json:"book_title"`
	BookAuthor    string           `json:"book_author"`
	ChapterNumber string           `json:"chapter_number"`
	PassageTitle  string           `json:"passage_title"`
	PassageNumber int              `json:"passage_number"`
	CleanedText   string           `json:"cleaned_passage_text"`
	Validation    ValidationResult `json:"validation"`
	Metrics       MetricsSet       `json:"metrics"`
	Timestamp     string           `json:"timestamp"`
}

// ProcessedUser is the enriched output record for one reader profile.
type ProcessedUser struct {
	UserID               string   `json:"user_id"`
	CharacterName        string   `json:"character_name"`
	Gender               string   `json:"gender"`
	Age                  int      `json:"age"`
	Profession           string   `json:"profession"`
	DistributionCategory string   `json:"distribution_category"`
	Personality          string   `json:"personality"`
	Interest             string   `json:"interest"`
	ReadingIntensity     string   `json:"reading_intensity"`
	ReadingCount         int      `json:"reading_count"`
	ExperienceLevel      string   `json:"experience_level"`
	ExperienceCount      int      `json:"experience_count"`
	Journey              string   `json:"journey"`
	ReadingStyles        []string `json:"reading_styles"`
	TotalInterpretations int      `json:"total_interpretations"`
	BooksInterpreted     []string `json:"books_interpreted"`
	Timestamp            string   `json:"timestamp"`
}
