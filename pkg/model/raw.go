// pkg/model/raw.go
package model

// RecordKind identifies which of the three input schemas a record belongs to.
type RecordKind string

const (
	KindInterpretation RecordKind = "interpretation"
	KindPassage        RecordKind = "passage"
	KindProfile        RecordKind = "profile"
)

// RawInterpretation is one reader interpretation as read from the source file.
// Fields mirror the raw JSON; nothing here is cleaned or validated yet.
type RawInterpretation struct {
	Book           string `json:"book"`
	PassageID      int    `json:"passage_id"` // passage number within the book
	CharacterID    int    `json:"character_id"`
	CharacterName  string `json:"character_name"`
	Interpretation string `json:"interpretation"`
	WordCount      int    `json:"word_count"`
}

// RawPassage is one literary passage as read from the source file.
type RawPassage struct {
	BookTitle     string `json:"book_title"`
	PassageNumber int    `json:"passage_number"`
	ChapterNumber string `json:"chapter_number"`
	PassageTitle  string `json:"passage_title"`
	PassageText   string `json:"passage_text"`
}

// RawCharacter is one reader profile as read from the source file.
type RawCharacter struct {
	Name                 string   `json:"name"`
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
	Styles               []string `json:"styles"`
}

// BookMetadata is the lookup collaborator's answer for one book title.
// Supplied read-only to the pipeline; the core never fetches it itself.
type BookMetadata struct {
	BookTitle   string `json:"book_title"`
	GutenbergID int    `json:"gutenberg_id"`
	Author      string `json:"author"`
	Chapter     string `json:"chapter,omitempty"`
	Found       bool   `json:"found"`
}
