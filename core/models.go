package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical content
// always maps to the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Importance classifies how urgent a mail is.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// DefaultImportance is applied when classification fails or is absent.
// A record is never left without an importance.
const DefaultImportance = ImportanceMedium

// Category classifies the kind of mail.
type Category string

const (
	CategoryWork          Category = "work"
	CategoryEducation     Category = "education"
	CategoryCommunity     Category = "community"
	CategoryAdvertisement Category = "advertisement"
	CategoryNotification  Category = "notification"
	CategoryPersonal      Category = "personal"
	CategoryOther         Category = "other"
)

// DefaultCategory is applied when classification fails or is absent.
const DefaultCategory = CategoryOther

// Importances lists the valid importance levels.
var Importances = []Importance{ImportanceHigh, ImportanceMedium, ImportanceLow}

// Categories lists the valid mail categories.
var Categories = []Category{
	CategoryWork,
	CategoryEducation,
	CategoryCommunity,
	CategoryAdvertisement,
	CategoryNotification,
	CategoryPersonal,
	CategoryOther,
}

// Attachment describes a mail attachment. Only metadata is retained;
// attachment content is never stored by the pipeline.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
}

// KeyInfo holds the structured information extracted from a mail by the
// enrichment engine. All fields are optional.
type KeyInfo struct {
	KeyPoints      []string
	ActionItems    []string
	ImportantDates []string
	Contacts       []string
}

// Empty reports whether no key information was extracted.
func (k *KeyInfo) Empty() bool {
	if k == nil {
		return true
	}
	return len(k.KeyPoints) == 0 && len(k.ActionItems) == 0 &&
		len(k.ImportantDates) == 0 && len(k.Contacts) == 0
}

// MailRecord represents a single mail message flowing through the pipeline.
// Transport fields are populated on fetch; enrichment fields are populated
// in place by the enrichment engine and remain optional. Importance and
// Category always hold a value after enrichment, falling back to the
// defaults when classification fails.
type MailRecord struct {
	Id          string // stable, transport-assigned identifier
	Subject     string
	Sender      string
	Recipients  []string
	Date        time.Time
	Body        string
	HTMLBody    string
	Attachments []Attachment

	// Enrichment output.
	Summary    string
	KeyInfo    KeyInfo
	Importance Importance
	Category   Category
}

// Enriched reports whether the summarization step produced output.
func (m *MailRecord) Enriched() bool {
	return m.Summary != ""
}

// ApplyClassificationDefaults fills Importance and Category with their
// default values when unset, per the pipeline invariant that neither
// field is ever left empty.
func (m *MailRecord) ApplyClassificationDefaults() {
	if m.Importance == "" {
		m.Importance = DefaultImportance
	}
	if m.Category == "" {
		m.Category = DefaultCategory
	}
}

// Chunk is a bounded-length slice of a mail's composed document, the
// atomic unit indexed for similarity search. Chunks are immutable once
// their embedding has been computed.
type Chunk struct {
	Id     ID
	MailId string
	Seq    int
	Text   string
}

// ChunkMeta carries the mail metadata persisted alongside each indexed
// chunk, used for citation in search and QA results.
type ChunkMeta struct {
	MailId     string
	Subject    string
	Sender     string
	Date       time.Time
	Importance Importance
	Category   Category
}

// IndexEntry pairs a chunk with its embedding vector and mail metadata.
// Entries are owned exclusively by the index manager.
type IndexEntry struct {
	Chunk  Chunk
	Vector []float32
	Meta   ChunkMeta
}

// SearchResult is a ranked hit from the vector index.
type SearchResult struct {
	Text  string
	Meta  ChunkMeta
	Score float32
}

// Answer is the result of a retrieval-grounded question.
type Answer struct {
	Text    string
	Sources []SearchResult
}
