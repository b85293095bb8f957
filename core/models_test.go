package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("hello world")
	b := IDFromContent("hello world")
	c := IDFromContent("hello world!")

	if a != b {
		t.Errorf("same content produced different IDs: %d != %d", a, b)
	}
	if a == c {
		t.Errorf("different content produced the same ID: %d", a)
	}
	if IDFromContent("") == 0 {
		t.Error("empty content should still hash to a value")
	}
}

func TestApplyClassificationDefaults(t *testing.T) {
	tests := []struct {
		name           string
		record         MailRecord
		wantImportance Importance
		wantCategory   Category
	}{
		{
			name:           "both unset",
			record:         MailRecord{},
			wantImportance: ImportanceMedium,
			wantCategory:   CategoryOther,
		},
		{
			name:           "importance set, category unset",
			record:         MailRecord{Importance: ImportanceHigh},
			wantImportance: ImportanceHigh,
			wantCategory:   CategoryOther,
		},
		{
			name:           "category set, importance unset",
			record:         MailRecord{Category: CategoryWork},
			wantImportance: ImportanceMedium,
			wantCategory:   CategoryWork,
		},
		{
			name:           "both set stay untouched",
			record:         MailRecord{Importance: ImportanceLow, Category: CategoryPersonal},
			wantImportance: ImportanceLow,
			wantCategory:   CategoryPersonal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record.ApplyClassificationDefaults()
			if tt.record.Importance != tt.wantImportance {
				t.Errorf("Importance = %q, want %q", tt.record.Importance, tt.wantImportance)
			}
			if tt.record.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", tt.record.Category, tt.wantCategory)
			}
		})
	}
}

func TestKeyInfoEmpty(t *testing.T) {
	var nilInfo *KeyInfo
	if !nilInfo.Empty() {
		t.Error("nil KeyInfo should be empty")
	}
	if !(&KeyInfo{}).Empty() {
		t.Error("zero KeyInfo should be empty")
	}
	if (&KeyInfo{KeyPoints: []string{"a"}}).Empty() {
		t.Error("KeyInfo with key points should not be empty")
	}
	if (&KeyInfo{Contacts: []string{"bob@example.com"}}).Empty() {
		t.Error("KeyInfo with contacts should not be empty")
	}
}

func TestMailRecordEnriched(t *testing.T) {
	record := &MailRecord{Id: "m1", Sender: "a@example.com"}
	if record.Enriched() {
		t.Error("record without summary should not be enriched")
	}
	record.Summary = "short summary"
	if !record.Enriched() {
		t.Error("record with summary should be enriched")
	}
}
