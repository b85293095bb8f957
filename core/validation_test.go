package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateMailRecord(t *testing.T) {
	received := time.Now().Add(-1 * time.Hour)

	tests := []struct {
		name    string
		record  *MailRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &MailRecord{
				Id:     "msg-1@example.com",
				Sender: "alice@example.com",
				Date:   received,
				Body:   "Hello",
			},
			wantErr: nil,
		},
		{
			name: "valid record with empty body",
			record: &MailRecord{
				Id:       "msg-2@example.com",
				Sender:   "alice@example.com",
				HTMLBody: "<p>Hello</p>",
			},
			wantErr: nil,
		},
		{
			name: "valid enriched record",
			record: &MailRecord{
				Id:         "msg-3@example.com",
				Sender:     "alice@example.com",
				Importance: ImportanceHigh,
				Category:   CategoryWork,
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidMailRecord,
		},
		{
			name: "empty id",
			record: &MailRecord{
				Sender: "alice@example.com",
			},
			wantErr: ErrEmptyMailId,
		},
		{
			name: "empty sender",
			record: &MailRecord{
				Id: "msg-4@example.com",
			},
			wantErr: ErrEmptySender,
		},
		{
			name: "unknown importance",
			record: &MailRecord{
				Id:         "msg-5@example.com",
				Sender:     "alice@example.com",
				Importance: Importance("critical"),
			},
			wantErr: ErrInvalidImportance,
		},
		{
			name: "unknown category",
			record: &MailRecord{
				Id:       "msg-6@example.com",
				Sender:   "alice@example.com",
				Category: Category("spam"),
			},
			wantErr: ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMailRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunk(t *testing.T) {
	valid := &Chunk{Id: IDFromContent("x"), MailId: "m1", Seq: 0, Text: "x"}
	if err := ValidateChunk(valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateChunk(nil); !errors.Is(err, ErrEmptyChunk) {
		t.Errorf("nil chunk error = %v, want %v", err, ErrEmptyChunk)
	}
	if err := ValidateChunk(&Chunk{MailId: "m1"}); !errors.Is(err, ErrEmptyChunk) {
		t.Errorf("empty text error = %v, want %v", err, ErrEmptyChunk)
	}
	if err := ValidateChunk(&Chunk{Text: "x"}); !errors.Is(err, ErrEmptyMailId) {
		t.Errorf("empty mail id error = %v, want %v", err, ErrEmptyMailId)
	}
}

func TestParseImportance(t *testing.T) {
	if got := ParseImportance("high"); got != ImportanceHigh {
		t.Errorf("ParseImportance(high) = %q", got)
	}
	if got := ParseImportance("urgent"); got != DefaultImportance {
		t.Errorf("unknown value should fall back to default, got %q", got)
	}
	if got := ParseImportance(""); got != DefaultImportance {
		t.Errorf("empty value should fall back to default, got %q", got)
	}
}

func TestParseCategory(t *testing.T) {
	if got := ParseCategory("work"); got != CategoryWork {
		t.Errorf("ParseCategory(work) = %q", got)
	}
	if got := ParseCategory("junk"); got != DefaultCategory {
		t.Errorf("unknown value should fall back to default, got %q", got)
	}
}
