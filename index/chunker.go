package index

import (
	"fmt"

	"github.com/poiesic/mailmind/core"
	"github.com/poiesic/mailmind/normalize"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the overlap between consecutive chunks of
	// the same mail.
	DefaultChunkOverlap = 200
)

// splitRecord composes the record's index document (header fields,
// enrichment output, normalized body) and splits it into overlapping
// chunks. Chunk ids are derived from content, so the same record always
// yields the same chunks regardless of when it is indexed.
func splitRecord(record *core.MailRecord, chunkSize, chunkOverlap int) []core.Chunk {
	document := normalize.ComposeDocument(record, true)

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	pieces, err := splitter.SplitText(document)
	if err != nil || len(pieces) == 0 {
		pieces = []string{document}
	}

	chunks := make([]core.Chunk, 0, len(pieces))
	for i, text := range pieces {
		chunks = append(chunks, core.Chunk{
			Id:     chunkID(record.Id, i, text),
			MailId: record.Id,
			Seq:    i,
			Text:   text,
		})
	}
	return chunks
}

// chunkID derives a stable id from the owning mail, sequence position,
// and chunk text.
func chunkID(mailId string, seq int, text string) core.ID {
	return core.IDFromContent(fmt.Sprintf("%s#%d:%s", mailId, seq, text))
}

// metaFor builds the citation metadata attached to every chunk of a record.
func metaFor(record *core.MailRecord) core.ChunkMeta {
	return core.ChunkMeta{
		MailId:     record.Id,
		Subject:    record.Subject,
		Sender:     record.Sender,
		Date:       record.Date,
		Importance: record.Importance,
		Category:   record.Category,
	}
}
