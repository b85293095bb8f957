// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slice9yLJ3dGb7JtE0yr1Qfbj0QΞΞ = ord.NewSliceSer[float32](varint.Float32)
	slicecCqZO7LpjnPYNEbADwPQIgΞΞ = ord.NewSliceSer[Attachment](AttachmentMUS)
	slicekTΔDIOHitLn2L2ostC8a2QΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var ImportanceMUS = importanceMUS{}

type importanceMUS struct{}

func (s importanceMUS) Marshal(v Importance, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s importanceMUS) Unmarshal(bs []byte) (v Importance, n int, err error) {
	tmp, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Importance(tmp)
	return
}

func (s importanceMUS) Size(v Importance) (size int) {
	return ord.String.Size(string(v))
}

func (s importanceMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var CategoryMUS = categoryMUS{}

type categoryMUS struct{}

func (s categoryMUS) Marshal(v Category, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s categoryMUS) Unmarshal(bs []byte) (v Category, n int, err error) {
	tmp, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Category(tmp)
	return
}

func (s categoryMUS) Size(v Category) (size int) {
	return ord.String.Size(string(v))
}

func (s categoryMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var AttachmentMUS = attachmentMUS{}

type attachmentMUS struct{}

func (s attachmentMUS) Marshal(v Attachment, bs []byte) (n int) {
	n = ord.String.Marshal(v.Filename, bs)
	n += ord.String.Marshal(v.ContentType, bs[n:])
	return n + varint.Int64.Marshal(v.Size, bs[n:])
}

func (s attachmentMUS) Unmarshal(bs []byte) (v Attachment, n int, err error) {
	v.Filename, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ContentType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Size, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s attachmentMUS) Size(v Attachment) (size int) {
	size = ord.String.Size(v.Filename)
	size += ord.String.Size(v.ContentType)
	return size + varint.Int64.Size(v.Size)
}

func (s attachmentMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}

var KeyInfoMUS = keyInfoMUS{}

type keyInfoMUS struct{}

func (s keyInfoMUS) Marshal(v KeyInfo, bs []byte) (n int) {
	n = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Marshal(v.KeyPoints, bs)
	n += slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Marshal(v.ActionItems, bs[n:])
	n += slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Marshal(v.ImportantDates, bs[n:])
	return n + slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Marshal(v.Contacts, bs[n:])
}

func (s keyInfoMUS) Unmarshal(bs []byte) (v KeyInfo, n int, err error) {
	v.KeyPoints, n, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ActionItems, n1, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ImportantDates, n1, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Contacts, n1, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s keyInfoMUS) Size(v KeyInfo) (size int) {
	size = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Size(v.KeyPoints)
	size += slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Size(v.ActionItems)
	size += slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Size(v.ImportantDates)
	return size + slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Size(v.Contacts)
}

func (s keyInfoMUS) Skip(bs []byte) (n int, err error) {
	n, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Skip(bs[n:])
	n += n1
	return
}

var MailRecordMUS = mailRecordMUS{}

type mailRecordMUS struct{}

func (s mailRecordMUS) Marshal(v MailRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Subject, bs[n:])
	n += ord.String.Marshal(v.Sender, bs[n:])
	n += slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Marshal(v.Recipients, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Date, bs[n:])
	n += ord.String.Marshal(v.Body, bs[n:])
	n += ord.String.Marshal(v.HTMLBody, bs[n:])
	n += slicecCqZO7LpjnPYNEbADwPQIgΞΞ.Marshal(v.Attachments, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += KeyInfoMUS.Marshal(v.KeyInfo, bs[n:])
	n += ImportanceMUS.Marshal(v.Importance, bs[n:])
	return n + CategoryMUS.Marshal(v.Category, bs[n:])
}

func (s mailRecordMUS) Unmarshal(bs []byte) (v MailRecord, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Subject, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Sender, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Recipients, n1, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Date, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Body, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.HTMLBody, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Attachments, n1, err = slicecCqZO7LpjnPYNEbADwPQIgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.KeyInfo, n1, err = KeyInfoMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Importance, n1, err = ImportanceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category, n1, err = CategoryMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s mailRecordMUS) Size(v MailRecord) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Subject)
	size += ord.String.Size(v.Sender)
	size += slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Size(v.Recipients)
	size += raw.TimeUnixMicro.Size(v.Date)
	size += ord.String.Size(v.Body)
	size += ord.String.Size(v.HTMLBody)
	size += slicecCqZO7LpjnPYNEbADwPQIgΞΞ.Size(v.Attachments)
	size += ord.String.Size(v.Summary)
	size += KeyInfoMUS.Size(v.KeyInfo)
	size += ImportanceMUS.Size(v.Importance)
	return size + CategoryMUS.Size(v.Category)
}

func (s mailRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicekTΔDIOHitLn2L2ostC8a2QΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicecCqZO7LpjnPYNEbADwPQIgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = KeyInfoMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ImportanceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = CategoryMUS.Skip(bs[n:])
	n += n1
	return
}

var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.MailId, bs[n:])
	n += varint.Int.Marshal(v.Seq, bs[n:])
	return n + ord.String.Marshal(v.Text, bs[n:])
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.MailId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Seq, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMUS) Size(v Chunk) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.MailId)
	size += varint.Int.Size(v.Seq)
	return size + ord.String.Size(v.Text)
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var ChunkMetaMUS = chunkMetaMUS{}

type chunkMetaMUS struct{}

func (s chunkMetaMUS) Marshal(v ChunkMeta, bs []byte) (n int) {
	n = ord.String.Marshal(v.MailId, bs)
	n += ord.String.Marshal(v.Subject, bs[n:])
	n += ord.String.Marshal(v.Sender, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Date, bs[n:])
	n += ImportanceMUS.Marshal(v.Importance, bs[n:])
	return n + CategoryMUS.Marshal(v.Category, bs[n:])
}

func (s chunkMetaMUS) Unmarshal(bs []byte) (v ChunkMeta, n int, err error) {
	v.MailId, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Subject, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Sender, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Date, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Importance, n1, err = ImportanceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category, n1, err = CategoryMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMetaMUS) Size(v ChunkMeta) (size int) {
	size = ord.String.Size(v.MailId)
	size += ord.String.Size(v.Subject)
	size += ord.String.Size(v.Sender)
	size += raw.TimeUnixMicro.Size(v.Date)
	size += ImportanceMUS.Size(v.Importance)
	return size + CategoryMUS.Size(v.Category)
}

func (s chunkMetaMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ImportanceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = CategoryMUS.Skip(bs[n:])
	n += n1
	return
}

var IndexEntryMUS = indexEntryMUS{}

type indexEntryMUS struct{}

func (s indexEntryMUS) Marshal(v IndexEntry, bs []byte) (n int) {
	n = ChunkMUS.Marshal(v.Chunk, bs)
	n += slice9yLJ3dGb7JtE0yr1Qfbj0QΞΞ.Marshal(v.Vector, bs[n:])
	return n + ChunkMetaMUS.Marshal(v.Meta, bs[n:])
}

func (s indexEntryMUS) Unmarshal(bs []byte) (v IndexEntry, n int, err error) {
	v.Chunk, n, err = ChunkMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Vector, n1, err = slice9yLJ3dGb7JtE0yr1Qfbj0QΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Meta, n1, err = ChunkMetaMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexEntryMUS) Size(v IndexEntry) (size int) {
	size = ChunkMUS.Size(v.Chunk)
	size += slice9yLJ3dGb7JtE0yr1Qfbj0QΞΞ.Size(v.Vector)
	return size + ChunkMetaMUS.Size(v.Meta)
}

func (s indexEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ChunkMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = slice9yLJ3dGb7JtE0yr1Qfbj0QΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ChunkMetaMUS.Skip(bs[n:])
	n += n1
	return
}
