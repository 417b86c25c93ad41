package index

import "github.com/meigma/gitindex/schema"

// Field names shared by HeaderSchema and EntrySchema.
const (
	FieldSignature    = "signature"
	FieldVersion      = "version"
	FieldCount        = "count"
	FieldCtime        = "ctime"
	FieldMtime        = "mtime"
	FieldDev          = "dev"
	FieldIno          = "ino"
	FieldMode         = "mode"
	FieldUID          = "uid"
	FieldGID          = "gid"
	FieldFileSize     = "fileSize"
	FieldObjectID     = "objectId"
	FieldFilePathSize = "filePathSize"
	FieldFilePath     = "filePath"
)

// Signature is the magic at the start of every index file.
const Signature = "DIRC"

// ObjectIDSize is the byte length of an entry's object hash.
const ObjectIDSize = 20

// ChecksumSize is the byte length of the trailing SHA-1 checksum.
const ChecksumSize = 20

// SupportedVersion is the only header version EntrySchema describes.
const SupportedVersion = 2

// HeaderSchema describes the 12-byte file header.
var HeaderSchema = schema.MustNew("header",
	schema.Field{Name: FieldSignature, Size: schema.Bytes(4), Kind: schema.StringKind{}},
	schema.Field{Name: FieldVersion, Size: schema.Bytes(4), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldCount, Size: schema.Bytes(4), Kind: schema.ValueKind{}},
)

// EntrySchema describes one entry. The path length is carried by
// filePathSize, which sizes the trailing filePath field.
var EntrySchema = schema.MustNew("entry",
	schema.Field{Name: FieldCtime, Size: schema.Bytes(8), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldMtime, Size: schema.Bytes(8), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldDev, Size: schema.Bytes(4), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldIno, Size: schema.Bytes(4), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldMode, Size: schema.Bytes(4), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldUID, Size: schema.Bytes(4), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldGID, Size: schema.Bytes(4), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldFileSize, Size: schema.Bytes(4), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldObjectID, Size: schema.Bytes(ObjectIDSize), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldFilePathSize, Size: schema.Bytes(2), Kind: schema.ValueKind{}},
	schema.Field{Name: FieldFilePath, Size: schema.Ref(FieldFilePathSize), Kind: schema.StringKind{}},
)

// Pad returns the padded length of an entry of n bytes: n rounded up to the
// next multiple of 8. Aligned input still gains a full 8-byte block, which
// guarantees every path is followed by at least one NUL byte.
func Pad(n int) int {
	return n + 8 - n%8
}
