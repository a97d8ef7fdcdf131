package compress

import "fmt"

// Codec names as stored in the page_versions.compression column.
const (
	NameNop    = "none"
	NameGZip   = "gzip"
	NameBrotli = "brotli"
	NameLZ4    = "lz4"
)

// Compress encodes version snapshots before they hit the database.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// ByName returns the codec registered under name. Unknown names are an
// error so a misconfigured COMPRESSION value fails at startup, not at the
// first snapshot read.
func ByName(name string) (Compress, error) {
	switch name {
	case NameNop, "":
		return NewNop(), nil
	case NameGZip:
		return NewGZip(), nil
	case NameBrotli:
		return NewBrotli(), nil
	case NameLZ4:
		return NewLZ4(), nil
	default:
		return nil, fmt.Errorf("unknown compression codec %q", name)
	}
}
