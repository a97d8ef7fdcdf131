package compress

// Nop stores version snapshots uncompressed. It backs an empty or "none"
// COMPRESSION setting and decodes rows written before a codec was
// configured.
type Nop struct{}

func NewNop() Nop {
	return Nop{}
}

func (n Nop) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (n Nop) Decode(data []byte) ([]byte, error) {
	return data, nil
}
