package analysis

// Split divides stream into consecutive blocks of blockSize bytes. The
// last block holds the remainder and may be shorter; it is never padded.
// A blockSize of at least len(stream) yields a single block covering the
// whole stream. Block data aliases stream.
func Split(stream []byte, blockSize int) ([]Block, error) {
	if blockSize <= 0 {
		return nil, &InvalidConfigError{Field: "block_size", Value: blockSize}
	}
	if len(stream) == 0 {
		return nil, nil
	}

	n := len(stream)
	blocks := make([]Block, 0, (n+blockSize-1)/blockSize)
	for off := 0; off < n; off += blockSize {
		end := off + blockSize
		if end > n {
			end = n
		}
		blocks = append(blocks, Block{Offset: int64(off), Data: stream[off:end]})
	}
	return blocks, nil
}
