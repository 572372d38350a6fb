package bucket

// ChunkSizeForTest exposes chunkSize for testing.
func ChunkSizeForTest(n, workers int) int {
	return chunkSize(n, workers)
}

// DefaultChunkSize is defaultChunkSize for testing.
const DefaultChunkSize = defaultChunkSize
