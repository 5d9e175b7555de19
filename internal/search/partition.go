package search

// Partition splits files into contiguous chunks of ceil(len(files)/workers) paths.
// Only non-empty chunks are returned, so at most min(workers, len(files)) workers are needed.
func Partition(files []string, workers int) ([][]string, error) {
	if workers <= 0 {
		return nil, &ConfigError{Field: "workers", Err: ErrInvalidWorkers}
	}
	if len(files) == 0 {
		return nil, nil
	}

	chunkSize := (len(files) + workers - 1) / workers
	chunks := make([][]string, 0, workers)
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		if start >= len(files) {
			break
		}
		end := min(start+chunkSize, len(files))
		chunks = append(chunks, files[start:end:end])
	}
	return chunks, nil
}
