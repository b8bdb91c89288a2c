package ports

// FileSystem abstracts file system operations used by exporters and sinks.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	MkdirAll(path string) error

	Exists(path string) (bool, error)
}
