package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput writes every message to its own file under a directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput creates the directory if it does not exist yet, files
// that are already in it are overwritten as messages with the same id arrive.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents []byte) {
	err := os.WriteFile(filepath.Join(o.directory, id), contents, 0644)
	if err != nil {
		slog.Warn("failed to write message file", "id", id, "err", err)
	}
}
