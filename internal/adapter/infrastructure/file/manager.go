// Package file provides file system operations adapter implementation.
package file

import (
	"fmt"

	"onbox-config-copy/internal/port"

	"github.com/spf13/afero"
)

// ManagerAdapter is an adapter that implements the FileManager port on top of an afero filesystem.
type ManagerAdapter struct {
	fs afero.Fs
}

// Ensure ManagerAdapter implements the FileManager port
var _ port.FileManager = (*ManagerAdapter)(nil)

// NewManagerAdapter creates a file manager adapter backed by the operating system filesystem.
func NewManagerAdapter() *ManagerAdapter {
	return NewManagerAdapterWithFs(afero.NewOsFs())
}

// NewManagerAdapterWithFs creates a file manager adapter backed by fs.
func NewManagerAdapterWithFs(fs afero.Fs) *ManagerAdapter {
	return &ManagerAdapter{fs: fs}
}

// ReadFile reads the contents of a file.
func (f *ManagerAdapter) ReadFile(filename string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, nil
}

// FileExists checks if a regular file exists.
func (f *ManagerAdapter) FileExists(filename string) bool {
	info, err := f.fs.Stat(filename)
	return err == nil && !info.IsDir()
}
