package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager places export files under a base directory.
type OutputManager struct {
	BaseOutputDir string
}

func NewOutputManager(baseOutputDir string) *OutputManager {
	if baseOutputDir == "" {
		baseOutputDir = "."
	}
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// GetOutputFilePath returns the path for fileName inside the base directory, creating the
// directory if needed. Any directory part of fileName is dropped.
func (om *OutputManager) GetOutputFilePath(fileName string) (string, error) {
	if err := om.EnsureOutputDirExists(); err != nil {
		return "", err
	}
	return filepath.Join(om.BaseOutputDir, filepath.Base(fileName)), nil
}

// GetFileSize returns the size of a file in bytes
func (om *OutputManager) GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	if err := os.MkdirAll(om.BaseOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
