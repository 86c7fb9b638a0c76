// Package fileutils provides the file operations of the command-line layer:
// validated input reading, PDF discovery and output writing.
package fileutils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/models"
)

// PDFExtension is matched case-insensitively by ListPDFs.
const PDFExtension = ".pdf"

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// ReadInput reads a whole input file after checking that it exists, is a
// regular file, is not empty and is at most maxBytes long. A maxBytes of
// zero or less disables the size check. Rejections are returned as
// *extractionerror.InvalidInputError.
func ReadInput(filePath string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, &extractionerror.InvalidInputError{FilePath: filePath, Reason: "cannot access file", Err: err}
	}
	if info.IsDir() {
		return nil, &extractionerror.InvalidInputError{FilePath: filePath, Reason: "is a directory"}
	}
	if info.Size() == 0 {
		return nil, &extractionerror.InvalidInputError{FilePath: filePath, Reason: "file is empty", Err: extractionerror.ErrEmptyInput}
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, &extractionerror.InvalidInputError{
			FilePath: filePath,
			Reason:   fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), maxBytes),
			Err:      extractionerror.ErrInputTooLarge,
		}
	}

	file, err := os.Open(filePath) // #nosec G304 -- input path comes from the command line
	if err != nil {
		return nil, &extractionerror.InvalidInputError{FilePath: filePath, Reason: "cannot open file", Err: err}
	}
	defer file.Close()

	reader := io.Reader(file)
	if maxBytes > 0 {
		// the file may grow between Stat and Read
		reader = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, &extractionerror.InvalidInputError{FilePath: filePath, Reason: "file grew past the size limit", Err: extractionerror.ErrInputTooLarge}
	}
	return data, nil
}

// WriteFile writes data to a file, creating the file if it doesn't exist
// and creating any parent directories if needed
func WriteFile(filePath string, data []byte, perm os.FileMode) error {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ListFilesWithExtension returns the files under dirPath whose extension
// matches extension case-insensitively, in lexical order.
func ListFilesWithExtension(dirPath, extension string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, fmt.Errorf("directory does not exist: %s", dirPath)
	}

	var files []string
	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// ListPDFs returns the PDF files under dirPath.
func ListPDFs(dirPath string) ([]string, error) {
	return ListFilesWithExtension(dirPath, PDFExtension)
}
