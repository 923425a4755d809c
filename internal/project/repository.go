// internal/project/repository.go
package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"oligotools/internal/jsonutil"
)

// Extension is the project document suffix.
const Extension = ".oligoproj"

// importDirName is where imported file copies live, next to the project file.
const importDirName = "imported_files"

// Save writes the project document to path (forcing the Extension suffix)
// and records the final location on the project.
func Save(p *Project, path string) error {
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	p.touch()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if err := jsonutil.EncodePretty(f, p); err != nil {
		f.Close()
		return fmt.Errorf("save project: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	p.FilePath = path
	return nil
}

// Load reads a project document from path.
func Load(path string) (*Project, error) {
	var p Project
	if err := jsonutil.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if p.Root == nil {
		return nil, fmt.Errorf("load project %s: missing folder structure", path)
	}
	p.FilePath = path
	return &p, nil
}

// ImportFile copies srcPath into the project's import directory and attaches
// a FileReference under folderPath. Name collisions in the import directory
// get a numeric suffix (name_1.ext, name_2.ext, ...).
func ImportFile(p *Project, srcPath, folderPath string) (*FileReference, error) {
	if p.FilePath == "" {
		return nil, fmt.Errorf("import %s: project has not been saved", srcPath)
	}
	info, err := os.Stat(srcPath)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("import %s: is a directory", srcPath)
	}

	projDir := filepath.Dir(p.FilePath)
	importDir := filepath.Join(projDir, importDirName)
	if err := os.MkdirAll(importDir, 0o755); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	name := filepath.Base(srcPath)
	dst := filepath.Join(importDir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(importDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}

	if err := copyFile(srcPath, dst); err != nil {
		return nil, fmt.Errorf("import %s: %w", srcPath, err)
	}

	rel, err := filepath.Rel(projDir, dst)
	if err != nil {
		rel = dst
	}
	now := time.Now().UTC()
	ref := &FileReference{
		ID:           uuid.NewString(),
		Name:         filepath.Base(dst),
		OriginalPath: srcPath,
		RelativePath: filepath.ToSlash(rel),
		Type:         DetectType(srcPath),
		SizeBytes:    info.Size(),
		Imported:     now,
		Modified:     now,
		Metadata:     map[string]string{"imported_copy": "true"},
	}
	if err := p.AddFile(folderPath, ref); err != nil {
		os.Remove(dst)
		return nil, err
	}
	return ref, nil
}

// ResolvePath returns the on-disk location of an imported file.
func ResolvePath(p *Project, ref *FileReference) string {
	if filepath.IsAbs(ref.RelativePath) {
		return ref.RelativePath
	}
	return filepath.Join(filepath.Dir(p.FilePath), filepath.FromSlash(ref.RelativePath))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
