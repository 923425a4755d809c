// internal/project/entity.go

// Package project models the hierarchical project tree (folders + imported
// file references) and its JSON persistence. The analysis core never imports
// this package; it receives pre-filtered sequence sets at its boundary.
package project

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName = errors.New("name already exists")
	ErrNotFound      = errors.New("item not found")
	ErrInvalidName   = errors.New("invalid name")
)

const invalidNameChars = `<>:"/\|?*`

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidName)
	}
	if strings.ContainsAny(name, invalidNameChars) {
		return fmt.Errorf("name %q contains one of %s: %w", name, invalidNameChars, ErrInvalidName)
	}
	return nil
}

// FileReference points at an imported file. RelativePath is relative to the
// project file's directory.
type FileReference struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	OriginalPath string            `json:"original_path"`
	RelativePath string            `json:"relative_path"`
	Type         string            `json:"file_type"`
	SizeBytes    int64             `json:"size_bytes"`
	Imported     time.Time         `json:"imported_date"`
	Modified     time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Folder is one node of the project tree. Child names are unique across
// subfolders and files together.
type Folder struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	Created    time.Time                 `json:"created_date"`
	Subfolders map[string]*Folder        `json:"subfolders,omitempty"`
	Files      map[string]*FileReference `json:"files,omitempty"`
}

// NewFolder builds an empty named folder.
func NewFolder(name string) (*Folder, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &Folder{
		ID:         uuid.NewString(),
		Name:       name,
		Created:    time.Now().UTC(),
		Subfolders: map[string]*Folder{},
		Files:      map[string]*FileReference{},
	}, nil
}

func (f *Folder) taken(name string) bool {
	if _, ok := f.Subfolders[name]; ok {
		return true
	}
	_, ok := f.Files[name]
	return ok
}

// AddSubfolder attaches child, rejecting duplicate names.
func (f *Folder) AddSubfolder(child *Folder) error {
	if f.taken(child.Name) {
		return fmt.Errorf("%q: %w", child.Name, ErrDuplicateName)
	}
	if f.Subfolders == nil {
		f.Subfolders = map[string]*Folder{}
	}
	f.Subfolders[child.Name] = child
	return nil
}

// AddFile attaches a file reference, rejecting duplicate names.
func (f *Folder) AddFile(ref *FileReference) error {
	if f.taken(ref.Name) {
		return fmt.Errorf("%q: %w", ref.Name, ErrDuplicateName)
	}
	if f.Files == nil {
		f.Files = map[string]*FileReference{}
	}
	f.Files[ref.Name] = ref
	return nil
}

// Remove detaches a named child (folder or file).
func (f *Folder) Remove(name string) error {
	if _, ok := f.Subfolders[name]; ok {
		delete(f.Subfolders, name)
		return nil
	}
	if _, ok := f.Files[name]; ok {
		delete(f.Files, name)
		return nil
	}
	return fmt.Errorf("%q: %w", name, ErrNotFound)
}

// Rename renames a child folder or file.
func (f *Folder) Rename(oldName, newName string) error {
	if err := checkName(newName); err != nil {
		return err
	}
	if f.taken(newName) {
		return fmt.Errorf("%q: %w", newName, ErrDuplicateName)
	}
	if sub, ok := f.Subfolders[oldName]; ok {
		sub.Name = newName
		delete(f.Subfolders, oldName)
		f.Subfolders[newName] = sub
		return nil
	}
	if ref, ok := f.Files[oldName]; ok {
		ref.Name = newName
		ref.Modified = time.Now().UTC()
		delete(f.Files, oldName)
		f.Files[newName] = ref
		return nil
	}
	return fmt.Errorf("%q: %w", oldName, ErrNotFound)
}

// FileCount counts files in this folder and all descendants.
func (f *Folder) FileCount() int {
	n := len(f.Files)
	for _, sub := range f.Subfolders {
		n += sub.FileCount()
	}
	return n
}

// Project is the root aggregate persisted as one JSON document.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version"`
	Created     time.Time `json:"created_date"`
	Modified    time.Time `json:"last_modified"`
	Root        *Folder   `json:"folder_structure"`

	// FilePath is where the project document lives on disk; not serialized,
	// reattached on load.
	FilePath string `json:"-"`
}

// New builds an empty project with a Root folder.
func New(name, description string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("project name: %w", ErrInvalidName)
	}
	root, err := NewFolder("Root")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Version:     "1.0.0",
		Created:     now,
		Modified:    now,
		Root:        root,
	}, nil
}

func (p *Project) touch() { p.Modified = time.Now().UTC() }

// FolderByPath navigates a slash path like "Root/Sequences/Primers".
// "", "/", and "Root" address the root folder.
func (p *Project) FolderByPath(path string) (*Folder, error) {
	cur := p.Root
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "Root" {
			continue
		}
		sub, ok := cur.Subfolders[part]
		if !ok {
			return nil, fmt.Errorf("folder path %q: %w", path, ErrNotFound)
		}
		cur = sub
	}
	return cur, nil
}

// CreateFolder makes a new folder under parentPath.
func (p *Project) CreateFolder(parentPath, name string) (*Folder, error) {
	parent, err := p.FolderByPath(parentPath)
	if err != nil {
		return nil, err
	}
	child, err := NewFolder(name)
	if err != nil {
		return nil, err
	}
	if err := parent.AddSubfolder(child); err != nil {
		return nil, err
	}
	p.touch()
	return child, nil
}

// AddFile attaches ref under folderPath.
func (p *Project) AddFile(folderPath string, ref *FileReference) error {
	folder, err := p.FolderByPath(folderPath)
	if err != nil {
		return err
	}
	if err := folder.AddFile(ref); err != nil {
		return err
	}
	p.touch()
	return nil
}

// Move relocates a named item from one folder to another.
func (p *Project) Move(srcPath, name, dstPath string) error {
	src, err := p.FolderByPath(srcPath)
	if err != nil {
		return err
	}
	dst, err := p.FolderByPath(dstPath)
	if err != nil {
		return err
	}
	if sub, ok := src.Subfolders[name]; ok {
		if err := dst.AddSubfolder(sub); err != nil {
			return err
		}
		delete(src.Subfolders, name)
		p.touch()
		return nil
	}
	if ref, ok := src.Files[name]; ok {
		if err := dst.AddFile(ref); err != nil {
			return err
		}
		delete(src.Files, name)
		p.touch()
		return nil
	}
	return fmt.Errorf("%q in %q: %w", name, srcPath, ErrNotFound)
}

// CopyFile duplicates a file reference into another folder under newName.
// The copy gets a fresh ID; both references point at the same on-disk file.
func (p *Project) CopyFile(srcPath, name, dstPath, newName string) (*FileReference, error) {
	src, err := p.FolderByPath(srcPath)
	if err != nil {
		return nil, err
	}
	ref, ok := src.Files[name]
	if !ok {
		return nil, fmt.Errorf("%q in %q: %w", name, srcPath, ErrNotFound)
	}
	if newName == "" {
		newName = name
	}
	if err := checkName(newName); err != nil {
		return nil, err
	}
	dst, err := p.FolderByPath(dstPath)
	if err != nil {
		return nil, err
	}
	dup := *ref
	dup.ID = uuid.NewString()
	dup.Name = newName
	dup.Metadata = make(map[string]string, len(ref.Metadata))
	for k, v := range ref.Metadata {
		dup.Metadata[k] = v
	}
	if err := dst.AddFile(&dup); err != nil {
		return nil, err
	}
	p.touch()
	return &dup, nil
}

// AllFiles returns every file reference in the project, depth-first with
// children visited in name order so traversal is deterministic.
func (p *Project) AllFiles() []*FileReference {
	var out []*FileReference
	var walk func(f *Folder)
	walk = func(f *Folder) {
		for _, name := range sortedKeys(f.Files) {
			out = append(out, f.Files[name])
		}
		for _, name := range sortedKeys(f.Subfolders) {
			walk(f.Subfolders[name])
		}
	}
	walk(p.Root)
	return out
}

// Stats summarizes the project contents.
type Stats struct {
	Files      int
	Folders    int // excluding Root
	TotalBytes int64
	ByType     map[string]int
}

// Statistics walks the tree and aggregates counts.
func (p *Project) Statistics() Stats {
	st := Stats{ByType: map[string]int{}}
	for _, ref := range p.AllFiles() {
		st.Files++
		st.TotalBytes += ref.SizeBytes
		st.ByType[ref.Type]++
	}
	var count func(f *Folder) int
	count = func(f *Folder) int {
		n := len(f.Subfolders)
		for _, sub := range f.Subfolders {
			n += count(sub)
		}
		return n
	}
	st.Folders = count(p.Root)
	return st
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
