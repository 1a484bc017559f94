// nolint: forbidigo
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// Fs - filesystem interface.
// The workflow creates directories and renames downloaded files through it,
// so tests can run against the memory implementation.
type Fs interface {
	Name() string // name of the used implementation, for example local, memory, ...
	Stat(path string) (os.FileInfo, error)
	Exists(path string) bool
	IsFile(path string) bool
	IsDir(path string) bool
	MkdirAll(path string) error
	Create(path string) (afero.File, error)
	Open(path string) (afero.File, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Rename(oldPath, newPath string) error
	Remove(path string) error
	ReadDir(path string) ([]os.FileInfo, error)
}

type fs struct {
	name  string
	afero afero.Fs
	utils *afero.Afero
}

// NewLocalFs returns the filesystem of the operating system.
func NewLocalFs() Fs {
	return New("local", afero.NewOsFs())
}

// NewMemoryFs returns an empty filesystem in the memory.
func NewMemoryFs() Fs {
	return New("memory", afero.NewMemMapFs())
}

func New(name string, backend afero.Fs) Fs {
	return &fs{name: name, afero: backend, utils: &afero.Afero{Fs: backend}}
}

func (f *fs) Name() string {
	return f.name
}

func (f *fs) Stat(path string) (os.FileInfo, error) {
	return f.afero.Stat(path)
}

func (f *fs) Exists(path string) bool {
	_, err := f.afero.Stat(path)
	return err == nil
}

func (f *fs) IsFile(path string) bool {
	info, err := f.afero.Stat(path)
	return err == nil && !info.IsDir()
}

func (f *fs) IsDir(path string) bool {
	info, err := f.afero.Stat(path)
	return err == nil && info.IsDir()
}

// MkdirAll creates the directory and all parents, it is a no-op if the directory already exists.
func (f *fs) MkdirAll(path string) error {
	if f.IsFile(path) {
		return errors.Errorf(`cannot create directory "%s": a file with the same name exists`, path)
	}
	if err := f.afero.MkdirAll(path, 0o755); err != nil {
		return errors.Errorf(`cannot create directory "%s": %w`, path, err)
	}
	return nil
}

func (f *fs) Create(path string) (afero.File, error) {
	return f.afero.Create(path)
}

func (f *fs) Open(path string) (afero.File, error) {
	return f.afero.Open(path)
}

func (f *fs) ReadFile(path string) ([]byte, error) {
	return f.utils.ReadFile(path)
}

func (f *fs) WriteFile(path string, data []byte) error {
	return f.utils.WriteFile(path, data, 0o644)
}

func (f *fs) Rename(oldPath, newPath string) error {
	if err := f.afero.Rename(oldPath, newPath); err != nil {
		return errors.Errorf(`cannot rename "%s" to "%s": %w`, oldPath, newPath, err)
	}
	return nil
}

func (f *fs) Remove(path string) error {
	return f.afero.Remove(path)
}

func (f *fs) ReadDir(path string) ([]os.FileInfo, error) {
	return f.utils.ReadDir(path)
}

// Join joins any number of path elements into a single path.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Split splits path immediately following the final Separator.
func Split(path string) (dir, file string) {
	return filepath.Split(path)
}

// Dir returns all but the last element of path, typically the path's directory.
func Dir(path string) string {
	return filepath.Dir(path)
}

// Base returns the last element of path.
func Base(path string) string {
	return filepath.Base(path)
}

// Abs returns the path relative to the base, if it is not already absolute.
func Abs(base, path string) string {
	if filepath.IsAbs(path) || base == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
