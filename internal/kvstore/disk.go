package kvstore

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
	"github.com/tartampluch/go-petcare/internal/config"
)

// keySeparator splits a key into its namespace directories and file name.
const keySeparator = ":"

// Disk stores each key as a file under a base directory.
// "reminders:appointments" lives at <base>/reminders/appointments.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// NewDisk opens (lazily creating) a store rooted at basePath. A leading "~" is
// expanded to the user's home directory.
func NewDisk(basePath string) (*Disk, error) {
	expanded, err := homedir.Expand(basePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStorePath, err)
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:          expanded,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      config.DiskCacheSizeMax,
			PathPerm:          config.DirPermUserRWX,
			FilePerm:          config.FilePermUserRW,
		}),
		basePath: expanded,
	}, nil
}

// BasePath returns the expanded root directory.
func (s *Disk) BasePath() string {
	return s.basePath
}

func (s *Disk) Get(key string) (string, bool, error) {
	if !s.d.Has(key) {
		return "", false, nil
	}
	b, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

func (s *Disk) Set(key, value string) error {
	return s.d.Write(key, []byte(value))
}

func (s *Disk) Remove(key string) error {
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", config.ErrStoreRemove, err)
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySeparator)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), keySeparator)
}
