package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrCollectionMissing   = errors.New("collection file not found")
	ErrCollectionMalformed = errors.New("collection file is not valid JSON")
)

func init() {
	// Data files keep prices and balances as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Collection string

const (
	Products Collection = "products"
	Coupons  Collection = "coupons"
	Cards    Collection = "cards"
)

// JSONStore keeps every collection in its own JSON file.
type JSONStore struct {
	dir   string
	files map[Collection]string
}

func NewJSONStore(dir string, files map[Collection]string) *JSONStore {
	return &JSONStore{dir: dir, files: files}
}

func (s *JSONStore) Path(name Collection) string {
	file, ok := s.files[name]
	if !ok {
		file = string(name) + ".json"
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(s.dir, file)
}

func (s *JSONStore) Load(name Collection, dest interface{}) error {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(ErrCollectionMissing, path)
		}
		return errors.Wrapf(err, "failed to read %s", path)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(ErrCollectionMalformed, "%s: %v", path, err)
	}
	return nil
}

// Save overwrites the whole collection. The file is replaced by rename so readers never see a partial write.
func (s *JSONStore) Save(name Collection, src interface{}) error {
	path := s.Path(name)
	data, err := json.MarshalIndent(src, "", "    ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", name)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(fileMode(path)); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to save %s", path)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to save %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return errors.Wrapf(os.Rename(tmpName, path), "failed to save %s", path)
}

// fileMode keeps the permissions of an existing collection; new files get 0644.
func fileMode(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0644
	}
	return info.Mode().Perm()
}
