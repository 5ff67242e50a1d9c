package progress

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
)

const progressionKey = "progression"

// LevelStore хранит прогресс в LevelDB под одним ключом.
type LevelStore struct {
	*leveldb.DB
	key []byte
}

// NewLevelStore opens (or creates) a LevelDB database at path.
func NewLevelStore(path string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelStore{DB: db, key: []byte(progressionKey)}, nil
}

func (l *LevelStore) Load() (*State, error) {
	v, err := l.DB.Get(l.key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decode(v)
}

func (l *LevelStore) Save(s *State) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	return l.DB.Put(l.key, b, nil)
}

// PutRaw stores raw bytes under the progression key.
func (l *LevelStore) PutRaw(b []byte) error {
	return l.DB.Put(l.key, b, nil)
}

func (l *LevelStore) Close() error {
	return l.DB.Close()
}
