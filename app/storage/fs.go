package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// FSStore keeps backup objects as files under a single directory. Download
// links are HMAC-signed URLs served by the public download endpoint.
type FSStore struct {
	dir        string
	signSecret []byte
	baseURL    string
}

func NewFSStore(dir string, signSecret []byte, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FSStore{dir: dir, signSecret: signSecret, baseURL: baseURL}, nil
}

func (s *FSStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *FSStore) Upload(_ context.Context, name string, data []byte) error {
	if isCompressed(name) {
		var err error
		if data, err = compress(data); err != nil {
			return fmt.Errorf("compress %s: %w", name, err)
		}
	}
	final := s.path(name)
	tmp := final + ".part"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp object: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("finalize object: %w", err)
	}
	return nil
}

func (s *FSStore) Download(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	if isCompressed(name) {
		if data, err = decompress(data); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", name, err)
		}
	}
	return data, nil
}

func (s *FSStore) List(_ context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var objects []ObjectInfo
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) == ".part" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, ObjectInfo{Name: e.Name(), Size: info.Size(), ModifiedAt: info.ModTime()})
	}
	return objects, nil
}

func (s *FSStore) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return err
}

func (s *FSStore) SignedURL(_ context.Context, name string, ttl time.Duration) (string, error) {
	exp := time.Now().Add(ttl).Unix()
	sig := s.sign(name, exp)
	return fmt.Sprintf("%s/backups/download?name=%s&exp=%d&sig=%s",
		s.baseURL, url.QueryEscape(name), exp, sig), nil
}

// Verify checks a download signature and its expiry.
func (s *FSStore) Verify(name string, exp int64, sig string) bool {
	if time.Now().Unix() > exp {
		return false
	}
	expected := s.sign(name, exp)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *FSStore) sign(name string, exp int64) string {
	mac := hmac.New(sha256.New, s.signSecret)
	fmt.Fprintf(mac, "%s\n%d", name, exp)
	return hex.EncodeToString(mac.Sum(nil))
}
