// Package store is the local vault: attachment artifacts on disk plus the
// markdown documents the sync writes into.
package store

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	pkgLog "dida-sync/pkg/log"
)

const (
	attachmentCacheSize = 256
	attachmentCacheTTL  = time.Hour
)

// Vault stores attachment artifacts under a dedicated directory and
// read/writes markdown documents, both addressed by vault-relative paths
// (forward slashes).
type Vault struct {
	l             pkgLog.Logger
	root          string
	attachmentDir string
	cache         *expirable.LRU[string, string]
}

// NewVault creates a vault rooted at root. attachmentDir is the
// vault-relative directory attachment artifacts live in.
func NewVault(l pkgLog.Logger, root, attachmentDir string) *Vault {
	return &Vault{
		l:             l,
		root:          root,
		attachmentDir: attachmentDir,
		cache:         expirable.NewLRU[string, string](attachmentCacheSize, nil, attachmentCacheTTL),
	}
}

// SaveAttachment writes attachment bytes as `<attachmentDir>/<id><ext>`,
// with the extension taken from the original file name, and returns the
// artifact's vault-relative path.
func (v *Vault) SaveAttachment(id, fileName string, data []byte) (string, error) {
	rel := path.Join(v.attachmentDir, id+path.Ext(fileName))
	abs := filepath.Join(v.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachment dir: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write attachment %s: %w", id, err)
	}

	v.cache.Add(id, rel)
	return rel, nil
}

// FindAttachment reports an existing artifact whose file name contains the
// attachment id. Lookups are cached; a cold miss scans the attachment
// directory once.
func (v *Vault) FindAttachment(id string) (string, bool) {
	if rel, ok := v.cache.Get(id); ok {
		return rel, true
	}

	entries, err := os.ReadDir(filepath.Join(v.root, filepath.FromSlash(v.attachmentDir)))
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() || !strings.Contains(e.Name(), id) {
			continue
		}
		rel := path.Join(v.attachmentDir, e.Name())
		v.cache.Add(id, rel)
		return rel, true
	}
	return "", false
}

// ReadDocument returns the full content of the document at the given
// vault-relative path.
func (v *Vault) ReadDocument(p string) (string, error) {
	data, err := os.ReadFile(filepath.Join(v.root, filepath.FromSlash(p)))
	if err != nil {
		return "", fmt.Errorf("failed to read document %s: %w", p, err)
	}
	return string(data), nil
}

// WriteBody replaces the body of the document at the given vault-relative
// path, keeping an existing YAML frontmatter block intact. A missing
// document is created with the body alone.
func (v *Vault) WriteBody(p, body string) error {
	abs := filepath.Join(v.root, filepath.FromSlash(p))

	content := strings.TrimRight(body, "\n") + "\n"
	if existing, err := os.ReadFile(abs); err == nil {
		if front, _ := splitFrontmatter(string(existing)); front != "" {
			content = front + "\n" + content
		}
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("failed to create document dir: %w", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", p, err)
	}
	return nil
}
