package usecase

import (
	"dida-sync/internal/markdown"
	"dida-sync/internal/task/repository"
	pkgLog "dida-sync/pkg/log"
)

// Vault is the local store the sync writes into: attachment artifacts plus
// the target markdown document.
type Vault interface {
	// FindAttachment reports an existing artifact for the attachment id and
	// its vault-relative path.
	FindAttachment(id string) (string, bool)
	// SaveAttachment materializes attachment bytes and returns the
	// vault-relative path of the artifact.
	SaveAttachment(id, fileName string, data []byte) (string, error)
	// WriteBody replaces the body of the document at the given vault-relative
	// path, preserving any frontmatter block.
	WriteBody(path, body string) error
}

type implUseCase struct {
	l                 pkgLog.Logger
	facade            *repository.Facade
	vault             Vault
	renderer          *markdown.Renderer
	windowDays        int
	disableAutoAction bool
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	facade *repository.Facade,
	vault Vault,
	renderer *markdown.Renderer,
	windowDays int,
	disableAutoAction bool,
) *implUseCase {
	return &implUseCase{
		l:                 l,
		facade:            facade,
		vault:             vault,
		renderer:          renderer,
		windowDays:        windowDays,
		disableAutoAction: disableAutoAction,
	}
}
