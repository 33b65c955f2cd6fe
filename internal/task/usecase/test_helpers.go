package usecase

import (
	"context"
	"sync"
	"time"

	"dida-sync/internal/model"
	"dida-sync/internal/task/repository"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock source for testing
type mockSource struct {
	open          []model.Task
	completed     []model.Task
	openErr       error
	completedErr  error
	attachments   map[string][]byte // keyed by attachment id
	downloadErr   map[string]error  // per attachment id
	mu            sync.Mutex
	downloadCalls []repository.DownloadAttachmentOptions
}

func (m *mockSource) FetchOpenItems(ctx context.Context) ([]model.Task, error) {
	return m.open, m.openErr
}

func (m *mockSource) FetchCompletedItems(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	return m.completed, m.completedErr
}

func (m *mockSource) DownloadAttachment(ctx context.Context, opt repository.DownloadAttachmentOptions) ([]byte, error) {
	m.mu.Lock()
	m.downloadCalls = append(m.downloadCalls, opt)
	m.mu.Unlock()

	if err, ok := m.downloadErr[opt.AttachmentID]; ok {
		return nil, err
	}
	return m.attachments[opt.AttachmentID], nil
}

func (m *mockSource) downloadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.downloadCalls)
}

// Mock vault for testing
type mockVault struct {
	mu       sync.Mutex
	existing map[string]string // attachment id -> vault-relative path
	saved    map[string][]byte // attachment id -> bytes
	docs     map[string]string // document path -> body
	saveErr  error
	writeErr error
}

func newMockVault() *mockVault {
	return &mockVault{
		existing: map[string]string{},
		saved:    map[string][]byte{},
		docs:     map[string]string{},
	}
}

func (m *mockVault) FindAttachment(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.existing[id]
	return p, ok
}

func (m *mockVault) SaveAttachment(id, fileName string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return "", m.saveErr
	}
	p := "attachments/" + id
	m.saved[id] = data
	m.existing[id] = p
	return p, nil
}

func (m *mockVault) WriteBody(path, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.docs[path] = body
	return nil
}
