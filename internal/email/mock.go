package email

import (
	"context"
	"fmt"
	"sync"
)

// MockSender implements Sender for testing.
// It records sent emails and can be told to fail.
type MockSender struct {
	mu   sync.Mutex
	Sent []*Email

	// SendErr, when set, is returned by Send.
	SendErr error
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(ctx context.Context, email *Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return "", m.SendErr
	}
	m.Sent = append(m.Sent, email)
	return fmt.Sprintf("mock-%d", len(m.Sent)), nil
}

// Count returns how many emails were sent.
func (m *MockSender) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// Last returns the most recently sent email, or nil.
func (m *MockSender) Last() *Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	return m.Sent[len(m.Sent)-1]
}
