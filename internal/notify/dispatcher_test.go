package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// chanSender reports each delivery on a channel so tests can wait for the
// detached goroutine.
type chanSender struct {
	sent chan Job
	err  error
}

func (s *chanSender) Send(to, subject, body string) error {
	s.sent <- Job{To: to, Subject: subject, Body: body}
	return s.err
}

func TestDispatcher_DirectSendWithoutRedis(t *testing.T) {
	sender := &chanSender{sent: make(chan Job, 1)}
	d := NewDispatcher(nil, sender)

	d.Dispatch("user@example.com", "Confirm your registration", "<p>hi</p>")

	select {
	case job := <-sender.sent:
		assert.Equal(t, "user@example.com", job.To)
		assert.Equal(t, "Confirm your registration", job.Subject)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch never reached the sender")
	}
}

func TestDispatcher_DispatchDoesNotBlockOnFailure(t *testing.T) {
	sender := &chanSender{sent: make(chan Job, 1), err: errors.New("smtp down")}
	d := NewDispatcher(nil, sender)

	done := make(chan struct{})
	go func() {
		// Must return immediately regardless of the sender's fate.
		d.Dispatch("user@example.com", "subject", "body")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked the caller")
	}

	select {
	case <-sender.sent:
		// Failure stayed inside the dispatcher, only logged.
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch never reached the sender")
	}
}

func TestVerificationEmail(t *testing.T) {
	subject, body := VerificationEmail("http://localhost:8080", "dG9rZW4=")

	assert.NotEmpty(t, subject)
	assert.Contains(t, body, "http://localhost:8080/api/auth/verify/dG9rZW4=")
}
