package messages

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/dbx"
	"github.com/whoestate/backend/internal/logging"
	"github.com/whoestate/backend/internal/server/config"
	"github.com/whoestate/backend/internal/server/mailer"
)

type memRepo struct {
	mu        sync.Mutex
	byID      map[string]*Message
	nextID    int
	createErr error
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]*Message{}}
}

func (m *memRepo) Create(ctx context.Context, msg *Message) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	cp := *msg
	cp.ID = "m" + string(rune('0'+m.nextID))
	cp.CreatedAt = time.Now()
	m.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *memRepo) List(ctx context.Context) ([]*Message, error) { return nil, nil }

func (m *memRepo) MarkRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	msg.IsRead = true
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memRepo) WithTx(tx dbx.DBTX) Repository { return m }

type memQueue struct {
	mu   sync.Mutex
	sent []mailer.Mail
}

func (q *memQueue) Enqueue(mail mailer.Mail) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, mail)
}

func newTestService() (*Service, *memRepo, *memQueue) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	repo := newMemRepo()
	mail := &memQueue{}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1})))
	return NewService(repo, mail, logger, cfg), repo, mail
}

func TestCreate_NotifiesAdmin(t *testing.T) {
	svc, _, mail := newTestService()

	created, err := svc.Create(context.Background(), &Message{
		Name: "Carol", Surname: "King", Email: "carol@x.com",
		Phone: 5550001, Message: "Is the Moda flat still available?",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" || created.IsRead {
		t.Fatalf("unexpected stored message: %+v", created)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(mail.sent))
	}
	n := mail.sent[0]
	if n.To != "admin@localhost" {
		t.Fatalf("notification must go to the admin inbox, got %q", n.To)
	}
	if !strings.Contains(n.Body, "carol@x.com") || !strings.Contains(n.Body, "Moda flat") {
		t.Fatalf("notification missing sender context: %q", n.Body)
	}
}

func TestCreate_StoreErrorNoNotification(t *testing.T) {
	svc, repo, mail := newTestService()
	repo.createErr = errors.New("db down")

	_, err := svc.Create(context.Background(), &Message{Name: "Carol"})
	if err == nil {
		t.Fatalf("store error must surface")
	}
	if len(mail.sent) != 0 {
		t.Fatalf("no notification for a failed create")
	}
}

func TestMarkRead(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.Create(context.Background(), &Message{Name: "Carol"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.MarkRead(context.Background(), created.ID); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), created.ID)
	if !got.IsRead {
		t.Fatalf("message must be marked read")
	}

	if err := svc.MarkRead(context.Background(), "missing"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
