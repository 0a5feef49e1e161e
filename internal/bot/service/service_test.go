package botService

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	botRepository "WynwoodBot/internal/bot/repository"
	"WynwoodBot/internal/config"
	"WynwoodBot/pkg/nlu"
	"WynwoodBot/pkg/schedule"
	"WynwoodBot/pkg/utils"

	"github.com/sirupsen/logrus"
)

const (
	ownerChat    = "15550001111@s.whatsapp.net"
	customerChat = "13055550123@s.whatsapp.net"
	customerID   = "13055550123"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ schedule.Clock = (*testClock)(nil)

// openInstant falls inside the default weekday window, closedInstant after
// it, on the same Wednesday.
var (
	openInstant   = time.Date(2026, time.March, 4, 11, 0, 0, 0, time.UTC)
	closedInstant = time.Date(2026, time.March, 4, 20, 0, 0, 0, time.UTC)
)

type fakeOracle struct {
	mu    sync.Mutex
	queue []*nlu.IntentResult
	err   error
	calls int
}

func (o *fakeOracle) push(results ...*nlu.IntentResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queue = append(o.queue, results...)
}

func (o *fakeOracle) DetectIntent(_ context.Context, _, _ string, _ string, _ []string) (*nlu.IntentResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.calls++
	if o.err != nil {
		return nil, o.err
	}
	if len(o.queue) == 0 {
		return &nlu.IntentResult{Intent: nlu.IntentFallback}, nil
	}

	next := o.queue[0]
	o.queue = o.queue[1:]
	return next, nil
}

type sentMessage struct {
	ChatID string
	Text   string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
	seq  int
}

func (s *fakeSender) SendMessage(_ context.Context, chatID, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}
	s.seq++
	s.sent = append(s.sent, sentMessage{ChatID: chatID, Text: message})
	return s.lastIDLocked(), nil
}

func (s *fakeSender) lastIDLocked() string {
	return fmt.Sprintf("out-%d", s.seq)
}

func (s *fakeSender) messages() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMessage(nil), s.sent...)
}

func (s *fakeSender) lastText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1].Text
}

type fakeSentCache struct {
	mu         sync.Mutex
	remembered map[string]bool
	lookupErr  error
}

func newFakeSentCache() *fakeSentCache {
	return &fakeSentCache{remembered: make(map[string]bool)}
}

func (c *fakeSentCache) RememberSent(_ context.Context, messageID string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remembered[messageID] = true
	return nil
}

func (c *fakeSentCache) WasSentByBot(_ context.Context, messageID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lookupErr != nil {
		return false, c.lookupErr
	}
	return c.remembered[messageID], nil
}

type fakeS3 struct {
	mu      sync.Mutex
	uploads []string
}

func (f *fakeS3) UploadBackup(name string, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, name)
	return "https://backups.example.com/" + name, nil
}

type harness struct {
	svc    *botService
	oracle *fakeOracle
	sender *fakeSender
	cache  *fakeSentCache
	s3     *fakeS3
	clock  *testClock
	repo   botRepository.Repository
	cfg    *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	clock := &testClock{now: openInstant}
	dir := t.TempDir()

	cfg := &config.Config{
		OwnerJID:             ownerChat,
		BotName:              "Wynwood Jewelry",
		CommandEmoji:         "\U0001F507",
		OffHours:             24,
		ManualHours:          24,
		CompletedHours:       24,
		CheckIntervalMinutes: 5,
		IdleDays:             30,
		InactiveMonths:       3,
		SentCacheTTL:         time.Hour,
		DataDir:              dir,
		BackupDir:            dir + "/backups",
		BackupIntervalHours:  24,
		BackupKeep:           2,
	}

	oracle := &fakeOracle{}
	sender := &fakeSender{}
	cache := newFakeSentCache()
	s3Client := &fakeS3{}
	repo := botRepository.New(logger, dir, clock)

	svc := New(logger, cfg, repo, oracle, sender, cache, schedule.Default(), clock, utils.New(), s3Client).(*botService)

	return &harness{
		svc:    svc,
		oracle: oracle,
		sender: sender,
		cache:  cache,
		s3:     s3Client,
		clock:  clock,
		repo:   repo,
		cfg:    cfg,
	}
}

func intentOf(name string) *nlu.IntentResult {
	return &nlu.IntentResult{Intent: name}
}

func intentWithSlot(name, slot, value string) *nlu.IntentResult {
	return &nlu.IntentResult{Intent: name, Parameters: map[string]string{slot: value}}
}
