package botService

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type backupState struct {
	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func newBackupState() *backupState {
	return &backupState{}
}

func (b *backupState) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		close(b.done)
		b.running = false
	}
}

// StartBackups runs the periodic snapshot copy. Best-effort by design: a
// failed backup never touches the message path.
func (s *botService) StartBackups() {
	b := s.backups
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.done = make(chan struct{})
	done := b.done
	b.mu.Unlock()

	interval := time.Duration(s.cfg.BackupIntervalHours) * time.Hour

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runBackup()
			case <-done:
				return
			}
		}
	}()
}

func (s *botService) runBackup() {
	stamp := s.clock.Now().Format("20060102-150405")

	for _, name := range []string{"sessions.json", "disables.json"} {
		src := filepath.Join(s.cfg.DataDir, name)
		data, err := os.ReadFile(src)
		if err != nil {
			if !os.IsNotExist(err) {
				s.log.WithFields(logrus.Fields{
					"file":  src,
					"error": err.Error(),
				}).Warn("Backup read failed")
			}
			continue
		}

		backupName := fmt.Sprintf("%s.%s", name, stamp)
		dst := filepath.Join(s.cfg.BackupDir, backupName)
		if err := os.MkdirAll(s.cfg.BackupDir, 0o755); err != nil {
			s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Backup dir creation failed")
			return
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			s.log.WithFields(logrus.Fields{
				"file":  dst,
				"error": err.Error(),
			}).Warn("Backup write failed")
			continue
		}

		if s.cfg.BackupToS3 && s.s3Client != nil {
			if _, err := s.s3Client.UploadBackup(backupName, data); err != nil {
				s.log.WithFields(logrus.Fields{
					"file":  backupName,
					"error": err.Error(),
				}).Warn("S3 backup upload failed")
			}
		}

		s.rotateBackups(name)
	}

	s.log.WithFields(logrus.Fields{"stamp": stamp}).Info("Snapshot backup finished")
}

// rotateBackups keeps the newest BackupKeep copies of one snapshot file.
func (s *botService) rotateBackups(name string) {
	entries, err := os.ReadDir(s.cfg.BackupDir)
	if err != nil {
		return
	}

	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), name+".") {
			matches = append(matches, entry.Name())
		}
	}

	if len(matches) <= s.cfg.BackupKeep {
		return
	}

	// Timestamped suffixes sort chronologically.
	sort.Strings(matches)
	for _, stale := range matches[:len(matches)-s.cfg.BackupKeep] {
		if err := os.Remove(filepath.Join(s.cfg.BackupDir, stale)); err != nil {
			s.log.WithFields(logrus.Fields{
				"file":  stale,
				"error": err.Error(),
			}).Warn("Backup rotation failed")
		}
	}
}
