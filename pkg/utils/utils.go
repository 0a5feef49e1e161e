package utils

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// UserServerSuffix is the WhatsApp domain for direct chats; GroupSuffix
// marks group-addressed conversations.
const (
	UserServerSuffix = "@s.whatsapp.net"
	GroupSuffix      = "@g.us"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NormalizeChatID(raw string) (string, error)
	UserIDFromChatID(chatID string) string
	IsGroupChatID(chatID string) bool
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NormalizeChatID appends the transport domain suffix when the caller gave a
// bare phone number, as owner commands usually do.
func (u *utils) NormalizeChatID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("empty chat id")
	}

	if strings.Contains(trimmed, "@") {
		return trimmed, nil
	}

	return trimmed + UserServerSuffix, nil
}

// UserIDFromChatID strips the domain suffix, leaving the phone number used
// as the session store key.
func (u *utils) UserIDFromChatID(chatID string) string {
	if idx := strings.Index(chatID, "@"); idx >= 0 {
		return chatID[:idx]
	}
	return chatID
}

func (u *utils) IsGroupChatID(chatID string) bool {
	return strings.HasSuffix(chatID, GroupSuffix)
}
