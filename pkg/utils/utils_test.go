package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeChatID(t *testing.T) {
	u := New()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare number gets the user suffix", "13055550123", "13055550123@s.whatsapp.net", false},
		{"full jid passes through", "13055550123@s.whatsapp.net", "13055550123@s.whatsapp.net", false},
		{"group jid passes through", "120363000000000000@g.us", "120363000000000000@g.us", false},
		{"surrounding whitespace trimmed", "  13055550123  ", "13055550123@s.whatsapp.net", false},
		{"empty input", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.NormalizeChatID(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserIDFromChatID(t *testing.T) {
	u := New()

	assert.Equal(t, "13055550123", u.UserIDFromChatID("13055550123@s.whatsapp.net"))
	assert.Equal(t, "13055550123", u.UserIDFromChatID("13055550123"))
}

func TestIsGroupChatID(t *testing.T) {
	u := New()

	assert.True(t, u.IsGroupChatID("120363000000000000@g.us"))
	assert.False(t, u.IsGroupChatID("13055550123@s.whatsapp.net"))
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	id, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.Len(t, id, 26)
}
