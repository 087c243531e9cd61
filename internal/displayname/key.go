// Package displayname stores the display names chat users pick for themselves
// and recognizes the commands they use to pick them.
package displayname

import "strings"

// Platform identifies the chat network a sender belongs to.
type Platform string

// Known platforms. Tags are disjoint so keys never collide across networks.
const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformTelegram Platform = "telegram"
	PlatformSignal   Platform = "signal"
	PlatformDiscord  Platform = "discord"
	PlatformSlack    Platform = "slack"
	PlatformIMessage Platform = "imessage"
)

// Platforms lists every known platform.
var Platforms = []Platform{
	PlatformWhatsApp,
	PlatformTelegram,
	PlatformSignal,
	PlatformDiscord,
	PlatformSlack,
	PlatformIMessage,
}

// ParsePlatform returns the known platform matching s, ignoring case.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Platforms {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// Key is the storage key for one sender on one platform: "<platform>:<id>".
type Key string

// keySeparator joins the platform tag and the normalized sender id.
const keySeparator = ":"

// DeriveKey builds the storage key for a sender. The sender id is trimmed and
// lowercased so the same person maps to one key whatever transport formatted
// the id. It reports false when the sender id or platform is blank, in which
// case the key must not be used.
func DeriveKey(platform Platform, senderID string) (Key, bool) {
	id := strings.ToLower(strings.TrimSpace(senderID))
	if id == "" || platform == "" {
		return "", false
	}
	return Key(string(platform) + keySeparator + id), true
}

// Platform returns the platform part of the key.
func (k Key) Platform() Platform {
	p, _, _ := strings.Cut(string(k), keySeparator)
	return Platform(p)
}

// SenderID returns the normalized sender id part of the key.
func (k Key) SenderID() string {
	_, id, _ := strings.Cut(string(k), keySeparator)
	return id
}
