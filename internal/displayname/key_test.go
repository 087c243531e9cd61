package displayname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKey_Normalizes(t *testing.T) {
	a, ok := DeriveKey(PlatformWhatsApp, " Foo ")
	assert.True(t, ok)
	b, ok := DeriveKey(PlatformWhatsApp, "foo")
	assert.True(t, ok)

	assert.Equal(t, a, b)
	assert.Equal(t, Key("whatsapp:foo"), a)
}

func TestDeriveKey_ProtocolAddress(t *testing.T) {
	key, ok := DeriveKey(PlatformWhatsApp, "  4915112345678@S.WHATSAPP.NET\n")

	assert.True(t, ok)
	assert.Equal(t, Key("whatsapp:4915112345678@s.whatsapp.net"), key)
	assert.Equal(t, PlatformWhatsApp, key.Platform())
	assert.Equal(t, "4915112345678@s.whatsapp.net", key.SenderID())
}

func TestDeriveKey_Blank(t *testing.T) {
	for _, id := range []string{"", " ", "\t\n  "} {
		key, ok := DeriveKey(PlatformTelegram, id)
		assert.False(t, ok, "id %q", id)
		assert.Empty(t, key)
	}

	_, ok := DeriveKey("", "alice")
	assert.False(t, ok, "blank platform")
}

func TestDeriveKey_PlatformsDisjoint(t *testing.T) {
	wa, _ := DeriveKey(PlatformWhatsApp, "12345")
	tg, _ := DeriveKey(PlatformTelegram, "12345")

	assert.NotEqual(t, wa, tg)
}

func TestParsePlatform(t *testing.T) {
	p, ok := ParsePlatform(" Telegram ")
	assert.True(t, ok)
	assert.Equal(t, PlatformTelegram, p)

	_, ok = ParsePlatform("myspace")
	assert.False(t, ok)
}
