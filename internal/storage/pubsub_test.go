package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishAppendsToLog(t *testing.T) {
	db, _ := newTestDB(t)

	assert.Equal(t, 1, db.Publish("news", "first"))
	assert.Equal(t, 2, db.Publish("news", "second"))
	assert.Equal(t, 1, db.Publish("sports", "kickoff"))

	assert.Equal(t, []string{"first", "second"}, db.ChannelLog("news"))
	assert.Equal(t, []string{"news", "sports"}, db.Channels())
	assert.Empty(t, db.ChannelLog("missing"))
}

func TestChannelLogReturnsCopy(t *testing.T) {
	db, _ := newTestDB(t)

	db.Publish("c", "msg")
	log := db.ChannelLog("c")
	log[0] = "tampered"

	assert.Equal(t, []string{"msg"}, db.ChannelLog("c"))
}
