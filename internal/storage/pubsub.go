package storage

import "sort"

// Publish appends the message to the channel's in-memory log and returns the
// log length. There is no delivery mechanism: subscribers are out of scope
// and the log exists so tests can assert on what was published.
func (db *DB) Publish(channel, message string) int {
	db.channels[channel] = append(db.channels[channel], message)
	return len(db.channels[channel])
}

// ChannelLog returns a copy of everything published to the channel, in
// publish order.
func (db *DB) ChannelLog(channel string) []string {
	log := db.channels[channel]
	out := make([]string, len(log))
	copy(out, log)
	return out
}

// Channels returns the names of all channels that have received at least one
// message, sorted.
func (db *DB) Channels() []string {
	out := make([]string, 0, len(db.channels))
	for channel := range db.channels {
		out = append(out, channel)
	}
	sort.Strings(out)
	return out
}
