package navtree

import (
	"strconv"
	"strings"
)

// Key names one of the localized UI strings shown next to the viewer's
// synchronization toggle.
type Key int

const (
	// SyncOn is shown while the sidebar follows the page (SYNCONMSG).
	SyncOn Key = iota + 1
	// SyncOff is shown while it does not (SYNCOFFMSG).
	SyncOff
)

// Declaration names used in navtreedata.js.
const (
	declTree    = "NAVTREE"
	declIndex   = "NAVTREEINDEX"
	declSyncOn  = "SYNCONMSG"
	declSyncOff = "SYNCOFFMSG"
)

func (k Key) String() string {
	switch k {
	case SyncOn:
		return "sync-on"
	case SyncOff:
		return "sync-off"
	default:
		return "Key(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKey accepts the CLI names (sync-on, sync-off) and the declaration
// names (SYNCONMSG, SYNCOFFMSG), case-insensitively.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sync-on", "syncon", "synconmsg":
		return SyncOn, nil
	case "sync-off", "syncoff", "syncoffmsg":
		return SyncOff, nil
	}
	return 0, &UnknownKeyError{Key: s}
}

// Strings holds the two toggle messages.
type Strings struct {
	SyncOn  string `json:"sync_on" yaml:"sync_on"`
	SyncOff string `json:"sync_off" yaml:"sync_off"`
}

// Get returns the message for key.
func (s Strings) Get(key Key) (string, error) {
	switch key {
	case SyncOn:
		return s.SyncOn, nil
	case SyncOff:
		return s.SyncOff, nil
	}
	return "", &UnknownKeyError{Key: key.String()}
}
