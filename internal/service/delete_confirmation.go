package service

import "sync"

// deleteKey identifies one armed deletion: a record of one kind, addressed
// by one session. Arming is never shared between sessions or records.
type deleteKey struct {
	sessionID int64
	kind      string
	recordID  int64
}

// deleteConfirmer implements the two-step delete protocol shared by the
// record services. The first call for a key arms the deletion; the second
// call consumes the armed state and allows execution. State is in-memory
// only and lost on restart, which simply requires re-arming.
type deleteConfirmer struct {
	mu    sync.Mutex
	armed map[deleteKey]struct{}
}

func newDeleteConfirmer() *deleteConfirmer {
	return &deleteConfirmer{armed: make(map[deleteKey]struct{})}
}

// confirm reports whether the deletion identified by the key was already
// armed. A previously armed key is consumed; an unarmed key becomes armed
// and false is returned.
func (c *deleteConfirmer) confirm(sessionID int64, kind string, recordID int64) bool {
	key := deleteKey{sessionID: sessionID, kind: kind, recordID: recordID}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.armed[key]; ok {
		delete(c.armed, key)
		return true
	}

	c.armed[key] = struct{}{}
	return false
}
