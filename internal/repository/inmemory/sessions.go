package inmemory

import (
	"sync"
	"time"

	authdomain "pg-connect/internal/domain/auth"
)

// sweepInterval spaces out full scans for expired sessions.
const sweepInterval = time.Minute

type SessionStore struct {
	mu        sync.RWMutex
	items     map[string]sessionItem
	now       func() time.Time
	lastSweep time.Time
}

type sessionItem struct {
	value     authdomain.Session
	expiresAt time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		items: make(map[string]sessionItem),
		now:   time.Now,
	}
}

func (c *SessionStore) Get(token string) (*authdomain.Session, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[token]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[token]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, token)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *SessionStore) Set(session *authdomain.Session, ttl time.Duration) {
	if session == nil {
		return
	}
	if ttl <= 0 {
		c.Delete(session.Token)
		return
	}

	now := c.now()
	c.mu.Lock()
	if now.Sub(c.lastSweep) >= sweepInterval {
		c.sweepLocked(now)
	}
	c.items[session.Token] = sessionItem{
		value:     *session,
		expiresAt: now.Add(ttl),
	}
	c.mu.Unlock()
}

// sweepLocked drops expired sessions whose tokens were never presented again.
func (c *SessionStore) sweepLocked(now time.Time) {
	for token, item := range c.items {
		if !item.expiresAt.After(now) {
			delete(c.items, token)
		}
	}
	c.lastSweep = now
}

// Update keeps the existing expiry.
func (c *SessionStore) Update(token string, fn func(*authdomain.Session)) (*authdomain.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[token]
	if !ok || !item.expiresAt.After(c.now()) {
		delete(c.items, token)
		return nil, false
	}
	fn(&item.value)
	item.value.Token = token
	c.items[token] = item

	value := item.value
	return &value, true
}

func (c *SessionStore) Delete(token string) {
	c.mu.Lock()
	delete(c.items, token)
	c.mu.Unlock()
}

func (c *SessionStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
