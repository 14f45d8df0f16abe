package auth

import "sync"

// IdentityContext is the shared current-identity cell. It replaces a bare
// process global with an injectable object so handlers and tests can carry
// their own instance.
type IdentityContext struct {
	mu      sync.RWMutex
	current *Identity
}

// NewIdentityContext creates an empty identity context.
func NewIdentityContext() *IdentityContext {
	return &IdentityContext{}
}

// Current returns the signed-in identity, or nil.
func (c *IdentityContext) Current() *Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set replaces the current identity.
func (c *IdentityContext) Set(identity *Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = identity
}

// Clear removes the current identity. Returns the identity that was
// cleared, or nil.
func (c *IdentityContext) Clear() *Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	cleared := c.current
	c.current = nil
	return cleared
}
