package usecase

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"
)

const (
	AdminEmail    = "admin@crm.com"
	AdminPassword = "password123"
)

// Authenticate accepts only the fixed credential pair.
func Authenticate(email, password string) bool {
	e := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(email)), []byte(AdminEmail))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(AdminPassword))
	return e&p == 1
}

// Login persists the authenticated flag when the credentials match.
func (f *Funnel) Login(ctx context.Context, email, password string) (bool, error) {
	if !Authenticate(email, password) {
		log.Printf("[AUTH] tentativa de login rejeitada para %q", email)
		return false, nil
	}
	if err := f.setAuthenticated(ctx, true); err != nil {
		return false, err
	}
	return true, nil
}

func (f *Funnel) Logout(ctx context.Context) error {
	return f.setAuthenticated(ctx, false)
}

func (f *Funnel) setAuthenticated(ctx context.Context, v bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.persist(ctx, SlotAuthenticated, v); err != nil {
		return err
	}
	f.state.Authenticated = v
	return nil
}
