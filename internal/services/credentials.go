package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"campus-portal-backend/internal/models"
)

// CredentialRecord is a seed account. Password is plaintext only until the
// record is loaded into a CredentialStore.
type CredentialRecord struct {
	User     models.User
	Password string
}

type storedCredential struct {
	user         models.User
	passwordHash []byte
}

// CredentialStore is a fixed, compiled-in list of accounts checked by linear
// scan. It hashes every seed password on construction.
type CredentialStore struct {
	records []storedCredential
}

func NewCredentialStore(seed []CredentialRecord, cost int) (*CredentialStore, error) {
	records := make([]storedCredential, 0, len(seed))
	for _, rec := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(rec.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", rec.User.Email, err)
		}
		records = append(records, storedCredential{user: rec.User, passwordHash: hash})
	}
	return &CredentialStore{records: records}, nil
}

// Check returns the account whose email matches exactly (case-sensitive) and
// whose password verifies, or a NotFoundError.
func (s *CredentialStore) Check(email, password string) (*models.User, error) {
	for _, rec := range s.records {
		if rec.user.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)) == nil {
			user := rec.user
			return &user, nil
		}
	}
	return nil, &NotFoundError{Message: "Invalid credentials"}
}

// DefaultCredentials are the sample campus accounts.
func DefaultCredentials() []CredentialRecord {
	return []CredentialRecord{
		{User: models.User{ID: "1", Name: "Rahul Kumar", Email: "rahul@site.ac.in", Role: "student"}, Password: "password123"},
		{User: models.User{ID: "2", Name: "Priya Sharma", Email: "priya@site.ac.in", Role: "student"}, Password: "password123"},
		{User: models.User{ID: "3", Name: "Amit Patel", Email: "amit@site.ac.in", Role: "student"}, Password: "password123"},
	}
}
