package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/auth-api/internal/model"
)

// fakeUserRepo is an in-memory UserRepository mirroring the mongo semantics
// the usecases rely on: ErrNoDocuments on misses and a duplicate-key write
// exception on email collisions.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key error"}},
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Tokens == nil {
		user.Tokens = []model.SessionToken{}
	}

	f.users[user.ID.Hex()] = user
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) SetResetPasswordToken(_ context.Context, email, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			user.ResetPassToken = token
			user.ResetPassTokenExpiresAt = &expiresAt
			return nil
		}
	}

	return mongo.ErrNoDocuments
}

func (f *fakeUserRepo) ConsumeResetPasswordToken(_ context.Context, token, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ResetPassToken == token && user.ResetPassToken != "" &&
			user.ResetPassTokenExpiresAt != nil && user.ResetPassTokenExpiresAt.After(time.Now()) {
			user.PasswordHash = passwordHash
			user.ResetPassToken = ""
			user.ResetPassTokenExpiresAt = nil

			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

// expireResetToken rewinds the stored reset token expiry, simulating the
// passage of time past the reset TTL.
func (f *fakeUserRepo) expireResetToken(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			past := time.Now().Add(-time.Minute)
			user.ResetPassTokenExpiresAt = &past
		}
	}
}

func (f *fakeUserRepo) resetTokenFor(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return user.ResetPassToken
		}
	}

	return ""
}

// fakeSessionRepo operates on the token lists of a fakeUserRepo, matching the
// single-document array updates of the mongo implementation.
type fakeSessionRepo struct {
	users *fakeUserRepo
}

func newFakeSessionRepo(users *fakeUserRepo) *fakeSessionRepo {
	return &fakeSessionRepo{users: users}
}

func (f *fakeSessionRepo) AddSession(_ context.Context, userID string, session model.SessionToken) error {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()

	user, ok := f.users.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}

	user.Tokens = append(user.Tokens, session)
	return nil
}

func (f *fakeSessionRepo) ExpireSession(_ context.Context, userID, token string) (*model.SessionToken, error) {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()

	user, ok := f.users.users[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	for i := range user.Tokens {
		if user.Tokens[i].Token == token {
			now := time.Now()
			user.Tokens[i].IsExpired = true
			user.Tokens[i].ExpiredAt = &now
			user.Tokens[i].ExpiresAt = nil

			expired := user.Tokens[i]
			expired.ID = ""
			return &expired, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeSessionRepo) ExpireAllSessions(_ context.Context, userID string) ([]model.SessionToken, error) {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()

	user, ok := f.users.users[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	now := time.Now()
	tokens := make([]model.SessionToken, 0, len(user.Tokens))
	for i := range user.Tokens {
		user.Tokens[i].IsExpired = true
		user.Tokens[i].ExpiredAt = &now
		user.Tokens[i].ExpiresAt = nil

		expired := user.Tokens[i]
		expired.ID = ""
		tokens = append(tokens, expired)
	}

	return tokens, nil
}

func (f *fakeSessionRepo) DeleteDefaultExpired(_ context.Context, userID string, now time.Time) error {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()

	user, ok := f.users.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}

	kept := user.Tokens[:0]
	for _, t := range user.Tokens {
		if t.ExpiresAt != nil && t.ExpiresAt.Before(now) && !t.IsExpired {
			continue
		}
		kept = append(kept, t)
	}
	user.Tokens = kept

	return nil
}

func (f *fakeSessionRepo) ListActiveSessions(_ context.Context, userID string) ([]model.SessionToken, error) {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()

	user, ok := f.users.users[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	active := make([]model.SessionToken, 0, len(user.Tokens))
	for _, t := range user.Tokens {
		if t.IsExpired {
			continue
		}
		t.ID = ""
		active = append(active, t)
	}

	return active, nil
}

// fakeNotifier records dispatched reset links.
type fakeNotifier struct {
	mu    sync.Mutex
	sent  []string
	links []string
	err   error
}

func (f *fakeNotifier) SendPasswordResetLink(_ context.Context, email, resetLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, email)
	f.links = append(f.links, resetLink)
	return nil
}
