package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"mailmate/internal/model"
)

type InMemoryUserRepository struct {
	users map[string]*model.User
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.GoogleID == googleID {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return errors.New("user not found")
	}
	r.users[user.ID] = user
	return nil
}

type InMemoryEmailRepository struct {
	emails map[string]*model.Email
	mutex  sync.RWMutex
}

func NewInMemoryEmailRepository() *InMemoryEmailRepository {
	return &InMemoryEmailRepository{
		emails: make(map[string]*model.Email),
	}
}

func (r *InMemoryEmailRepository) Create(ctx context.Context, email *model.Email) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.emails {
		if existing.UserID == email.UserID && existing.MessageID == email.MessageID {
			return errors.New("email already exists")
		}
	}
	r.emails[email.ID] = email
	return nil
}

func (r *InMemoryEmailRepository) FindByID(ctx context.Context, id string) (*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	email, exists := r.emails[id]
	if !exists {
		return nil, errors.New("email not found")
	}
	return email, nil
}

func (r *InMemoryEmailRepository) FindByMessageID(ctx context.Context, userID, messageID string) (*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, email := range r.emails {
		if email.UserID == userID && email.MessageID == messageID {
			return email, nil
		}
	}
	return nil, errors.New("email not found")
}

func (r *InMemoryEmailRepository) FindUnprocessed(ctx context.Context, userID string) ([]*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var out []*model.Email
	for _, email := range r.emails {
		if email.UserID == userID && !email.Processed() {
			out = append(out, email)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	return out, nil
}

func (r *InMemoryEmailRepository) FindProcessed(ctx context.Context, userID, category string) ([]*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var out []*model.Email
	for _, email := range r.emails {
		if email.UserID != userID || !email.Processed() {
			continue
		}
		if category != "" && !strings.EqualFold(*email.Category, category) {
			continue
		}
		out = append(out, email)
	}
	sort.Slice(out, func(i, j int) bool {
		if *out[i].PriorityScore != *out[j].PriorityScore {
			return *out[i].PriorityScore > *out[j].PriorityScore
		}
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})
	return out, nil
}

func (r *InMemoryEmailRepository) Search(ctx context.Context, userID, query string) ([]*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	needle := strings.ToLower(query)
	var out []*model.Email
	for _, email := range r.emails {
		if email.UserID != userID || !email.Processed() {
			continue
		}
		haystack := strings.ToLower(email.Sender + " " + email.Subject + " " + email.Body)
		if strings.Contains(haystack, needle) {
			out = append(out, email)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})
	return out, nil
}

func (r *InMemoryEmailRepository) CountBySender(ctx context.Context, userID, sender string) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	needle := strings.ToLower(sender)
	count := 0
	for _, email := range r.emails {
		if email.UserID == userID && strings.Contains(strings.ToLower(email.Sender), needle) {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryEmailRepository) UpdateEnrichment(ctx context.Context, emailID string, enrichment model.Enrichment) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	email, exists := r.emails[emailID]
	if !exists {
		return errors.New("email not found")
	}
	email.Apply(enrichment)
	email.UpdatedAt = time.Now()
	return nil
}
