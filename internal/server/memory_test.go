package server_test

import (
	"context"
	"sync"
	"time"

	"bookly/internal/domain/model"
	repo "bookly/internal/repository"

	"github.com/google/uuid"
)

// テスト用のインメモリストア

type memStore struct {
	mu      sync.Mutex
	users   map[string]*model.User
	books   []*model.Book
	tags    []*model.Tag
	bookTag map[uuid.UUID][]uuid.UUID
	reviews []*model.Review
	revoked map[string]bool
	now     time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*model.User{},
		bookTag: map[uuid.UUID][]uuid.UUID{},
		revoked: map[string]bool{},
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

// users

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Email]; ok {
		return repo.ErrDuplicate
	}
	if u.UID == uuid.Nil {
		u.UID = uuid.New()
	}
	u.CreatedAt = r.s.tick()
	cp := *u
	r.s.users[u.Email] = &cp
	return nil
}

func (r memUsers) FindByUID(_ context.Context, uid uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.UID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) FindWithRelations(ctx context.Context, email string) (*model.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.books {
		if b.UserUID != nil && *b.UserUID == u.UID {
			u.Books = append(u.Books, *b)
		}
	}
	for _, rv := range r.s.reviews {
		if rv.UserUID != nil && *rv.UserUID == u.UID {
			u.Reviews = append(u.Reviews, *rv)
		}
	}
	return u, nil
}

func (r memUsers) Update(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Email]; !ok {
		return repo.ErrUserNotFound
	}
	cp := *u
	r.s.users[u.Email] = &cp
	return nil
}

// books

type memBooks struct{ s *memStore }

func (r memBooks) List(_ context.Context) ([]model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Book{}
	for i := len(r.s.books) - 1; i >= 0; i-- {
		out = append(out, *r.s.books[i])
	}
	return out, nil
}

func (r memBooks) ListByUser(ctx context.Context, userUID uuid.UUID) ([]model.Book, error) {
	all, _ := r.List(ctx)
	out := []model.Book{}
	for _, b := range all {
		if b.UserUID != nil && *b.UserUID == userUID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r memBooks) FindByUID(_ context.Context, uid uuid.UUID) (*model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.books {
		if b.UID == uid {
			cp := *b
			cp.Tags = nil
			for _, tid := range r.s.bookTag[uid] {
				for _, t := range r.s.tags {
					if t.UID == tid {
						cp.Tags = append(cp.Tags, *t)
					}
				}
			}
			for _, rv := range r.s.reviews {
				if rv.BookUID != nil && *rv.BookUID == uid {
					cp.Reviews = append(cp.Reviews, *rv)
				}
			}
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memBooks) Create(_ context.Context, b *model.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.UID == uuid.Nil {
		b.UID = uuid.New()
	}
	b.CreatedAt = r.s.tick()
	cp := *b
	r.s.books = append(r.s.books, &cp)
	return nil
}

func (r memBooks) Update(ctx context.Context, uid uuid.UUID, p repo.BookPatch) (*model.Book, error) {
	r.s.mu.Lock()
	var found *model.Book
	for _, b := range r.s.books {
		if b.UID == uid {
			found = b
		}
	}
	if found == nil {
		r.s.mu.Unlock()
		return nil, repo.ErrNotFound
	}
	if p.Title != nil {
		found.Title = *p.Title
	}
	if p.Author != nil {
		found.Author = *p.Author
	}
	if p.PageCount != nil {
		found.PageCount = *p.PageCount
	}
	r.s.mu.Unlock()
	return r.FindByUID(ctx, uid)
}

func (r memBooks) Delete(_ context.Context, uid uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, b := range r.s.books {
		if b.UID == uid {
			r.s.books = append(r.s.books[:i], r.s.books[i+1:]...)
			delete(r.s.bookTag, uid)
			return nil
		}
	}
	return repo.ErrNotFound
}

// tags

type memTags struct{ s *memStore }

func (r memTags) List(_ context.Context) ([]model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Tag{}
	for i := len(r.s.tags) - 1; i >= 0; i-- {
		out = append(out, *r.s.tags[i])
	}
	return out, nil
}

func (r memTags) FindByUID(_ context.Context, uid uuid.UUID) (*model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tags {
		if t.UID == uid {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memTags) FindByName(_ context.Context, name string) (*model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tags {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memTags) Create(_ context.Context, t *model.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.tags {
		if x.Name == t.Name {
			return repo.ErrDuplicate
		}
	}
	if t.UID == uuid.Nil {
		t.UID = uuid.New()
	}
	t.CreatedAt = r.s.tick()
	cp := *t
	r.s.tags = append(r.s.tags, &cp)
	return nil
}

func (r memTags) Rename(ctx context.Context, uid uuid.UUID, name string) (*model.Tag, error) {
	r.s.mu.Lock()
	for _, t := range r.s.tags {
		if t.Name == name && t.UID != uid {
			r.s.mu.Unlock()
			return nil, repo.ErrDuplicate
		}
	}
	for _, t := range r.s.tags {
		if t.UID == uid {
			t.Name = name
			r.s.mu.Unlock()
			return r.FindByUID(ctx, uid)
		}
	}
	r.s.mu.Unlock()
	return nil, repo.ErrNotFound
}

func (r memTags) Delete(_ context.Context, uid uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, t := range r.s.tags {
		if t.UID == uid {
			r.s.tags = append(r.s.tags[:i], r.s.tags[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r memTags) AttachToBook(_ context.Context, bookUID uuid.UUID, tags []model.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range tags {
		exists := false
		for _, id := range r.s.bookTag[bookUID] {
			if id == t.UID {
				exists = true
			}
		}
		if !exists {
			r.s.bookTag[bookUID] = append(r.s.bookTag[bookUID], t.UID)
		}
	}
	return nil
}

// reviews

type memReviews struct{ s *memStore }

func (r memReviews) List(_ context.Context) ([]model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Review{}
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		out = append(out, *r.s.reviews[i])
	}
	return out, nil
}

func (r memReviews) FindByUID(_ context.Context, uid uuid.UUID) (*model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.UID == uid {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memReviews) Create(_ context.Context, rv *model.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rv.UID == uuid.Nil {
		rv.UID = uuid.New()
	}
	rv.CreatedAt = r.s.tick()
	cp := *rv
	r.s.reviews = append(r.s.reviews, &cp)
	return nil
}

func (r memReviews) Delete(_ context.Context, uid uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, rv := range r.s.reviews {
		if rv.UID == uid {
			r.s.reviews = append(r.s.reviews[:i], r.s.reviews[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

// tx / blocklist

type memTx struct{ s *memStore }

type memTxRepos struct{ s *memStore }

func (r memTxRepos) Books() repo.BookRepository { return memBooks{r.s} }
func (r memTxRepos) Tags() repo.TagRepository   { return memTags{r.s} }

func (m memTx) WithinTx(_ context.Context, fn func(r repo.TxRepos) error) error {
	return fn(memTxRepos{m.s})
}

type memBlocklist struct{ s *memStore }

func (b memBlocklist) Revoke(_ context.Context, jti string) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	b.s.revoked[jti] = true
	return nil
}

func (b memBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return b.s.revoked[jti], nil
}

// 送ったメールを記録する
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

func (m *recordingMailer) SendEmail(_ context.Context, to []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}
