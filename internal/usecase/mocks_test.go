package usecase_test

import (
	"context"
	"time"

	"bookly/internal/domain/model"
	repo "bookly/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByUID(ctx context.Context, uid uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, uid)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindWithRelations(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *HasherMock) Verify(plain string, hashed string) bool {
	args := m.Called(plain, hashed)
	return args.Bool(0)
}

type TokenIssuerMock struct{ mock.Mock }

func (m *TokenIssuerMock) Encode(identity map[string]any, expiry time.Duration, refresh bool) (string, error) {
	args := m.Called(identity, expiry, refresh)
	return args.String(0), args.Error(1)
}

type LinkCodecMock struct{ mock.Mock }

func (m *LinkCodecMock) Encode(data map[string]string) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

func (m *LinkCodecMock) Decode(raw string, maxAge time.Duration) (map[string]string, error) {
	args := m.Called(raw, maxAge)
	d, _ := args.Get(0).(map[string]string)
	return d, args.Error(1)
}

type BlocklistMock struct{ mock.Mock }

func (m *BlocklistMock) Revoke(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *BlocklistMock) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type MailerMock struct{ mock.Mock }

func (m *MailerMock) SendEmail(ctx context.Context, recipients []string, subject, body string) error {
	args := m.Called(ctx, recipients, subject, body)
	return args.Error(0)
}

type BookRepoMock struct{ mock.Mock }

func (m *BookRepoMock) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) ListByUser(ctx context.Context, userUID uuid.UUID) ([]model.Book, error) {
	args := m.Called(ctx, userUID)
	b, _ := args.Get(0).([]model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) FindByUID(ctx context.Context, uid uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, uid)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) Create(ctx context.Context, b *model.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookRepoMock) Update(ctx context.Context, uid uuid.UUID, patch repo.BookPatch) (*model.Book, error) {
	args := m.Called(ctx, uid, patch)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

type TagRepoMock struct{ mock.Mock }

func (m *TagRepoMock) List(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]model.Tag)
	return t, args.Error(1)
}

func (m *TagRepoMock) FindByUID(ctx context.Context, uid uuid.UUID) (*model.Tag, error) {
	args := m.Called(ctx, uid)
	t, _ := args.Get(0).(*model.Tag)
	return t, args.Error(1)
}

func (m *TagRepoMock) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	args := m.Called(ctx, name)
	t, _ := args.Get(0).(*model.Tag)
	return t, args.Error(1)
}

func (m *TagRepoMock) Create(ctx context.Context, t *model.Tag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TagRepoMock) Rename(ctx context.Context, uid uuid.UUID, name string) (*model.Tag, error) {
	args := m.Called(ctx, uid, name)
	t, _ := args.Get(0).(*model.Tag)
	return t, args.Error(1)
}

func (m *TagRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *TagRepoMock) AttachToBook(ctx context.Context, bookUID uuid.UUID, tags []model.Tag) error {
	args := m.Called(ctx, bookUID, tags)
	return args.Error(0)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) List(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) FindByUID(ctx context.Context, uid uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, uid)
	r, _ := args.Get(0).(*model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) Create(ctx context.Context, r *model.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *ReviewRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// txはそのまま同じmockを渡す
type fakeTx struct {
	books *BookRepoMock
	tags  *TagRepoMock
}

func (f *fakeTx) Books() repo.BookRepository { return f.books }
func (f *fakeTx) Tags() repo.TagRepository   { return f.tags }

type TxManagerFake struct {
	repos *fakeTx
}

func (m *TxManagerFake) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}
