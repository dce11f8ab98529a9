package session

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"tunr-web/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// exerciseStore runs the Store contract against any backend.
func exerciseStore(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()
	a := backend.Client("client-a")
	b := backend.Client("client-b")

	if _, ok, err := a.Get(ctx, "token"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}

	if err := a.Set(ctx, "token", "t-a"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := a.Set(ctx, "token", "t-a2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, ok, err := a.Get(ctx, "token")
	if err != nil || !ok || v != "t-a2" {
		t.Errorf("Get = %q, %v, %v; want t-a2", v, ok, err)
	}

	if _, ok, _ := b.Get(ctx, "token"); ok {
		t.Error("clients must not share storage")
	}

	if err := a.Set(ctx, "user", "{}"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := a.Delete(ctx, "token", "user", "missing"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := a.Get(ctx, "user"); ok {
		t.Error("deleted key still present")
	}
	if err := a.Delete(ctx); err != nil {
		t.Errorf("Delete with no keys should be a no-op, got %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseStore(t, NewMemoryBackend())
}

func TestMemoryBackend_ConcurrentAccess(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := NewAccessor(backend.Client("shared"))
			_ = a.SetSession(ctx, "tok", User{Username: "u"})
			_ = a.Session(ctx)
			_ = a.ClearSession(ctx)
		}()
	}
	wg.Wait()
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backend := NewRedisBackend(client)
	exerciseStore(t, backend)

	if err := backend.Client("c1").Set(context.Background(), "token", "x"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := mr.HGet("storage:c1", "token"); got != "x" {
		t.Errorf("hash field = %q, want x", got)
	}
}

func TestRedisBackend_UnavailableFailsClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	backend := NewRedisBackend(client)
	a := NewAccessor(backend.Client("c1"))
	if err := a.SetSession(context.Background(), "tok", User{Username: "u"}); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	mr.Close()

	_, _, err := backend.Client("c1").Get(context.Background(), "token")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if a.Session(context.Background()).IsLoggedIn {
		t.Error("session should be anonymous while redis is down")
	}
}

func newMockBackend(t *testing.T) (*PostgresBackend, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewPostgresBackend(&db.DB{DB: sqlDB}), mock
}

func TestPostgresBackend_Get(t *testing.T) {
	backend, mock := newMockBackend(t)
	query := regexp.QuoteMeta("SELECT value FROM client_storage")

	mock.ExpectQuery(query).
		WithArgs("c1", "token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("abc"))
	mock.ExpectQuery(query).
		WithArgs("c1", "user").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	store := backend.Client("c1")

	v, ok, err := store.Get(context.Background(), "token")
	if err != nil || !ok || v != "abc" {
		t.Errorf("Get(token) = %q, %v, %v", v, ok, err)
	}

	_, ok, err = store.Get(context.Background(), "user")
	if err != nil || ok {
		t.Errorf("Get(user) = ok %v, err %v; want not found", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresBackend_SetAndDelete(t *testing.T) {
	backend, mock := newMockBackend(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_storage")).
		WithArgs("c1", "token", "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_storage")).
		WithArgs("c1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	store := backend.Client("c1")
	if err := store.Set(context.Background(), "token", "abc"); err != nil {
		t.Errorf("Set failed: %v", err)
	}
	if err := store.Delete(context.Background(), "token", "user"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresBackend_QueryErrorIsUnavailable(t *testing.T) {
	backend, mock := newMockBackend(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM client_storage")).
		WillReturnError(errors.New("connection reset"))

	_, _, err := backend.Client("c1").Get(context.Background(), "token")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
