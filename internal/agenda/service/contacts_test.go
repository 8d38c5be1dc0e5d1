package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teyroberto/agenda/internal/agenda/domain"
	"github.com/teyroberto/agenda/internal/agenda/store/drivers/sqlite"
)

func newContactsFixture(t *testing.T) (*ContactsService, *IdentityService) {
	t.Helper()

	identity := newIdentityService(t, "contacts-secret", time.Minute)
	return &ContactsService{Store: identity.Store}, identity
}

func registerOwner(t *testing.T, identity *IdentityService, email string) string {
	t.Helper()

	user, err := identity.Register(context.Background(), email, "Owner "+email, "secret1")
	require.NoError(t, err)
	return user.ID
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	owner := registerOwner(t, identity, "ana@example.com")

	created, err := svc.Create(ctx, owner, "Bob", "555-1111", "bob@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, owner, created.OwnerID)
	require.Equal(t, "Bob", created.Name)

	got, err := svc.Get(ctx, owner, "Bob")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "555-1111", got.Phone)
	require.Equal(t, "bob@example.com", got.Email)
}

func TestGetIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	owner := registerOwner(t, identity, "ana@example.com")

	created, err := svc.Create(ctx, owner, "Bob", "555-1111", "")
	require.NoError(t, err)

	for _, lookup := range []string{"bob", "BOB", "bOb", "  Bob  "} {
		got, err := svc.Get(ctx, owner, lookup)
		require.NoError(t, err, "lookup %q", lookup)
		require.Equal(t, created.ID, got.ID)
		// The display form is preserved as created.
		require.Equal(t, "Bob", got.Name)
	}
}

func TestCreateRejectsCaseInsensitiveDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	owner := registerOwner(t, identity, "ana@example.com")

	_, err := svc.Create(ctx, owner, "Ana", "555-1111", "")
	require.NoError(t, err)

	for _, dup := range []string{"Ana", "ANA", "ana", " ana "} {
		_, err := svc.Create(ctx, owner, dup, "555-2222", "")
		require.ErrorIs(t, err, ErrDuplicateContactName, "name %q", dup)
	}
}

func TestCrossOwnerIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	ownerA := registerOwner(t, identity, "a@example.com")
	ownerB := registerOwner(t, identity, "b@example.com")

	joeA, err := svc.Create(ctx, ownerA, "Joe", "555-0001", "")
	require.NoError(t, err)
	joeB, err := svc.Create(ctx, ownerB, "Joe", "555-0002", "")
	require.NoError(t, err)

	listA, err := svc.List(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	require.Equal(t, joeA.ID, listA[0].ID)

	listB, err := svc.List(ctx, ownerB)
	require.NoError(t, err)
	require.Len(t, listB, 1)
	require.Equal(t, joeB.ID, listB[0].ID)

	// B's contact is unreachable through A's scope, and deleting A's Joe
	// leaves B's untouched.
	gotA, err := svc.Get(ctx, ownerA, "joe")
	require.NoError(t, err)
	require.Equal(t, "555-0001", gotA.Phone)

	require.NoError(t, svc.Delete(ctx, ownerA, "Joe"))
	_, err = svc.Get(ctx, ownerA, "Joe")
	require.ErrorIs(t, err, ErrContactNotFound)

	gotB, err := svc.Get(ctx, ownerB, "Joe")
	require.NoError(t, err)
	require.Equal(t, joeB.ID, gotB.ID)
}

func TestUpdateAppliesOnlyPresentFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	owner := registerOwner(t, identity, "ana@example.com")

	_, err := svc.Create(ctx, owner, "Bob", "555-1111", "bob@example.com")
	require.NoError(t, err)

	t.Run("phone only", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, "bob", domain.ContactPatch{Phone: strPtr("555-9999")})
		require.NoError(t, err)
		require.Equal(t, "555-9999", updated.Phone)
		require.Equal(t, "Bob", updated.Name)
		require.Equal(t, "bob@example.com", updated.Email)
	})

	t.Run("empty email clears the value", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, "bob", domain.ContactPatch{Email: strPtr("")})
		require.NoError(t, err)
		require.Empty(t, updated.Email)
		require.Equal(t, "555-9999", updated.Phone)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, "bob", domain.ContactPatch{})
		require.NoError(t, err)
		require.Equal(t, "Bob", updated.Name)
		require.Equal(t, "555-9999", updated.Phone)
	})
}

func TestUpdateRename(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	owner := registerOwner(t, identity, "ana@example.com")

	_, err := svc.Create(ctx, owner, "Bob", "555-1111", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, "Carol", "555-2222", "")
	require.NoError(t, err)

	t.Run("rename to a free name", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, "Bob", domain.ContactPatch{Name: strPtr("Robert")})
		require.NoError(t, err)
		require.Equal(t, "Robert", updated.Name)

		_, err = svc.Get(ctx, owner, "Bob")
		require.ErrorIs(t, err, ErrContactNotFound)
		_, err = svc.Get(ctx, owner, "robert")
		require.NoError(t, err)
	})

	t.Run("rename onto another contact collides", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, "Robert", domain.ContactPatch{Name: strPtr("CAROL")})
		require.ErrorIs(t, err, ErrDuplicateContactName)
	})

	t.Run("case-only rename of itself is allowed", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, "Robert", domain.ContactPatch{Name: strPtr("ROBERT")})
		require.NoError(t, err)
		require.Equal(t, "ROBERT", updated.Name)
	})
}

func TestUpdateMissingContact(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	owner := registerOwner(t, identity, "ana@example.com")

	_, err := svc.Update(ctx, owner, "Nobody", domain.ContactPatch{Phone: strPtr("555-0000")})
	require.ErrorIs(t, err, ErrContactNotFound)
}

func TestDeleteIsFinal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	owner := registerOwner(t, identity, "ana@example.com")

	_, err := svc.Create(ctx, owner, "Bob", "555-1111", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, "BOB"))

	_, err = svc.Get(ctx, owner, "Bob")
	require.ErrorIs(t, err, ErrContactNotFound)
	require.ErrorIs(t, svc.Delete(ctx, owner, "Bob"), ErrContactNotFound)

	// The freed name can be reused.
	_, err = svc.Create(ctx, owner, "bob", "555-3333", "")
	require.NoError(t, err)
}

func TestConcurrentCreatesYieldExactlyOneWinner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)
	owner := registerOwner(t, identity, "ana@example.com")

	const n = 10
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, owner, "Ana", fmt.Sprintf("555-%04d", i), "")
		}()
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrDuplicateContactName)
			duplicates++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, n-1, duplicates)

	// Exactly one row persisted.
	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

// Same race as above, but over a file-backed database with the production
// DSN options, so the writers really do contend across connections and
// losers reach the unique index instead of the in-transaction pre-check.
func TestConcurrentCreatesOnFileBackedStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dbFile := filepath.Join(t.TempDir(), "contacts.db")
	st, err := sqlite.NewStore(fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dbFile))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	identity := newIdentityService(t, "file-race-secret", time.Minute)
	identity.Store = st
	svc := &ContactsService{Store: st}
	owner := registerOwner(t, identity, "ana@example.com")

	const n = 10
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, owner, "Ana", fmt.Sprintf("555-%04d", i), "")
		}()
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrDuplicateContactName)
			duplicates++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, n-1, duplicates)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRegisterLoginContactLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, identity := newContactsFixture(t)

	user, err := identity.Register(ctx, "a@x.com", "A", "secret1")
	require.NoError(t, err)
	session, err := identity.Authenticate(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	resolved, err := identity.ValidateToken(ctx, session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	first, err := svc.Create(ctx, resolved.ID, "Bob", "555-1111", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, resolved.ID, "bob", "555-2222", "")
	require.ErrorIs(t, err, ErrDuplicateContactName)

	got, err := svc.Get(ctx, resolved.ID, "BOB")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "555-1111", got.Phone)

	require.NoError(t, svc.Delete(ctx, resolved.ID, "Bob"))

	_, err = svc.Get(ctx, resolved.ID, "Bob")
	require.ErrorIs(t, err, ErrContactNotFound)
}
