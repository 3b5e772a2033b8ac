package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rayysidd/mun/internal/database"
	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createEvent(t *testing.T, db *gorm.DB, host *models.User, name, country string) (*models.Event, *models.Delegation) {
	t.Helper()
	event := &models.Event{HostID: host.ID, EventName: name, Committee: "UNSC", Agenda: "Cyber", PasscodeHash: "hash"}
	delegation := &models.Delegation{Country: country}
	require.NoError(t, NewEventRepository(db).CreateWithHostDelegation(context.Background(), event, delegation))
	return event, delegation
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, db, "alice")

	err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "other"})
	require.ErrorIs(t, err, ErrDuplicateKey)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEventRepository_CreateWithHostDelegation(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")

	event, delegation := createEvent(t, db, host, "MUNX", "France")

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, event.ID, delegation.EventID)
	assert.Equal(t, host.ID, delegation.UserID)

	found, err := NewDelegationRepository(db).Find(context.Background(), event.ID, host.ID)
	require.NoError(t, err)
	assert.Equal(t, "France", found.Country)
}

func TestEventRepository_DuplicateNameLeavesNoPartialWrite(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createEvent(t, db, alice, "MUNX", "France")

	err := NewEventRepository(db).CreateWithHostDelegation(context.Background(),
		&models.Event{HostID: bob.ID, EventName: "MUNX", Committee: "GA", Agenda: "x", PasscodeHash: "h"},
		&models.Delegation{Country: "Spain"},
	)
	require.ErrorIs(t, err, ErrDuplicateKey)

	var count int64
	require.NoError(t, db.Model(&models.Delegation{}).Where("user_id = ?", bob.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEventRepository_FindByNameIsExact(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")
	createEvent(t, db, host, "MUNX", "France")
	repo := NewEventRepository(db)

	_, err := repo.FindByName(context.Background(), "MUNX")
	require.NoError(t, err)

	_, err = repo.FindByName(context.Background(), "munx")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDelegationRepository_ConcurrentDuplicateJoin(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	event, _ := createEvent(t, db, host, "MUNX", "France")
	repo := NewDelegationRepository(db)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(context.Background(), &models.Delegation{EventID: event.ID, UserID: bob.ID, Country: "Germany"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDuplicateKey):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestDelegationRepository_DeleteRemovesOnlyCaller(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	event, _ := createEvent(t, db, host, "MUNX", "France")
	repo := NewDelegationRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Delegation{EventID: event.ID, UserID: bob.ID, Country: "Germany"}))

	deleted, err := repo.Delete(ctx, event.ID, host.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, event.ID, host.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.Find(ctx, event.ID, bob.ID)
	assert.NoError(t, err)
}

func TestDelegationRepository_ListByUserNewestFirst(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	older, _ := createEvent(t, db, bob, "Older", "France")
	newer, _ := createEvent(t, db, bob, "Newer", "France")
	repo := NewDelegationRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, &models.Delegation{EventID: older.ID, UserID: alice.ID, Country: "Chile", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &models.Delegation{EventID: newer.ID, UserID: alice.ID, Country: "Peru", CreatedAt: base.Add(time.Minute)}))

	first, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Newer", first[0].Event.EventName)
	assert.Equal(t, "Older", first[1].Event.EventName)

	second, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDelegationRepository_ListByEventLoadsUsers(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	event, _ := createEvent(t, db, host, "MUNX", "France")
	repo := NewDelegationRepository(db)
	require.NoError(t, repo.Create(context.Background(), &models.Delegation{EventID: event.ID, UserID: bob.ID, Country: "Germany"}))

	delegations, err := repo.ListByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, delegations, 2)

	names := []string{delegations[0].User.Username, delegations[1].User.Username}
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}

func TestDelegationRepository_CountryTaken(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")
	event, _ := createEvent(t, db, host, "MUNX", "France")
	repo := NewDelegationRepository(db)
	ctx := context.Background()

	taken, err := repo.CountryTaken(ctx, event.ID, "  france ")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.CountryTaken(ctx, event.ID, "Germany")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestSourceRepository_ListByEvent(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")
	event, _ := createEvent(t, db, host, "MUNX", "France")
	other, _ := createEvent(t, db, host, "Other", "France")
	repo := NewSourceRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Create(ctx, &models.Source{
			EventID: event.ID, UserID: host.ID, Type: models.SourceTypeText,
			Title: title, Content: "c", Status: models.SourceStatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Source{EventID: other.ID, UserID: host.ID, Title: "elsewhere", Content: "c"}))

	all, err := repo.ListByEvent(ctx, event.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "three", all[0].Title)

	page, err := repo.ListByEvent(ctx, event.ID, &utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "one", page[0].Title)
}

func TestSourceRepository_ColumnDefaults(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")
	event, _ := createEvent(t, db, host, "MUNX", "France")

	source := &models.Source{EventID: event.ID, UserID: host.ID, Title: "t", Content: "c"}
	require.NoError(t, NewSourceRepository(db).Create(context.Background(), source))

	var stored models.Source
	require.NoError(t, db.Where("id = ?", source.ID).First(&stored).Error)
	assert.Equal(t, models.SourceTypeURL, stored.Type)
	assert.Equal(t, models.SourceStatusPending, stored.Status)
}

func TestSpeechRepository_CreateWithSource(t *testing.T) {
	db := setupDB(t)
	host := createUser(t, db, "alice")
	event, _ := createEvent(t, db, host, "MUNX", "France")
	repo := NewSpeechRepository(db)
	ctx := context.Background()

	speech := &models.Speech{UserID: host.ID, EventID: &event.ID, Topic: "Cyber", Country: "France", Content: "Honourable chair"}
	source := &models.Source{Type: models.SourceTypeText, Title: "t", Content: speech.Content, Status: models.SourceStatusPending}
	require.NoError(t, repo.CreateWithSource(ctx, speech, source))

	assert.Equal(t, event.ID, source.EventID)
	assert.Equal(t, host.ID, source.UserID)

	sources, err := NewSourceRepository(db).ListByEvent(ctx, event.ID, nil)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "Honourable chair", sources[0].Content)
}

func TestSpeechRepository_ListFilterAndDelete(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	event, _ := createEvent(t, db, alice, "MUNX", "France")
	repo := NewSpeechRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	loose := &models.Speech{UserID: alice.ID, Topic: "a", Country: "France", Content: "x", CreatedAt: base}
	tied := &models.Speech{UserID: alice.ID, EventID: &event.ID, Topic: "b", Country: "France", Content: "y", CreatedAt: base.Add(time.Minute)}
	foreign := &models.Speech{UserID: bob.ID, Topic: "c", Country: "Chile", Content: "z"}
	for _, s := range []*models.Speech{loose, tied, foreign} {
		require.NoError(t, repo.Create(ctx, s))
	}

	all, err := repo.List(ctx, SpeechFilter{UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, tied.ID, all[0].ID)

	scoped, err := repo.List(ctx, SpeechFilter{UserID: alice.ID, EventID: &event.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, tied.ID, scoped[0].ID)

	require.NoError(t, repo.Delete(ctx, loose.ID))
	_, err = repo.FindByID(ctx, loose.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		mockDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestEventRepository_FindByIDDriverFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	driverErr := errors.New("connection reset")

	mock.ExpectQuery("SELECT .* FROM `events`").WillReturnError(driverErr)

	_, err := NewEventRepository(db).FindByID(context.Background(), "e1")
	require.ErrorIs(t, err, driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelegationRepository_ListByUserDriverFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	driverErr := errors.New("connection reset")

	mock.ExpectQuery("SELECT .* FROM `delegations`").WillReturnError(driverErr)

	_, err := NewDelegationRepository(db).ListByUser(context.Background(), "u1")
	require.ErrorIs(t, err, driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicateKey)
	assert.ErrorIs(t, translate(errors.New("UNIQUE constraint failed: events.event_name")), ErrDuplicateKey)
	assert.NotErrorIs(t, translate(errors.New("duplicate request id")), ErrDuplicateKey)
	assert.NotErrorIs(t, translate(errors.New("NOT NULL constraint failed: events.agenda")), ErrDuplicateKey)

	other := errors.New("disk full")
	assert.Equal(t, other, translate(other))
}
