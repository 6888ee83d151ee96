package subscriptions

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

// fixTime fige l'horloge du package le temps d'un test
func fixTime(t *testing.T, fixed time.Time) {
	t.Helper()
	original := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = original })
}

func creatorRows(mock sqlmock.Sqlmock, id string, price int) *sqlmock.Rows {
	return mock.NewRows([]string{"id", "email", "role", "subscription_price", "enable", "subscription_enable"}).
		AddRow(id, "creator@example.com", "CREATOR", price, true, true)
}

func subscriptionRows(mock sqlmock.Sqlmock, id string, endDate time.Time, version int) *sqlmock.Rows {
	return mock.NewRows([]string{"id", "subscriber_id", "creator_id", "service_type", "start_date", "end_date", "status", "renewal_count", "version"}).
		AddRow(id, "sub-1", "creator-1", "follow", endDate.Add(-models.SubscriptionDuration), endDate, "ACTIVE", 0, version)
}

func TestFollowUser_CreatesSubscriptionAndFollowEdge(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	fixTime(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+) AND subscriber_id = (.+) AND service_type = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("sub-id-1"))
	mock.ExpectQuery(`INSERT INTO "follows" (.+) RETURNING "id"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("follow-id-1"))
	mock.ExpectCommit()

	result, err := FollowUser("sub-1", "creator-1", FollowOptions{})

	assert.NoError(t, err)
	assert.Equal(t, "sub-id-1", result.SubscriptionID)
	assert.False(t, result.Renewed)
	assert.False(t, result.Reactivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUser_RenewalActiveSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fixTime(t, now)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	// La fenêtre courante expire dans 10 jours : le renouvellement doit
	// quand même repartir de maintenant, pas cumuler
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", now.Add(10*24*time.Hour), 3))

	// La nouvelle date de fin est liée par valeur : now + 30 jours, pas
	// l'ancienne date de fin + 30 jours
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+)"renewal_count"=renewal_count \+ 1(.+) WHERE id = (.+) AND version = (.+)`).
		WithArgs(now.Add(models.SubscriptionDuration), string(models.SubscriptionActive), sqlmock.AnyArg(), "sub-id-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := FollowUser("sub-1", "creator-1", FollowOptions{})

	assert.NoError(t, err)
	assert.Equal(t, "sub-id-1", result.SubscriptionID)
	assert.True(t, result.Renewed)
	assert.False(t, result.Reactivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUser_RenewalUsesGatewayStartDate(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fixTime(t, now)

	txID := "tx-77"
	start := time.Date(2025, 2, 28, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", now.Add(10*24*time.Hour), 3))

	// Quand la passerelle fournit une date de paiement, la fenêtre se
	// calcule à partir d'elle et non de l'horloge locale
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+)"renewal_count"=renewal_count \+ 1(.+) WHERE id = (.+) AND version = (.+)`).
		WithArgs(500, start.Add(models.SubscriptionDuration), string(models.SubscriptionActive), txID, sqlmock.AnyArg(), "sub-id-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := FollowUser("sub-1", "creator-1", FollowOptions{
		TransactionID: &txID,
		StartDate:     &start,
		AmountPaid:    500,
	})

	assert.NoError(t, err)
	assert.True(t, result.Renewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUser_RenewalExpiredSubscriptionIsReactivation(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fixTime(t, now)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", now.Add(-5*24*time.Hour), 3))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+) WHERE id = (.+) AND version = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := FollowUser("sub-1", "creator-1", FollowOptions{})

	assert.NoError(t, err)
	assert.True(t, result.Renewed)
	assert.True(t, result.Reactivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUser_RenewalRetriesOnVersionConflict(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fixTime(t, now)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	// Première tentative : un écrivain concurrent a bougé la version, le
	// patch ne touche aucune ligne
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", now.Add(10*24*time.Hour), 3))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+) WHERE id = (.+) AND version = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Deuxième tentative : relecture de l'état courant, le patch passe
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", now.Add(30*24*time.Hour), 4))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+) WHERE id = (.+) AND version = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := FollowUser("sub-1", "creator-1", FollowOptions{})

	assert.NoError(t, err)
	assert.True(t, result.Renewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUser_DuplicateTransactionIsConflict(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fixTime(t, now)

	txID := "tx-42"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", now.Add(10*24*time.Hour), 3))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET (.+) WHERE id = (.+) AND version = (.+)`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_subscriptions_transaction_id"`))
	mock.ExpectRollback()

	_, err := FollowUser("sub-1", "creator-1", FollowOptions{TransactionID: &txID, AmountPaid: 500})

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
}

func TestFollowUser_CreatorNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("ghost", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := FollowUser("sub-1", "ghost", FollowOptions{})

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestFollowUser_Unauthenticated(t *testing.T) {
	_, err := FollowUser("", "creator-1", FollowOptions{})

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestUnfollowUser_DeletesSubscriptionAndFollowEdge(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fixTime(t, now)

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", now.Add(10*24*time.Hour), 1))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "subscriptions" WHERE id = (.+)`).
		WithArgs("sub-id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "follows" WHERE follower_id = (.+) AND following_id = (.+)`).
		WithArgs("sub-1", "creator-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := UnfollowUser("sub-1", "creator-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfollowUser_ExpiredSubscriptionIsInvalidState(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fixTime(t, now)

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", now.Add(-time.Hour), 1))

	err := UnfollowUser("sub-1", "creator-1")

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))

	// Aucune suppression ne doit avoir été tentée
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfollowUser_NoSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	err := UnfollowUser("sub-1", "creator-1")

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}
