package subscriptions

import (
	"testing"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/testutils"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGetFollowSubscription_UnauthenticatedReturnsNil(t *testing.T) {
	sub, err := GetFollowSubscription("creator-1", "")

	assert.NoError(t, err)
	assert.Nil(t, sub)
}

func TestGetFollowSubscription_CreatorNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("ghost", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := GetFollowSubscription("ghost", "sub-1")

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestGetFollowSubscription_NoRelationship(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	sub, err := GetFollowSubscription("creator-1", "sub-1")

	assert.NoError(t, err)
	assert.Nil(t, sub)
}

func TestGetFollowSubscription_ReturnsRowAsStored(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	endDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "sub-1", "follow", 1).
		WillReturnRows(subscriptionRows(mock, "sub-id-1", endDate, 2))

	sub, err := GetFollowSubscription("creator-1", "sub-1")

	assert.NoError(t, err)
	assert.NotNil(t, sub)
	assert.Equal(t, "sub-id-1", sub.ID)
	assert.Equal(t, endDate, sub.EndDate.UTC())
}

func TestCanUserSubscribe_Unauthenticated(t *testing.T) {
	err := CanUserSubscribe("creator-1", "")

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestCanUserSubscribe_SelfSubscription(t *testing.T) {
	err := CanUserSubscribe("user-1", "user-1")

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))
}

func TestCanUserSubscribe_TargetIsNotCreator(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("user-2", 1).
		WillReturnRows(mock.NewRows([]string{"id", "role", "enable", "subscription_enable"}).
			AddRow("user-2", "USER", true, true))

	err := CanUserSubscribe("user-2", "sub-1")

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))
}

func TestCanUserSubscribe_SubscriptionsDisabled(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(mock.NewRows([]string{"id", "role", "enable", "subscription_enable"}).
			AddRow("creator-1", "CREATOR", true, false))

	err := CanUserSubscribe("creator-1", "sub-1")

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))
}

func TestCanUserSubscribe_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs("creator-1", 1).
		WillReturnRows(creatorRows(mock, "creator-1", 500))

	err := CanUserSubscribe("creator-1", "sub-1")

	assert.NoError(t, err)
}
