package posts

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
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

func postsRouter(userID, role string) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.GET("/posts/:id", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
			c.Set("role", role)
		}
		GetPost(c)
	})
	return r
}

func reservedPostRows(mock sqlmock.Sqlmock, postID, authorID string) *sqlmock.Rows {
	return mock.NewRows([]string{"id", "author_id", "content", "is_public", "enable"}).
		AddRow(postID, authorID, "Contenu réservé", false, true)
}

func TestGetPost_PublicPostVisibleToAnyone(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs("post-1", 1).
		WillReturnRows(mock.NewRows([]string{"id", "author_id", "content", "is_public", "enable"}).
			AddRow("post-1", "creator-1", "Contenu public", true, true))

	req, _ := http.NewRequest(http.MethodGet, "/posts/post-1", nil)
	resp := httptest.NewRecorder()

	postsRouter("", "").ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestGetPost_ReservedPostRequiresSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs("post-1", 1).
		WillReturnRows(reservedPostRows(mock, "post-1", "creator-1"))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "viewer-1", "follow", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/posts/post-1", nil)
	resp := httptest.NewRecorder()

	postsRouter("viewer-1", "USER").ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestGetPost_ReservedPostVisibleToActiveSubscriber(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs("post-1", 1).
		WillReturnRows(reservedPostRows(mock, "post-1", "creator-1"))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "viewer-1", "follow", 1).
		WillReturnRows(mock.NewRows([]string{"id", "subscriber_id", "creator_id", "end_date", "status"}).
			AddRow("sub-id-1", "viewer-1", "creator-1", time.Now().Add(10*24*time.Hour), "ACTIVE"))

	req, _ := http.NewRequest(http.MethodGet, "/posts/post-1", nil)
	resp := httptest.NewRecorder()

	postsRouter("viewer-1", "USER").ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Contenu réservé", respBody["content"])
}

func TestGetPost_ExpiredSubscriptionLosesAccess(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs("post-1", 1).
		WillReturnRows(reservedPostRows(mock, "post-1", "creator-1"))

	// Ligne toujours marquée ACTIVE mais fenêtre écoulée : l'accès se
	// décide sur la date de fin, pas sur la colonne status
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE creator_id = (.+)`).
		WithArgs("creator-1", "viewer-1", "follow", 1).
		WillReturnRows(mock.NewRows([]string{"id", "subscriber_id", "creator_id", "end_date", "status"}).
			AddRow("sub-id-1", "viewer-1", "creator-1", time.Now().Add(-time.Hour), "ACTIVE"))

	req, _ := http.NewRequest(http.MethodGet, "/posts/post-1", nil)
	resp := httptest.NewRecorder()

	postsRouter("viewer-1", "USER").ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestGetPost_AuthorAlwaysSeesOwnPost(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs("post-1", 1).
		WillReturnRows(reservedPostRows(mock, "post-1", "creator-1"))

	req, _ := http.NewRequest(http.MethodGet, "/posts/post-1", nil)
	resp := httptest.NewRecorder()

	postsRouter("creator-1", "CREATOR").ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	// Aucune lecture d'abonnement pour l'auteur
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPost_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs("ghost", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/posts/ghost", nil)
	resp := httptest.NewRecorder()

	postsRouter("", "").ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
