package likes

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

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

func likesRouter(userID string) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/posts/:id/like", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		ToggleLike(c)
	})
	return r
}

func TestToggleLike_Add(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	postID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content"}).
			AddRow(postID, "Un post de test"))

	mock.ExpectQuery(`SELECT (.+) FROM "likes" WHERE post_id = (.+) AND user_id = (.+)`).
		WithArgs(postID, userID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "likes" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("like-1"))
	mock.ExpectCommit()

	req, _ := http.NewRequest(http.MethodPost, "/posts/"+postID+"/like", nil)
	resp := httptest.NewRecorder()

	likesRouter(userID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Like added successfully", respBody["message"])
}

func TestToggleLike_Remove(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	postID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content"}).
			AddRow(postID, "Un post de test"))

	mock.ExpectQuery(`SELECT (.+) FROM "likes" WHERE post_id = (.+) AND user_id = (.+)`).
		WithArgs(postID, userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id"}).
			AddRow("like-1", postID, userID))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req, _ := http.NewRequest(http.MethodPost, "/posts/"+postID+"/like", nil)
	resp := httptest.NewRecorder()

	likesRouter(userID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Like removed successfully", respBody["message"])
}

func TestToggleLike_PostNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	postID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = (.+)`).
		WithArgs(postID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	req, _ := http.NewRequest(http.MethodPost, "/posts/"+postID+"/like", nil)
	resp := httptest.NewRecorder()

	likesRouter(userID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestToggleLike_Unauthenticated(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "/posts/post-1/like", nil)
	resp := httptest.NewRecorder()

	likesRouter("").ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
