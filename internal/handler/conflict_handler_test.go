package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	c.Request = req
	return c, w
}

func TestParseConflictQuery(t *testing.T) {
	c, _ := testContext(t, "/conflicts?ignore_room=true&ignore_tba=true&ignore_faculty_list=Cruz,%20Reyes%20,&faculty_contains=true")

	query := parseConflictQuery(c)
	assert.False(t, query.IgnoreFaculty)
	assert.True(t, query.IgnoreRoom)
	assert.True(t, query.IgnoreTBA)
	assert.Equal(t, []string{"Cruz", "Reyes"}, query.IgnoreFacultyList)
	assert.Nil(t, query.IgnoreRoomList)
	assert.True(t, query.FacultyContains)
	assert.False(t, query.RoomContains)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,, "))
}
