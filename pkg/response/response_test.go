package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-journal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	return w
}

// TestSuccessEnvelope tests the standard success envelope
func TestSuccessEnvelope(t *testing.T) {
	w := perform(func(c *gin.Context) {
		response.Success(c, gin.H{"id": 7})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Code    int            `json:"code"`
		Message string         `json:"message"`
		Data    map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "success", body.Message)
	assert.Equal(t, 7, body.Data["id"])
}

// TestErrorEnvelopeOmitsData tests that error responses carry no data field
func TestErrorEnvelopeOmitsData(t *testing.T) {
	w := perform(func(c *gin.Context) {
		response.NotFound(c, "trade not found")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), `"data"`)

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, -1003, body.Code)
	assert.Equal(t, "trade not found", body.Message)
}

// TestConflictEnvelopeCarriesData tests that 409 responses include server state
func TestConflictEnvelopeCarriesData(t *testing.T) {
	w := perform(func(c *gin.Context) {
		response.Conflict(c, "layout was changed by another session", gin.H{"revision": 4})
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Code int `json:"code"`
		Data struct {
			Revision int `json:"revision"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, -1004, body.Code)
	assert.Equal(t, 4, body.Data.Revision, "Conflict responses return the current server state")
}

// TestPaginatedEnvelope tests total page computation
func TestPaginatedEnvelope(t *testing.T) {
	w := perform(func(c *gin.Context) {
		response.SuccessPaginated(c, []int{1, 2, 3}, 101, 2, 50)
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data response.Paginated `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(101), body.Data.Total)
	assert.Equal(t, 2, body.Data.Page)
	assert.Equal(t, 50, body.Data.PageSize)
	assert.Equal(t, 3, body.Data.TotalPages, "A partial last page counts as a page")
}
