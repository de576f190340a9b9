package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/store"
)

func recContext(id string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c, w
}

func TestDeferRecommendation(t *testing.T) {
	st := store.New()
	st.PutRecommendation(models.Recommendation{ID: "r1", Status: models.RecommendationPending})
	h := NewAdvisorHandler(nil, st, nil)

	c, w := recContext("r1")
	h.DeferRecommendation(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	rec, ok := st.Recommendation("r1")
	require.True(t, ok)
	assert.Equal(t, models.RecommendationDeferred, rec.Status)

	// Deferral is not terminal: the recommendation can still be accepted.
	require.NoError(t, st.SetRecommendationStatus("r1", models.RecommendationAccepted))
	rec, _ = st.Recommendation("r1")
	assert.Equal(t, models.RecommendationAccepted, rec.Status)
}

func TestDeferRecommendation_NotFound(t *testing.T) {
	h := NewAdvisorHandler(nil, store.New(), nil)

	c, w := recContext("missing")
	h.DeferRecommendation(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
