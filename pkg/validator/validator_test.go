package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amountReq struct {
	Amount float64 `form:"amount" binding:"omitempty,gte=0,lte=1000000"`
}

func bindAmount(t *testing.T, query string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/calc?"+query, nil)
	var req amountReq
	return c.ShouldBindQuery(&req)
}

func TestTranslate(t *testing.T) {
	LazyInitGinValidator("en")

	require.NoError(t, bindAmount(t, "amount=50"))

	err := bindAmount(t, "amount=-1")
	require.Error(t, err)
	msg := Translate(err, "en")
	assert.Contains(t, msg, "amount")
	assert.NotEqual(t, err.Error(), msg)

	fr := Translate(err, "fr")
	assert.Contains(t, fr, "amount")
	assert.NotEqual(t, msg, fr)
}

func TestTranslate_PlainError(t *testing.T) {
	assert.Equal(t, "", Translate(nil, "en"))
	assert.Equal(t, "boom", Translate(errors.New("boom"), "en"))
}
