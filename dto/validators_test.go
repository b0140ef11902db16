package dto

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func bindJSON(t *testing.T, body string, obj any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidations())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(obj)
}

func TestObjectIDRule(t *testing.T) {
	valid := bson.NewObjectID().Hex()

	var dto CreateOrderDTO
	err := bindJSON(t, `{"clientId":"`+valid+`","equipmentId":"`+valid+`","totalPrice":25}`, &dto)
	require.NoError(t, err)
	assert.Equal(t, valid, dto.ClientID)

	for _, bad := range []string{"", "not-hex", "123", valid + "ff"} {
		var dto CreateOrderDTO
		err := bindJSON(t, `{"clientId":"`+bad+`","equipmentId":"`+valid+`","totalPrice":25}`, &dto)
		assert.Error(t, err, "clientId %q must not bind", bad)
	}
}

func TestLoginDTOValidation(t *testing.T) {
	var dto LoginDTO
	require.NoError(t, bindJSON(t, `{"email":"a@b.com","password":"x"}`, &dto))

	assert.Error(t, bindJSON(t, `{"email":"not-an-email","password":"x"}`, &LoginDTO{}))
	assert.Error(t, bindJSON(t, `{"email":"a@b.com"}`, &LoginDTO{}))
}

func TestSetPasswordDTOEnforcesMinLength(t *testing.T) {
	assert.Error(t, bindJSON(t, `{"password":"short"}`, &SetPasswordDTO{}))
	assert.NoError(t, bindJSON(t, `{"password":"long-enough"}`, &SetPasswordDTO{}))
}
