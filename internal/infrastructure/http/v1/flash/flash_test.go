package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setCookie(t *testing.T, s *Store, category, text string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	require.NoError(t, s.Set(c, category, text))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	return cookies[0]
}

func pop(s *Store, cookie *http.Cookie) (*Message, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return s.Pop(c), w
}

func TestStore_RoundTrip(t *testing.T) {
	s, err := NewStore("secret", false)
	require.NoError(t, err)

	cookie := setCookie(t, s, CategorySuccess, "Product added")
	msg, w := pop(s, cookie)

	require.NotNil(t, msg)
	assert.Equal(t, CategorySuccess, msg.Category)
	assert.Equal(t, "Product added", msg.Text)

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, CookieName, cleared[0].Name)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestStore_NoCookie(t *testing.T) {
	s, err := NewStore("secret", false)
	require.NoError(t, err)

	msg, _ := pop(s, nil)
	assert.Nil(t, msg)
}

func TestStore_RejectsForeignKey(t *testing.T) {
	signer, err := NewStore("one", false)
	require.NoError(t, err)
	reader, err := NewStore("two", false)
	require.NoError(t, err)

	msg, _ := pop(reader, setCookie(t, signer, CategoryDanger, "nope"))
	assert.Nil(t, msg)
}

func TestStore_RejectsGarbage(t *testing.T) {
	s, err := NewStore("secret", false)
	require.NoError(t, err)

	msg, _ := pop(s, &http.Cookie{Name: CookieName, Value: "not-a-token"})
	assert.Nil(t, msg)
}

func TestNewStore_EmptySecret(t *testing.T) {
	_, err := NewStore("", false)
	assert.Error(t, err)
}
