package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*gin.Engine, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return router, server
}

func TestClientGetDecodesBody(t *testing.T) {
	router, server := newTestServer(t)
	router.GET("/students", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": []gin.H{{"id": "s1", "name": "Ana"}}})
	})

	client, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/students", nil)
	require.NoError(t, err)

	var body struct {
		Message []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"message"`
	}
	require.NoError(t, resp.Decode(&body))
	require.Len(t, body.Message, 1)
	assert.Equal(t, "Ana", body.Message[0].Name)
}

func TestClientAppliesDecorators(t *testing.T) {
	var gotQuery url.Values
	router, server := newTestServer(t)
	router.GET("/students", func(c *gin.Context) {
		gotQuery = c.Request.URL.Query()
		c.JSON(http.StatusOK, gin.H{"message": []gin.H{}})
	})

	client, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)
	client.SetDecorators(func(path string, params url.Values) {
		params.Set("username", "admin")
		params.Set("password", "secret")
	})

	_, err = client.Get(context.Background(), "/students", nil)
	require.NoError(t, err)
	assert.Equal(t, "admin", gotQuery.Get("username"))
	assert.Equal(t, "secret", gotQuery.Get("password"))
}

func TestClientDecoratorSeesPath(t *testing.T) {
	router, server := newTestServer(t)
	router.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "ok"}) })

	var seenPaths []string
	client, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)
	client.SetDecorators(func(path string, params url.Values) {
		seenPaths = append(seenPaths, path)
	})

	_, err = client.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/"}, seenPaths)
}

func TestClientDecoratorReplacementDuringRequests(t *testing.T) {
	router, server := newTestServer(t)
	router.GET("/students", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": []gin.H{}})
	})

	client, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)

	// Swap the chain continuously while requests are in flight; run with
	// -race to catch unsynchronized access to the decorator slice.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			client.SetDecorators(func(path string, params url.Values) {
				params.Set("username", "admin")
			})
		}
	}()

	for i := 0; i < 50; i++ {
		_, err := client.Get(context.Background(), "/students", nil)
		require.NoError(t, err)
	}
	<-done
}

func TestClientSetsRequestID(t *testing.T) {
	var gotHeader string
	router, server := newTestServer(t)
	router.GET("/careers", func(c *gin.Context) {
		gotHeader = c.GetHeader(requestIDHeader)
		c.JSON(http.StatusOK, gin.H{"message": []gin.H{}})
	})

	client, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/careers", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, gotHeader)
}

func TestClientPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]interface{}
	router, server := newTestServer(t)
	router.POST("/career", func(c *gin.Context) {
		gotContentType = c.ContentType()
		require.NoError(t, c.ShouldBindJSON(&gotBody))
		c.JSON(http.StatusOK, gin.H{"message": "c9"})
	})

	client, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)

	_, err = client.Post(context.Background(), "/career", map[string]string{"name": "Medicina"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Medicina", gotBody["name"])
}

func TestClientNon2xxReturnsRequestError(t *testing.T) {
	router, server := newTestServer(t)
	router.DELETE("/student/s1", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": nil, "error": "Unauthorized"})
	})

	client, err := New(server.URL, time.Second, nil)
	require.NoError(t, err)

	resp, err := client.Delete(context.Background(), "/student/s1")
	assert.Nil(t, resp)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Contains(t, string(reqErr.Body), "Unauthorized")
}

func TestClientTransportFailure(t *testing.T) {
	client, err := New("http://127.0.0.1:1", 100*time.Millisecond, nil)
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/students", nil)
	assert.Nil(t, resp)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.Status)
	assert.Error(t, reqErr.Unwrap())
}

func TestClientRejectsBadBaseURL(t *testing.T) {
	_, err := New("://bad", time.Second, nil)
	require.Error(t, err)
}
