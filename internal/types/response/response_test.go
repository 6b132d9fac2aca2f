package response

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	resp := NewBuilder().
		Status(http.StatusAccepted).
		Server("etlgateway").
		CORS("*").
		KeepAlive(true).
		CorrelationID("c-1").
		JSON(map[string]string{"state": "queued"}).
		Build()

	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "etlgateway", resp.Header.Get(HeaderServer))
	assert.Equal(t, ContentTypeJSON, resp.Header.Get(HeaderContentType))
	assert.Equal(t, "*", resp.Header.Get(HeaderAllowOrigin))
	assert.Equal(t, "keep-alive", resp.Header.Get(HeaderConnection))
	assert.Equal(t, "c-1", resp.Header.Get(HeaderCorrelationID))
	assert.JSONEq(t, `{"state":"queued"}`, string(resp.Body))
}

func TestBuilderDefaults(t *testing.T) {
	resp := NewBuilder().CORS("").CorrelationID("").KeepAlive(false).Text("ok").Build()

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.Header.Get(HeaderAllowOrigin))
	assert.Empty(t, resp.Header.Get(HeaderCorrelationID))
	assert.Equal(t, "close", resp.Header.Get(HeaderConnection))
	assert.Equal(t, ContentTypeText, resp.Header.Get(HeaderContentType))
	assert.Equal(t, "ok", string(resp.Body))
}

func TestBuilderUnmarshalableJSON(t *testing.T) {
	resp := NewBuilder().JSON(math.Inf(1)).Build()

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.True(t, json.Valid(resp.Body))
}

func TestBuildIsolatesResponses(t *testing.T) {
	b := NewBuilder().Header("X-A", "1")
	first := b.Build()
	b.Header("X-A", "2")

	assert.Equal(t, "1", first.Header.Get("X-A"))
}

func TestWriteTo(t *testing.T) {
	rr := httptest.NewRecorder()
	NewBuilder().Status(http.StatusTeapot).Header("X-A", "1").Text("short and stout").Build().WriteTo(rr)

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-A"))
	assert.Equal(t, "short and stout", rr.Body.String())
}

func TestWriteToReplacesHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.Header().Set(HeaderCorrelationID, "abc")
	rr.Header().Set(HeaderServer, "outer")
	rr.Header().Set("X-Kept", "yes")

	NewBuilder().CorrelationID("abc").Server("etlgateway").Build().WriteTo(rr)

	assert.Equal(t, []string{"abc"}, rr.Header().Values(HeaderCorrelationID))
	assert.Equal(t, []string{"etlgateway"}, rr.Header().Values(HeaderServer))
	assert.Equal(t, "yes", rr.Header().Get("X-Kept"))
}

func TestSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	Success(rr, req, map[string]int{"n": 1})

	assert.Equal(t, http.StatusOK, rr.Code)

	var got Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "success", got.Msg)
	assert.Equal(t, http.StatusOK, got.Code)
}

func TestCreated(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	Created(rr, req, nil)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"msg":"created","code":201}`, rr.Body.String())
}
