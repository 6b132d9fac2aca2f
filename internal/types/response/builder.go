package response

import (
	"net/http"

	"github.com/zeromicro/go-zero/core/jsonx"
	"github.com/zeromicro/go-zero/core/logx"
)

// Builder assembles an HTTPResponse fluently:
//
//	resp := response.NewBuilder().
//		Status(http.StatusAccepted).
//		Server("etlgateway").
//		JSON(payload).
//		Build()
type Builder struct {
	status int
	header http.Header
	body   []byte
}

func NewBuilder() *Builder {
	return &Builder{
		status: http.StatusOK,
		header: make(http.Header),
	}
}

func (b *Builder) Status(status int) *Builder {
	b.status = status
	return b
}

// Header sets a header, replacing previous values.
func (b *Builder) Header(key, value string) *Builder {
	b.header.Set(key, value)
	return b
}

func (b *Builder) Server(name string) *Builder {
	return b.Header(HeaderServer, name)
}

func (b *Builder) ContentType(contentType string) *Builder {
	return b.Header(HeaderContentType, contentType)
}

// CORS sets Access-Control-Allow-Origin; an empty origin leaves it unset.
func (b *Builder) CORS(origin string) *Builder {
	if origin == "" {
		return b
	}
	return b.Header(HeaderAllowOrigin, origin)
}

func (b *Builder) KeepAlive(keepAlive bool) *Builder {
	if keepAlive {
		return b.Header(HeaderConnection, "keep-alive")
	}
	return b.Header(HeaderConnection, "close")
}

func (b *Builder) CorrelationID(id string) *Builder {
	if id == "" {
		return b
	}
	return b.Header(HeaderCorrelationID, id)
}

// JSON serializes v as the body. A value that cannot be serialized
// turns the response into a bare 500.
func (b *Builder) JSON(v any) *Builder {
	body, err := jsonx.Marshal(v)
	if err != nil {
		logx.Errorw("marshal response body failed", logx.Field("err", err))
		b.status = http.StatusInternalServerError
		b.body = []byte(`{"status":"error","message":"An internal server error occurred"}`)
	} else {
		b.body = body
	}
	return b.ContentType(ContentTypeJSON)
}

func (b *Builder) Text(s string) *Builder {
	b.body = []byte(s)
	return b.ContentType(ContentTypeText)
}

// Body sets raw body bytes without touching Content-Type.
func (b *Builder) Body(body []byte) *Builder {
	b.body = body
	return b
}

func (b *Builder) Build() *HTTPResponse {
	return &HTTPResponse{
		Status: b.status,
		Header: b.header.Clone(),
		Body:   append([]byte(nil), b.body...),
	}
}
