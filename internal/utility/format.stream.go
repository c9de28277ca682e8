package utility

import (
	"io"
	"strconv"

	"github.com/valyala/fasthttp"
)

// StreamBody ghi body stream trực tiếp xuống tầng fasthttp.
// Biết trước size thì fasthttp đặt Content-Length đúng bằng giá trị
// upstream trả về, không rơi vào chunked encoding.
func StreamBody(ctx *fasthttp.RequestCtx, body io.Reader, contentLength string) {
	size := -1
	if n, err := strconv.Atoi(contentLength); err == nil {
		size = n
	}
	ctx.SetBodyStream(body, size)
}
