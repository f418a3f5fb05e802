package restyutil

import (
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// DumpClient registers middlewares on client that write every http
// exchange to output. a nil output makes this a no-op. tracing is left
// to the client's own instrumentation, this layer only captures bodies
// for offline inspection.
func DumpClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := strconv.FormatUint(atomic.AddUint64(&idcounter, 1), 10)
		output.Write(id, formatHttpMessage(res))
		slog.Debug("dumped http exchange",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"id", id,
		)
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		slog.Error("request failed",
			"method", req.Method,
			"url", req.URL,
			"err", err,
		)
	})
}
