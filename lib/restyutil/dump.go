// Package restyutil keeps a copy of the HTTP exchanges of a resty client, it is
// mostly used to save result pages so they can be decoded again offline.
package restyutil

import (
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type Output interface {
	Write(id string, contents []byte)
}

// Dump writes each response to `output` as two entries, "<n>.http" holds the
// request line and headers, "<n>.html" holds the response body as received.
// `output` can be nil, in which case this is a no-op.
func Dump(client *resty.Client, output Output) {
	if output == nil {
		return
	}

	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&idcounter, 1)
		output.Write(fmt.Sprintf("%04d.http", id), []byte(formatHttpMessage(res)))
		output.Write(fmt.Sprintf("%04d.html", id), res.Body())
		return nil
	})
}
