package search

import (
	"context"
	"time"

	"smm-course-search/internal/components/assert"
	"smm-course-search/internal/components/telemetry"
	"smm-course-search/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Fetcher retrieves a result page. A non-nil error means no response was
// received at all, any response is returned with its status as is.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, link string) (status int, body []byte, err error)
}

type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond limits how fast pages are requested, zero or less disables the limit.
	RequestsPerSecond float64
	// Dump receives a copy of every response when it is not nil.
	Dump restyutil.Output
}

type HTTPFetcher struct {
	http *resty.Client
}

func NewHTTPFetcher(opts HTTPOptions, tel telemetry.API) HTTPFetcher {
	assert.NotNil(tel)

	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	if opts.RequestsPerSecond > 0 {
		// burst of 1 keeps consecutive pages evenly spaced
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, telemetry.NewScopedAPI("search_client", tel))
	restyutil.Dump(client, opts.Dump)

	return HTTPFetcher{http: client}
}

func (f HTTPFetcher) Fetch(ctx context.Context, link string) (int, []byte, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return 0, nil, err
	}
	return res.StatusCode(), res.Body(), nil
}
