package sitefinity

import (
	"fmt"
	"net/http"

	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// UseRecorder swaps the API's HTTP client for a go-vcr recorder backed by cassetteName (without
// the .yaml suffix).  The access key is scrubbed from anything written to disk.  Only reads are
// recorded and replayed: writes always go to the real site, otherwise a replayed PATCH would
// look like a successful update.  Callers must invoke the returned stop func to flush the
// cassette.
func (api *API) UseRecorder(cassetteName string, mode recorder.Mode) (func() error, error) {
	opts := &recorder.Options{
		CassetteName:       cassetteName,
		Mode:               mode,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't set up go-vcr recording: %w", err)
	}

	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, AccessKeyHeader)
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.AddPassthrough(func(req *http.Request) bool {
		return req.Method != http.MethodGet
	})
	r.SetReplayableInteractions(true)

	api.Client = r.GetDefaultClient()

	return r.Stop, nil
}
