package stages

import (
	"net/http"

	"github.com/gridauth/edgegrid/auth"
	"github.com/gridauth/edgegrid/pipeline"
)

// SignLabel is the chain label of the signing stage.
const SignLabel = "sign"

// Sign returns a stage that replaces each outbound request with a signed
// copy produced by the signer. Stages after this one, the history stage
// included, observe the request exactly as it goes out on the wire.
func Sign(signer *auth.Signer) pipeline.Stage {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(req *http.Request) (*http.Response, error) {
			signed, err := signer.Sign(req)
			if err != nil {
				return nil, err
			}

			return next(signed)
		}
	}
}
