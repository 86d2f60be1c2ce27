// Package auth implements EdgeGrid request authentication: HMAC-SHA256
// signatures carried in the Authorization header under the EG1-HMAC-SHA256
// scheme.
//
// # Signature Scheme
//
// Each signature is produced in three steps:
//
//  1. A signing key is derived per timestamp:
//     base64(HMAC-SHA256(key=client_secret, data=timestamp)).
//  2. The request is canonicalized into a tab-joined string of method,
//     scheme, host, path with query, signed headers, content hash (POST
//     bodies only, capped at Credentials.MaxBody bytes), and the
//     authorization header fields without the signature.
//  3. The canonical string is signed with the derived key and appended to
//     the header as signature=<base64>.
//
// The resulting header has the form:
//
//	Authorization: EG1-HMAC-SHA256 client_token=...;access_token=...;timestamp=...;nonce=...;signature=...
//
// # Signing Requests
//
// Create a Signer from credentials and sign requests with it. Sign returns
// a signed copy and never modifies its input:
//
//	signer, err := auth.NewSigner(auth.Credentials{
//	    Host:         "api.example-host.net",
//	    ClientToken:  clientToken,
//	    ClientSecret: clientSecret,
//	    AccessToken:  accessToken,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	signed, err := signer.Sign(req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := http.DefaultClient.Do(signed)
//
// # Timestamps and Nonces
//
// By default every signature gets a fresh UTC timestamp and a fresh UUID v4
// nonce. Both can be pinned for reproducible signatures:
//
//	signer.SetTimestamp(auth.NewTimestamp(issued))
//	signer.SetNonce("3f23e98a-aa73-4a8b-9ad1-2a7fd6d0d9be")
//
// Pins stay in effect until reset. Servers reject stale timestamps, so
// pinned timestamps are only useful for tests and debugging.
package auth
