package auth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
)

// authScheme is the scheme token of the authorization header.
const authScheme = "EG1-HMAC-SHA256"

// authHeader builds the authorization header value up to and excluding the
// signature field. The same string is both a prefix of the final header and
// the last slot of the data to sign, which binds the signature to the
// client identity, timestamp, and nonce it was produced with.
func authHeader(c Credentials, ts Timestamp, nonce string) string {
	var b strings.Builder

	b.WriteString(authScheme)
	b.WriteString(" client_token=")
	b.WriteString(c.ClientToken)
	b.WriteString(";access_token=")
	b.WriteString(c.AccessToken)
	b.WriteString(";timestamp=")
	b.WriteString(ts.String())
	b.WriteString(";nonce=")
	b.WriteString(nonce)
	b.WriteByte(';')

	return b.String()
}

// signingKey derives the per-timestamp signing key: the timestamp keyed with
// the client secret, base64 encoded.
func signingKey(c Credentials, ts Timestamp) string {
	return base64HMAC(c.ClientSecret, ts.String())
}

// base64HMAC returns base64(HMAC-SHA256(key, data)).
func base64HMAC(key, data string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// buildDataToSign assembles the tab-joined canonical form of the request:
// method, scheme, host, relative URL with query, canonicalized signed
// headers, content hash, and the authorization header without signature.
//
// Reading the body for the content hash may consume r.Body; callers pass a
// clone whose body is already safe to consume.
func buildDataToSign(r *http.Request, c Credentials, header string) (string, error) {
	hash, err := contentHash(r, c.maxBody())
	if err != nil {
		return "", err
	}

	parts := []string{
		strings.ToUpper(r.Method),
		strings.ToLower(r.URL.Scheme),
		strings.ToLower(r.URL.Host),
		r.URL.RequestURI(),
		canonicalizeHeaders(r.Header, c.HeadersToSign),
		hash,
		header,
	}

	return strings.Join(parts, "\t"), nil
}

// canonicalizeHeaders renders the signed headers slot: for each configured
// header present on the request, "lowercase-name:value" with surrounding
// whitespace trimmed and internal runs of whitespace collapsed to a single
// space, tab-joined in configuration order. Absent headers are skipped.
func canonicalizeHeaders(h http.Header, names []string) string {
	var parts []string

	for _, name := range names {
		value := h.Get(name)
		if value == "" {
			continue
		}

		parts = append(parts, strings.ToLower(name)+":"+strings.Join(strings.Fields(value), " "))
	}

	return strings.Join(parts, "\t")
}

// contentHash computes the content hash slot: base64(SHA-256) over the body
// prefix capped at maxBody bytes, for POST requests with a body. All other
// requests get an empty slot.
//
// The body is read in full and replaced with an in-memory copy so the
// request remains sendable; GetBody is reset to serve the same copy.
func contentHash(r *http.Request, maxBody int) (string, error) {
	if r.Method != http.MethodPost || r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}

	buf, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}

	if err := r.Body.Close(); err != nil {
		return "", err
	}

	r.Body = io.NopCloser(bytes.NewReader(buf))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}
	r.ContentLength = int64(len(buf))

	if len(buf) == 0 {
		return "", nil
	}

	prefix := buf
	if len(prefix) > maxBody {
		prefix = prefix[:maxBody]
	}

	sum := sha256.Sum256(prefix)

	return base64.StdEncoding.EncodeToString(sum[:]), nil
}
