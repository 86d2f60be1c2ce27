package client

// Version is the client version advertised in the User-Agent header.
const Version = "1.0.0"

// goClientToken is the identifier the standard library HTTP client sends
// when no User-Agent header is set. The composed identifier keeps it
// visible alongside the product token.
const goClientToken = "Go-http-client/1.1"

// userAgent is the composed client identifier sent as the default
// User-Agent header.
const userAgent = "EdgeGrid-Go/" + Version + " " + goClientToken
