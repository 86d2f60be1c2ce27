// Package client provides an HTTP client that signs every outgoing request
// with an EdgeGrid authorization header.
//
// # Basic Usage
//
// Build a client from credentials and issue requests relative to the base
// URL. Each request is signed with a fresh timestamp and nonce just before
// it goes out:
//
//	creds, err := edgerc.Load(edgerc.DefaultPath(), edgerc.DefaultSection)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	api, err := client.New(client.Config{
//	    BaseURL:     creds.Host,
//	    Credentials: &creds,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := api.Request(ctx, http.MethodGet, "/papi/v1/contracts", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resp.Body.Close()
//
// A query string embedded in the URI is extracted into structured values
// and merged with the Query option, so both forms are equivalent:
//
//	api.Request(ctx, http.MethodGet, "/papi/v1/properties?contractId=ctr_1", nil)
//	api.Request(ctx, http.MethodGet, "/papi/v1/properties", &client.RequestOptions{
//	    Query: url.Values{"contractId": {"ctr_1"}},
//	})
//
// # Pipelines
//
// Requests run through a pipeline.Chain. The signing stage is installed
// automatically: immediately before the history stage when one is present,
// at the end of the chain otherwise. Stages from the stages package slot in
// by label:
//
//	chain := pipeline.NewChain()
//	chain.Append(stages.LoggingLabel, stages.Logging(logger))
//	chain.Append(stages.HistoryLabel, recorder.Stage())
//
//	api, err := client.New(client.Config{
//	    BaseURL:     creds.Host,
//	    Credentials: &creds,
//	    Handler:     client.ChainHandler(chain),
//	})
//
// A per-call Handler option replaces the pipeline for that call only. The
// signing stage is installed into a scoped copy and the client's base
// pipeline stays untouched, which also makes a raw function a convenient
// fake transport in tests:
//
//	resp, err := api.Request(ctx, http.MethodGet, "/papi/v1/contracts", &client.RequestOptions{
//	    Handler: client.FuncHandler(func(req *http.Request) (*http.Response, error) {
//	        return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
//	    }),
//	})
//
// # Asynchronous Requests
//
// RequestAsync and SendAsync return a Call that completes when the
// exchange does. Normalization and signer refresh happen before they
// return, so sequential async calls never observe each other's signer
// state:
//
//	call := api.RequestAsync(ctx, http.MethodGet, "/papi/v1/contracts", nil)
//	resp, err := call.Response()
package client
