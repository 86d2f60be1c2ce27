package client

import (
	"github.com/gridauth/edgegrid/auth"
	"github.com/gridauth/edgegrid/pipeline"
	"github.com/gridauth/edgegrid/stages"
)

// installSigning puts the signing stage into the chain: immediately before
// the history stage when that label is present, so the recorder observes
// requests as signed, appended at the end otherwise. The missed insert is
// the common case, not an error; chains without a history stage simply
// sign last.
//
// Labels are unique slots, so installing into a chain that already holds a
// signing stage replaces it in place. Running the assembler twice can never
// produce a second signing stage or a second authorization header.
func installSigning(chain *pipeline.Chain, signer *auth.Signer) {
	stage := stages.Sign(signer)

	if !chain.InsertBefore(stages.HistoryLabel, stages.SignLabel, stage) {
		chain.Append(stages.SignLabel, stage)
	}
}

// assembleChain resolves a handler option into an independent chain with
// the signing stage installed.
func assembleChain(opt HandlerOption, signer *auth.Signer) (*pipeline.Chain, error) {
	chain, err := opt.resolve()
	if err != nil {
		return nil, err
	}

	installSigning(chain, signer)

	return chain, nil
}
