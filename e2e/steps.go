package e2e

import (
	"github.com/cucumber/godog"

	"proofpack/e2e/steps/common"
	"proofpack/e2e/steps/disclosure"
	"proofpack/e2e/steps/packs"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and response assertions
	common.RegisterSteps(ctx, tc)

	// Pack lifecycle and review shortcuts
	packs.RegisterSteps(ctx, tc)

	// Share grants, NDA and gated reads
	disclosure.RegisterSteps(ctx, tc)
}
