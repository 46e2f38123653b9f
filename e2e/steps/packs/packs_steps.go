package packs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Actor(name string, roles ...string) error
	Do(ctx context.Context, method, path string, body any, asActor bool, headers map[string]string) error
	AdminHeaders() map[string]string
	Status() int
	Body() []byte
	FieldString(path string) (string, error)
	Set(key, value string)
	Get(key string) string
}

// RegisterSteps registers pack lifecycle and review shortcuts
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &packSteps{tc: tc}

	ctx.Step(`^"([^"]*)" owns a pack named "([^"]*)" in "([^"]*)"$`, steps.ownsPack)
	ctx.Step(`^an operator sets every sub-score of the pack to (\d+)$`, steps.overrideSubScores)
	ctx.Step(`^"([^"]*)" submits the pack for review$`, steps.submit)
	ctx.Step(`^reviewer "([^"]*)" (approves|rejects) the pack$`, steps.decide)
	ctx.Step(`^"([^"]*)" has an approved pack named "([^"]*)" in "([^"]*)" scored (\d+)$`, steps.approvedPack)
}

type packSteps struct {
	tc TestContext
}

func (s *packSteps) expect(status int, action string) error {
	if got := s.tc.Status(); got != status {
		return fmt.Errorf("%s: expected status %d, got %d: %s", action, status, got, s.tc.Body())
	}
	return nil
}

func (s *packSteps) ownsPack(ctx context.Context, owner, name, industry string) error {
	if err := s.tc.Actor(owner); err != nil {
		return err
	}
	body := map[string]any{"company_name": name, "industry": industry}
	if err := s.tc.Do(ctx, http.MethodPost, "/packs", body, true, nil); err != nil {
		return err
	}
	if err := s.expect(http.StatusCreated, "create pack"); err != nil {
		return err
	}
	packID, err := s.tc.FieldString("id")
	if err != nil {
		return err
	}
	s.tc.Set("packId", packID)
	s.tc.Set("packOwner", owner)
	return nil
}

func (s *packSteps) overrideSubScores(ctx context.Context, value int) error {
	body := map[string]any{
		"completeness": value,
		"expiration":   value,
		"quality":      value,
		"remediation":  value,
		"reason":       "e2e fixture",
	}
	path := "/admin/packs/" + s.tc.Get("packId") + "/sub-scores"
	if err := s.tc.Do(ctx, http.MethodPut, path, body, false, s.tc.AdminHeaders()); err != nil {
		return err
	}
	return s.expect(http.StatusOK, "override sub-scores")
}

func (s *packSteps) submit(ctx context.Context, owner string) error {
	if err := s.tc.Actor(owner); err != nil {
		return err
	}
	if err := s.tc.Do(ctx, http.MethodPost, "/packs/"+s.tc.Get("packId")+"/submit", nil, true, nil); err != nil {
		return err
	}
	if err := s.expect(http.StatusCreated, "submit pack"); err != nil {
		return err
	}
	reviewID, err := s.tc.FieldString("id")
	if err != nil {
		return err
	}
	s.tc.Set("reviewId", reviewID)
	return nil
}

func (s *packSteps) decide(ctx context.Context, reviewer, verb string) error {
	if err := s.tc.Actor(reviewer, "reviewer"); err != nil {
		return err
	}
	action := "approve"
	if verb == "rejects" {
		action = "reject"
	}
	body := map[string]any{
		"proofPackId": s.tc.Get("packId"),
		"action":      action,
		"comments":    "checked in e2e",
	}
	if err := s.tc.Do(ctx, http.MethodPost, "/qa/review", body, true, nil); err != nil {
		return err
	}
	return s.expect(http.StatusOK, action+" pack")
}

func (s *packSteps) approvedPack(ctx context.Context, owner, name, industry string, value int) error {
	if err := s.ownsPack(ctx, owner, name, industry); err != nil {
		return err
	}
	if err := s.overrideSubScores(ctx, value); err != nil {
		return err
	}
	if err := s.submit(ctx, owner); err != nil {
		return err
	}
	return s.decide(ctx, "qa-"+owner, "approves")
}
