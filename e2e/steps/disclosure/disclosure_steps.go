package disclosure

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
	Status() int
	Body() []byte
	FieldString(path string) (string, error)
	Set(key, value string)
	Get(key string) string
}

// RegisterSteps registers share grant and NDA steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &disclosureSteps{tc: tc}

	ctx.Step(`^"([^"]*)" shares the pack$`, steps.share)
	ctx.Step(`^"([^"]*)" accepts the NDA$`, steps.acceptNDA)
	ctx.Step(`^"([^"]*)" views the shared pack$`, steps.view)
	ctx.Step(`^"([^"]*)" revokes the share$`, steps.revoke)
	ctx.Step(`^"([^"]*)" bumps the NDA version$`, steps.bumpNDA)
}

type disclosureSteps struct {
	tc TestContext
}

func (s *disclosureSteps) share(ctx context.Context, owner string) error {
	if err := s.tc.Actor(owner); err != nil {
		return err
	}
	body := map[string]any{"label": "e2e buyer"}
	if err := s.tc.Do(ctx, http.MethodPost, "/packs/"+s.tc.Get("packId")+"/shares", body, true, nil); err != nil {
		return err
	}
	if got := s.tc.Status(); got != http.StatusCreated {
		return fmt.Errorf("share pack: expected status 201, got %d: %s", got, s.tc.Body())
	}
	token, err := s.tc.FieldString("token")
	if err != nil {
		return err
	}
	s.tc.Set("shareToken", token)
	return nil
}

func (s *disclosureSteps) acceptNDA(ctx context.Context, buyer string) error {
	if err := s.tc.Actor(buyer); err != nil {
		return err
	}
	body := map[string]any{"accepted": true}
	return s.tc.Do(ctx, http.MethodPost, "/share/"+s.tc.Get("shareToken")+"/nda", body, true, nil)
}

func (s *disclosureSteps) view(ctx context.Context, buyer string) error {
	if err := s.tc.Actor(buyer); err != nil {
		return err
	}
	return s.tc.Do(ctx, http.MethodGet, "/share/"+s.tc.Get("shareToken")+"/view", nil, true, nil)
}

func (s *disclosureSteps) revoke(ctx context.Context, owner string) error {
	if err := s.tc.Actor(owner); err != nil {
		return err
	}
	path := "/packs/" + s.tc.Get("packId") + "/shares/" + s.tc.Get("shareToken") + "/revoke"
	return s.tc.Do(ctx, http.MethodPost, path, nil, true, nil)
}

func (s *disclosureSteps) bumpNDA(ctx context.Context, owner string) error {
	if err := s.tc.Actor(owner); err != nil {
		return err
	}
	path := "/packs/" + s.tc.Get("packId") + "/shares/" + s.tc.Get("shareToken") + "/nda-version"
	return s.tc.Do(ctx, http.MethodPost, path, nil, true, nil)
}
