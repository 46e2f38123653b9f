package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Actor(name string, roles ...string) error
	Do(ctx context.Context, method, path string, body any, asActor bool, headers map[string]string) error
	Status() int
	Body() []byte
	FieldString(path string) (string, error)
	Field(path string) (any, error)
	Set(key, value string)
	Expand(s string) string
}

// RegisterSteps registers the generic request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I am "([^"]*)"$`, steps.iAm)
	ctx.Step(`^I am "([^"]*)" with role "([^"]*)"$`, steps.iAmWithRole)
	ctx.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)"$`, steps.send)
	ctx.Step(`^I send a (POST|PUT) request to "([^"]*)" with body:$`, steps.sendWithBody)
	ctx.Step(`^I send an anonymous (GET|POST) request to "([^"]*)"$`, steps.sendAnonymous)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, steps.fieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, steps.fieldShouldHaveItems)
	ctx.Step(`^the response should not contain "([^"]*)"$`, steps.bodyShouldNotContain)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, steps.saveField)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) iAm(ctx context.Context, name string) error {
	return s.tc.Actor(name)
}

func (s *commonSteps) iAmWithRole(ctx context.Context, name, role string) error {
	return s.tc.Actor(name, role)
}

func (s *commonSteps) send(ctx context.Context, method, path string) error {
	return s.tc.Do(ctx, method, path, nil, true, nil)
}

func (s *commonSteps) sendWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	return s.tc.Do(ctx, method, path, body.Content, true, nil)
}

func (s *commonSteps) sendAnonymous(ctx context.Context, method, path string) error {
	return s.tc.Do(ctx, method, path, nil, false, nil)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, want int) error {
	if got := s.tc.Status(); got != want {
		return fmt.Errorf("expected status %d, got %d: %s", want, got, s.tc.Body())
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(ctx context.Context, path, want string) error {
	got, err := s.tc.FieldString(path)
	if err != nil {
		return err
	}
	if want = s.tc.Expand(want); got != want {
		return fmt.Errorf("expected %s to be %q, got %q", path, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldExist(ctx context.Context, path string) error {
	_, err := s.tc.Field(path)
	return err
}

func (s *commonSteps) fieldShouldHaveItems(ctx context.Context, path string, want int) error {
	v, err := s.tc.Field(path)
	if err != nil {
		return err
	}
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%s is not a list", path)
	}
	if len(items) != want {
		return fmt.Errorf("expected %d items in %s, got %d", want, path, len(items))
	}
	return nil
}

func (s *commonSteps) bodyShouldNotContain(ctx context.Context, text string) error {
	if strings.Contains(string(s.tc.Body()), s.tc.Expand(text)) {
		return fmt.Errorf("response unexpectedly contains %q", text)
	}
	return nil
}

func (s *commonSteps) saveField(ctx context.Context, path, key string) error {
	v, err := s.tc.FieldString(path)
	if err != nil {
		return err
	}
	s.tc.Set(key, v)
	return nil
}
