package webhook_test

import (
	"errors"
	"testing"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/webhook"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://example.com/hook",
		"http://localhost:8080/h?x=1",
	}
	invalid := []string{
		"",
		"not a url",
		"/relative/path",
		"ftp://example.com/hook",
		"https://",
		"mailto:someone@example.com",
	}
	for _, u := range valid {
		if err := webhook.ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}
	for _, u := range invalid {
		if err := webhook.ValidateURL(u); !errors.Is(err, webhook.ErrInvalidURL) {
			t.Errorf("ValidateURL(%q) = %v, want ErrInvalidURL", u, err)
		}
	}
}

func TestParseEvents(t *testing.T) {
	events, err := webhook.ParseEvents([]string{"publish", "delete", "publish"})
	if err != nil {
		t.Fatalf("ParseEvents: %v", err)
	}
	if len(events) != 2 || events[0] != model.EventPublish || events[1] != model.EventDelete {
		t.Errorf("unexpected events: %v", events)
	}

	for _, raw := range [][]string{nil, {}, {"publish", "star"}, {"PUBLISH"}} {
		if _, err := webhook.ParseEvents(raw); !errors.Is(err, webhook.ErrInvalidEvents) {
			t.Errorf("ParseEvents(%v) = %v, want ErrInvalidEvents", raw, err)
		}
	}
}
