package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitLevelAndFormat(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	Init("debug", "json")
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logrus.GetLevel())
	}
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter); !ok {
		t.Error("Expected JSON formatter")
	}

	Init("loud", "text")
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected fallback to info, got %s", logrus.GetLevel())
	}
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.TextFormatter); !ok {
		t.Error("Expected text formatter")
	}
}

func TestWithFields(t *testing.T) {
	if got := WithUser("u-1").Data["user_id"]; got != "u-1" {
		t.Errorf("Expected user_id u-1, got %v", got)
	}
	if got := WithComponent("seed").Data["component"]; got != "seed" {
		t.Errorf("Expected component seed, got %v", got)
	}
}
