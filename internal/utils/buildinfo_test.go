package utils_test

import (
	"testing"

	"github.com/temirov/tokenum/internal/utils"
)

func TestGetApplicationVersionPrefersLinkTimeValue(t *testing.T) {
	previous := utils.Version
	t.Cleanup(func() { utils.Version = previous })
	utils.Version = "v9.9.9"
	if version := utils.GetApplicationVersion(); version != "v9.9.9" {
		t.Fatalf("expected v9.9.9, got %s", version)
	}
}
