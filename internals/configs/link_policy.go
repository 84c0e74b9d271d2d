package configs

import (
	"fmt"
	"strings"
	"time"
)

// LinkPolicy is the play-link validity window applied when an order is created.
// The version is persisted on every order so older orders keep the meaning they
// were sold with.
type LinkPolicy struct {
	Version  string
	Duration time.Duration
}

const (
	DefaultLinkPolicyVersion = "v3"
	CustomLinkPolicyVersion  = "custom"
)

// Known link validity windows, oldest first.
var linkPolicies = map[string]time.Duration{
	"v1": 5 * time.Minute,
	"v2": 72 * time.Hour,
	"v3": 48 * time.Hour,
}

// ResolveLinkPolicy picks a registered policy by version. A non-empty override
// ("36h", "90m") wins and is recorded as the custom version.
func ResolveLinkPolicy(version, override string) (LinkPolicy, error) {
	if o := strings.TrimSpace(override); o != "" {
		d, err := time.ParseDuration(o)
		if err != nil || d <= 0 {
			return LinkPolicy{}, fmt.Errorf("invalid LINK_VALIDITY_DURATION %q", override)
		}
		return LinkPolicy{Version: CustomLinkPolicyVersion, Duration: d}, nil
	}

	v := strings.ToLower(strings.TrimSpace(version))
	if v == "" {
		v = DefaultLinkPolicyVersion
	}
	d, ok := linkPolicies[v]
	if !ok {
		return LinkPolicy{}, fmt.Errorf("unknown LINK_VALIDITY_POLICY %q", version)
	}
	return LinkPolicy{Version: v, Duration: d}, nil
}
