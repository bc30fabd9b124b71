// Package device extracts client device details from User-Agent headers so
// interactions can carry "which device did this" metadata.
package device

import (
	"strings"

	ua "github.com/mssola/useragent"
)

// Info is the parsed subset of a User-Agent we keep on an interaction.
type Info struct {
	Browser        string
	BrowserVersion string
	OS             string
	Platform       string
	Mobile         bool
}

// Parse breaks a raw User-Agent header into device info. Unknown or empty
// input yields zero-value fields rather than an error.
func Parse(rawUA string) Info {
	if strings.TrimSpace(rawUA) == "" {
		return Info{}
	}
	parsed := ua.New(rawUA)
	name, version := parsed.Browser()
	return Info{
		Browser:        name,
		BrowserVersion: version,
		OS:             parsed.OS(),
		Platform:       parsed.Platform(),
		Mobile:         parsed.Mobile(),
	}
}

// DisplayName renders the info for activity feeds, e.g. "Chrome on Linux".
func (i Info) DisplayName() string {
	if i.Browser == "" && i.OS == "" && i.Platform == "" {
		return "Unknown Device"
	}
	browser := i.Browser
	if browser == "" {
		browser = "Unknown Browser"
	}
	where := i.OS
	if where == "" {
		where = i.Platform
	}
	if where == "" {
		where = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + where)
}

// ParseUserAgent is the one-call form used when only the label matters.
func ParseUserAgent(rawUA string) string {
	return Parse(rawUA).DisplayName()
}

// Metadata flattens the info for storage in interaction metadata.
func (i Info) Metadata() map[string]any {
	if i == (Info{}) {
		return nil
	}
	out := map[string]any{
		"browser": i.Browser,
		"os":      i.OS,
		"mobile":  i.Mobile,
	}
	if i.BrowserVersion != "" {
		out["browser_version"] = i.BrowserVersion
	}
	if i.Platform != "" {
		out["platform"] = i.Platform
	}
	return out
}
