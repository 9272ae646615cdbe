// Package clientinfo derives human-readable client and OS descriptors
// from a User-Agent header. Pure formatting, no invariants; stored
// verbatim alongside each comment.
package clientinfo

import (
	"github.com/mssola/useragent"
)

// Parse returns (client, os) descriptors for the given User-Agent
// string. Unknown or blank agents yield "Unknown".
func Parse(uaHeader string) (string, string) {
	if uaHeader == "" {
		return "Unknown", "Unknown"
	}

	ua := useragent.New(uaHeader)

	client, version := ua.Browser()
	if client == "" {
		client = "Unknown"
	} else if version != "" {
		client = client + " " + version
	}

	osInfo := ua.OSInfo()
	os := osInfo.FullName
	if os == "" {
		os = ua.OS()
	}
	if os == "" {
		os = "Unknown"
	}

	return client, os
}
