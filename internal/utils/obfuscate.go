package utils

import "strings"

// Masking helpers for contact identifiers shown back to the client.
// Display only — never used for storage or comparison.

// ObfuscateMobile keeps the last 4 characters: +60123456789 -> ******6789.
func ObfuscateMobile(mobile string) string {
	if len(mobile) < 4 {
		return "******"
	}
	return "******" + mobile[len(mobile)-4:]
}

// ObfuscateEmail keeps the first 2 chars of the local part and the domain
// extension: mariam.khan@gmail.com -> ma**@****.com.
func ObfuscateEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "**@****.***"
	}
	username, domain := parts[0], parts[1]

	masked := "**"
	if len(username) > 2 {
		masked = username[:2] + "**"
	}

	ext := "com"
	if domainParts := strings.Split(domain, "."); len(domainParts) > 0 {
		ext = domainParts[len(domainParts)-1]
	}
	return masked + "@****." + ext
}

// ObfuscateICNumber keeps the first 2 and last 2 characters:
// 880215106789 -> 88********89.
func ObfuscateICNumber(ic string) string {
	if len(ic) < 4 {
		return "**********"
	}
	return ic[:2] + strings.Repeat("*", len(ic)-4) + ic[len(ic)-2:]
}
