// Package services – personalization engine
//
// This file implements the pure string-substitution engine used to
// personalize outbound messages, plus the mapping from a candidate profile to
// the recognized variable set. Rendering is deterministic, allocation-light,
// and safe for concurrent use: no state is shared between calls.
package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AlexBaum-ai/outreach-backend/internal/domain"
)

// Recognized personalization variable keys. Keys in templates are matched
// case-insensitively.
const (
	VarCandidateName   = "candidate_name"
	VarCandidateHandle = "candidate_handle"
	VarSkills          = "skills"
	VarLatestRole      = "latest_role"
	VarLocation        = "location"
)

// placeholderRE matches {{ key }} with insignificant whitespace around the key.
var placeholderRE = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Render substitutes recognized placeholders in template with values from
// variables. Placeholders whose key is absent or whose value is empty are
// removed entirely so raw template syntax never leaks into a delivered
// message. Substituted values are never re-scanned for placeholders.
func Render(template string, variables map[string]string) string {
	if template == "" {
		return ""
	}
	// Normalize variable keys once so lookup is case-insensitive.
	norm := make(map[string]string, len(variables))
	for k, v := range variables {
		norm[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return placeholderRE.ReplaceAllStringFunc(template, func(match string) string {
		m := placeholderRE.FindStringSubmatch(match)
		if len(m) != 2 {
			return ""
		}
		if v, ok := norm[strings.ToLower(m[1])]; ok && v != "" {
			return v
		}
		return ""
	})
}

// handleSepRE splits handles like "ada.lovelace" or "ada_lovelace-82".
var handleSepRE = regexp.MustCompile(`[._\-]+`)

// handleTrailingDigitsRE strips numeric suffixes from handle words.
var handleTrailingDigitsRE = regexp.MustCompile(`\d+$`)

var handleCaser = cases.Title(language.English)

// ProfileVars maps a candidate profile to the personalization variable set.
// Absent profile fields simply produce empty values, which Render removes.
// When the profile has no display name, a readable one is derived from the
// handle ("ada.lovelace" → "Ada Lovelace").
func ProfileVars(c *domain.Candidate) map[string]string {
	if c == nil {
		return map[string]string{}
	}
	name := strings.TrimSpace(c.DisplayName)
	if name == "" {
		name = nameFromHandle(c.Handle)
	}
	return map[string]string{
		VarCandidateName:   name,
		VarCandidateHandle: strings.TrimSpace(c.Handle),
		VarSkills:          strings.Join(c.Skills, ", "),
		VarLatestRole:      strings.TrimSpace(c.LatestRole),
		VarLocation:        strings.TrimSpace(c.Location),
	}
}

// nameFromHandle derives a display name from a handle by splitting on
// separators, dropping numeric suffixes, and title-casing the words.
func nameFromHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return ""
	}
	parts := handleSepRE.Split(handle, -1)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		p = handleTrailingDigitsRE.ReplaceAllString(p, "")
		if p == "" {
			continue
		}
		words = append(words, handleCaser.String(p))
	}
	return strings.Join(words, " ")
}
