package model

import "strings"

// LegacyGameFields is the loosely-typed shape games arrive in from admin
// forms and old exports: both spellings of a field may be present.
type LegacyGameFields struct {
	IsDisabled      bool
	WithCertificate *bool
	WithCerticate   *bool // historic misspelling
	Mailtext        *string
	MailText        *string
	Activation      *Activation
}

type NormalizedGameFields struct {
	IsDisabled      bool
	WithCertificate bool
	Mailtext        *string
	Activation      *Activation
}

// NormalizeLegacy reconciles legacy names into the canonical shape. The
// canonical spelling wins when both are set.
func NormalizeLegacy(raw LegacyGameFields) NormalizedGameFields {
	out := NormalizedGameFields{IsDisabled: raw.IsDisabled}

	switch {
	case raw.WithCertificate != nil:
		out.WithCertificate = *raw.WithCertificate
	case raw.WithCerticate != nil:
		out.WithCertificate = *raw.WithCerticate
	}

	switch {
	case raw.Mailtext != nil && strings.TrimSpace(*raw.Mailtext) != "":
		out.Mailtext = raw.Mailtext
	case raw.MailText != nil && strings.TrimSpace(*raw.MailText) != "":
		out.Mailtext = raw.MailText
	}

	out.Activation = EnsureActivation(raw.Activation)
	return out
}

// EnsureActivation fills in a disabled block for rows without one. A missing
// block never makes a game playable; isDisabled only suppresses further.
func EnsureActivation(a *Activation) *Activation {
	if a != nil {
		return a
	}
	return &Activation{Enabled: false}
}
