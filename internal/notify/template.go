// Package notify turns boxwork decisions into outbound notifications:
// template selection, channel dispatch, and correlation plumbing.
package notify

import (
	"errors"
	"fmt"
)

// ErrUnmappedTemplate is returned when no template is registered for a form
// type. It is a configuration error: callers must be exhaustive over the
// supported catalog, never fall back to a default artifact.
var ErrUnmappedTemplate = errors.New("no template mapped for form type")

// FormType identifies a document kind in the template catalog.
type FormType string

// Supported form types.
const (
	FormBoxworkNotice FormType = "boxwork-notice"
	FormHearingNotice FormType = "hearing-notice"
	FormSummons       FormType = "summons"
)

// templateNames holds the English and Welsh template for one form type.
// This is a lookup table rather than a suffix rule: Welsh names are not
// mechanically derivable for every kind (the summons pair is bilingual).
type templateNames struct {
	english string
	welsh   string
}

var templateCatalog = map[FormType]templateNames{
	FormBoxworkNotice: {english: "CC_BoxworkNotice_Eng", welsh: "CC_BoxworkNotice_Cym"},
	FormHearingNotice: {english: "CC_HearingNotice_Eng", welsh: "CC_HearingNotice_Cym"},
	FormSummons:       {english: "CC_Summons_Eng", welsh: "CC_SummonsBilingual"},
}

// TemplateFor returns the template name for the given form type and
// language flag. Unknown form types fail with ErrUnmappedTemplate.
func TemplateFor(form FormType, welsh bool) (string, error) {
	names, ok := templateCatalog[form]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnmappedTemplate, form)
	}
	if welsh {
		return names.welsh, nil
	}
	return names.english, nil
}

// FormTypes returns the supported catalog, for exhaustiveness checks.
func FormTypes() []FormType {
	return []FormType{FormBoxworkNotice, FormHearingNotice, FormSummons}
}
