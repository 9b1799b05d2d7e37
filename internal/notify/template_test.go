package notify_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justiceplatform/courtnotify/internal/notify"
)

func TestTemplateFor_CatalogExhaustive(t *testing.T) {
	for _, form := range notify.FormTypes() {
		english, err := notify.TemplateFor(form, false)
		require.NoError(t, err, "form %s", form)
		welsh, err := notify.TemplateFor(form, true)
		require.NoError(t, err, "form %s", form)

		assert.NotEmpty(t, english)
		assert.NotEmpty(t, welsh)
		assert.NotEqual(t, english, welsh, "welsh variant of %s must differ", form)
	}
}

func TestTemplateFor_KnownNames(t *testing.T) {
	got, err := notify.TemplateFor(notify.FormBoxworkNotice, false)
	require.NoError(t, err)
	assert.Equal(t, "CC_BoxworkNotice_Eng", got)

	got, err = notify.TemplateFor(notify.FormBoxworkNotice, true)
	require.NoError(t, err)
	assert.Equal(t, "CC_BoxworkNotice_Cym", got)
}

func TestTemplateFor_UnknownFormIsError(t *testing.T) {
	_, err := notify.TemplateFor(notify.FormType("committal-warrant"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, notify.ErrUnmappedTemplate))
}
