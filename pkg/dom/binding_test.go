package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mesto/pkg/dom"
	"github.com/dmitrymomot/mesto/pkg/validation"
)

const forms = `<!DOCTYPE html><html><body>
<form class="popup__form" name="edit-profile" novalidate>
  <input class="popup__input" id="name-input" name="name" required minlength="2" maxlength="40" value="Jacques">
  <span class="name-input-error popup__error"></span>
  <input class="popup__input" id="about-input" name="description" required minlength="2" maxlength="200" value="Explorer">
  <span class="about-input-error popup__error"></span>
  <button class="popup__button" type="submit">Save</button>
</form>
<form class="popup__form" name="new-place" novalidate>
  <input class="popup__input" id="place-input" name="place-name" required minlength="2" maxlength="30">
  <span class="place-input-error popup__error"></span>
  <input class="popup__input" id="link-input" name="link" type="url" required>
  <span class="link-input-error popup__error"></span>
  <button class="popup__button" type="submit">Create</button>
</form>
<form class="popup__form" name="confirm" novalidate>
  <button class="popup__button" type="submit">Yes</button>
</form>
<form class="popup__form" name="odd" novalidate>
  <input class="popup__input" id="1st" required>
  <span class="1st-error"></span>
</form>
</body></html>`

var cfg = validation.DefaultConfig()

func setupForms(t *testing.T) (*dom.Document, *validation.Validator) {
	t.Helper()
	doc := parse(t, forms)
	v := validation.Enable(doc.ValidationRoot(), cfg)
	t.Cleanup(v.Close)
	return doc, v
}

func submit(doc *dom.Document, form string) *dom.Element {
	return doc.QuerySelector(`form[name="` + form + `"] .popup__button`)
}

func TestEnableOnDocument(t *testing.T) {
	t.Run("initial state", func(t *testing.T) {
		doc, v := setupForms(t)
		assert.Equal(t, 4, v.Forms())

		assert.False(t, submit(doc, "edit-profile").Disabled(), "prefilled form is valid")
		assert.True(t, submit(doc, "new-place").Disabled())
		assert.True(t, submit(doc, "new-place").HasClass(cfg.InactiveButtonClass))
		assert.False(t, submit(doc, "confirm").Disabled(), "form without inputs is valid")
		assert.Empty(t, doc.QuerySelector(".place-input-error").TextContent())
	})

	t.Run("required field emptied", func(t *testing.T) {
		doc, _ := setupForms(t)
		name := doc.GetElementByID("name-input")
		name.Input("")

		display := doc.QuerySelector(".name-input-error")
		assert.Equal(t, "Please fill out this field.", display.TextContent())
		assert.True(t, display.HasClass(cfg.ErrorClass))
		assert.True(t, name.HasClass(cfg.InputErrorClass))
		assert.True(t, submit(doc, "edit-profile").Disabled())

		name.Input("Marie")
		assert.Empty(t, display.TextContent())
		assert.False(t, display.HasClass(cfg.ErrorClass))
		assert.False(t, submit(doc, "edit-profile").Disabled())
	})

	t.Run("url field", func(t *testing.T) {
		doc, _ := setupForms(t)
		doc.GetElementByID("place-input").Input("Arkhyz")
		link := doc.GetElementByID("link-input")

		link.Input("not-a-url")
		assert.Equal(t, "Please enter a URL.", doc.QuerySelector(".link-input-error").TextContent())
		assert.True(t, submit(doc, "new-place").Disabled())

		link.Input("https://example.com/arkhyz.jpg")
		assert.Empty(t, doc.QuerySelector(".link-input-error").TextContent())
		assert.False(t, submit(doc, "new-place").Disabled())
	})

	t.Run("forms do not affect each other", func(t *testing.T) {
		doc, _ := setupForms(t)
		doc.GetElementByID("place-input").Input("a")
		assert.True(t, submit(doc, "new-place").Disabled())
		assert.False(t, submit(doc, "edit-profile").Disabled())
		assert.Empty(t, doc.QuerySelector(".name-input-error").TextContent())
	})

	t.Run("other input display untouched", func(t *testing.T) {
		doc, _ := setupForms(t)
		doc.GetElementByID("place-input").Input("a")
		doc.GetElementByID("link-input").Input("https://example.com")
		assert.NotEmpty(t, doc.QuerySelector(".place-input-error").TextContent())
	})

	t.Run("clear after reset", func(t *testing.T) {
		doc, _ := setupForms(t)
		doc.GetElementByID("place-input").Input("a")
		doc.GetElementByID("link-input").Input("bad")

		form := doc.QuerySelector(`form[name="new-place"]`)
		form.Reset()
		validation.Clear(dom.ValidationForm(form), cfg)

		for _, display := range form.QuerySelectorAll(".popup__error") {
			assert.Empty(t, display.TextContent())
			assert.False(t, display.HasClass(cfg.ErrorClass))
		}
		for _, in := range form.QuerySelectorAll(".popup__input") {
			assert.False(t, in.HasClass(cfg.InputErrorClass))
		}
		assert.True(t, submit(doc, "new-place").Disabled())
	})

	t.Run("ids needing escapes", func(t *testing.T) {
		doc, _ := setupForms(t)
		in := doc.GetElementByID("1st")
		in.Input("")
		assert.Equal(t, "Please fill out this field.", doc.QuerySelector(`form[name="odd"] span`).TextContent())
	})
}

func TestValidationForm(t *testing.T) {
	doc := parse(t, forms)
	form := dom.ValidationForm(doc.QuerySelector(`form[name="confirm"]`))

	assert.Empty(t, form.Inputs(cfg.InputSelector))
	_, ok := form.SubmitControl(".missing")
	assert.False(t, ok)

	control, ok := form.SubmitControl(cfg.SubmitButtonSelector)
	require.True(t, ok)
	assert.Same(t, submit(doc, "confirm"), control)

	profile := dom.ValidationForm(doc.QuerySelector(`form[name="edit-profile"]`))
	inputs := profile.Inputs(cfg.InputSelector)
	require.Len(t, inputs, 2)
	display, ok := profile.ErrorDisplay(inputs[1])
	require.True(t, ok)
	assert.Same(t, doc.QuerySelector(".about-input-error"), display)

	_, ok = form.ErrorDisplay(inputs[0])
	assert.False(t, ok, "display is looked up inside the form")
}
