package site

import (
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
)

const (
	contactSelector = "[data-contact-form]"
	successSelector = "[data-form-success]"
)

// ContactForm intercepts submission of the contact form. Nothing is sent
// anywhere; the user sees the success message and the fields are cleared.
type ContactForm struct {
	form    dom.Element
	success dom.Element
}

func initContactForm(s *Site) *ContactForm {
	form := s.doc.Query(contactSelector)
	if form == nil {
		return nil
	}

	cf := &ContactForm{form: form, success: form.Query(successSelector)}
	s.listen(form, events.Submit, cf.handle)
	return cf
}

func (cf *ContactForm) handle(ev events.Event) {
	ev.PreventDefault()
	if cf.success != nil {
		cf.success.SetStyle("display", "block")
	}
	cf.form.Reset()
}
