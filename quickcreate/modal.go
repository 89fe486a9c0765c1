package quickcreate

import "net/url"

// DefaultTokenField is the anti-forgery field carried by modal forms.
const DefaultTokenField = "csrfmiddlewaretoken"

// ModalForm is a form shown in a dialog whose submission is sent in the
// background instead of navigating.
type ModalForm struct {
	ID         string
	Action     string
	Fields     url.Values
	TokenField string

	open bool
}

// NewModalForm returns a closed, empty modal posting to action.
func NewModalForm(id, action string) *ModalForm {
	return &ModalForm{
		ID:         id,
		Action:     action,
		Fields:     url.Values{},
		TokenField: DefaultTokenField,
	}
}

func (m *ModalForm) Open()        { m.open = true }
func (m *ModalForm) IsOpen() bool { return m.open }

// Close hides the modal. Closing a closed modal is a no-op.
func (m *ModalForm) Close() { m.open = false }

func (m *ModalForm) Get(name string) string { return m.Fields.Get(name) }

func (m *ModalForm) Set(name, value string) {
	if m.Fields == nil {
		m.Fields = url.Values{}
	}
	m.Fields.Set(name, value)
}

// Reset empties every field except the anti-forgery token.
func (m *ModalForm) Reset() {
	token := m.Fields.Get(m.TokenField)
	m.Fields = url.Values{}
	if token != "" {
		m.Fields.Set(m.TokenField, token)
	}
}
