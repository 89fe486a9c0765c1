// Package quickcreate sends "create related record" modal forms in the
// background and splices the created record into an order form.
package quickcreate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrTransport = errors.New("quickcreate: request failed")
	ErrDecode    = errors.New("quickcreate: response is not JSON")
)

// GenericFailure is shown when the request itself fails.
const GenericFailure = "No se pudo completar la operación. Intente nuevamente."

// DefaultTimeout bounds a background request when no client is supplied.
const DefaultTimeout = 30 * time.Second

const maxResponseBytes = 1 << 20

// Notifier shows a message to the user.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) { f(message) }

// SuccessHandler applies an acknowledged create to local state.
type SuccessHandler func(resp *Response)

// Bridge posts modal forms and applies their acknowledgements.
type Bridge struct {
	client   *http.Client
	notifier Notifier
}

// NewBridge returns a bridge using client, or a client with DefaultTimeout
// when client is nil.
func NewBridge(client *http.Client, notifier Notifier) *Bridge {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if notifier == nil {
		notifier = NotifierFunc(func(msg string) { log.Printf("quickcreate: alert: %s", msg) })
	}
	return &Bridge{client: client, notifier: notifier}
}

// Post sends fields as a background form POST to action and decodes the JSON
// acknowledgement. The status code is not interpreted; the body decides.
func (b *Bridge) Post(ctx context.Context, action string, fields url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, action, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	res, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", ErrDecode, res.StatusCode, err)
	}
	return &resp, nil
}

// Submit posts the modal's fields to its action.
func (b *Bridge) Submit(ctx context.Context, m *ModalForm) (*Response, error) {
	return b.Post(ctx, m.Action, m.Fields)
}

// HandleResponse applies an acknowledgement. A rejected create alerts the
// user and changes nothing. An accepted one runs onSuccess, then closes and
// resets the modal. It reports whether the create was accepted.
func (b *Bridge) HandleResponse(resp *Response, m *ModalForm, onSuccess SuccessHandler) bool {
	if resp == nil || !resp.Success {
		text := "la solicitud fue rechazada"
		if resp != nil {
			text = resp.ErrorText()
		}
		b.notifier.Alert("Error: " + text)
		return false
	}

	if onSuccess != nil {
		onSuccess(resp)
	}
	m.Close()
	m.Reset()
	return true
}

// Handle is HandleResponse for the result of Submit. Transport and decode
// failures are logged and reported generically; the modal stays open.
func (b *Bridge) Handle(resp *Response, err error, m *ModalForm, onSuccess SuccessHandler) bool {
	if err != nil {
		log.Printf("quickcreate: %s: %v", m.ID, err)
		b.notifier.Alert(GenericFailure)
		return false
	}
	return b.HandleResponse(resp, m, onSuccess)
}

// SubmitAndHandle submits m and applies the outcome in one call.
func (b *Bridge) SubmitAndHandle(ctx context.Context, m *ModalForm, onSuccess SuccessHandler) bool {
	resp, err := b.Submit(ctx, m)
	return b.Handle(resp, err, m, onSuccess)
}
