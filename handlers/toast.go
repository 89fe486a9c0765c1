package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// Toast kinds understood by the page script.
const (
	ToastSuccess = "success"
	ToastWarning = "warning"
	ToastError   = "error"
)

// SetToast queues a toast through the HX-Trigger header and a short-lived
// flash cookie; the cookie covers plain redirects where HTMX never sees the
// header.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}
	TriggerEvent(e, "showToast", payload)

	cookieVal, err := json.Marshal(payload)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // read by the page script
		SameSite: http.SameSiteLaxMode,
	})
}

// TriggerEvent adds one client event to HX-Trigger, keeping any events that
// are already queued. A header that is not a JSON object is replaced.
func TriggerEvent(e *core.RequestEvent, name string, detail any) {
	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			events = map[string]any{}
		}
	}
	events[name] = detail

	data, err := json.Marshal(events)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}

// ErrorToast shows an error toast and tells HTMX to leave the page as it is.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, ToastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// toastNotifier shows quick-create alerts as error toasts on the current
// response.
type toastNotifier struct {
	e     *core.RequestEvent
	fired bool
}

func (n *toastNotifier) Alert(message string) {
	n.fired = true
	SetToast(n.e, ToastError, message)
	n.e.Response.Header().Set("HX-Reswap", "none")
}
