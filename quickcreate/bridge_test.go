package quickcreate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

type alertRecorder struct {
	messages []string
}

func (a *alertRecorder) Alert(message string) {
	a.messages = append(a.messages, message)
}

func TestPost_SendsBackgroundFormRequest(t *testing.T) {
	var got *http.Request
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"id":5,"nombre":"Papel"}`)
	}))
	defer srv.Close()

	modal := NewModalForm("insumoModal", srv.URL+"/insumos/quick")
	modal.Set("nombre", "Papel")
	modal.Set(DefaultTokenField, "tok")

	resp, err := NewBridge(srv.Client(), nil).Submit(context.Background(), modal)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if got.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", got.Method)
	}
	if h := got.Header.Get("X-Requested-With"); h != "XMLHttpRequest" {
		t.Errorf("X-Requested-With = %q", h)
	}
	if ct := got.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", ct)
	}
	form, _ := url.ParseQuery(body)
	if form.Get("nombre") != "Papel" || form.Get(DefaultTokenField) != "tok" {
		t.Errorf("body = %q, want nombre and token", body)
	}
	if !resp.Success || resp.ID != "5" || resp.Nombre != "Papel" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestPost_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "<html>Server Error</html>")
	}))
	defer srv.Close()

	_, err := NewBridge(srv.Client(), nil).Post(context.Background(), srv.URL, url.Values{})
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestPost_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := NewBridge(nil, nil).Post(context.Background(), addr, url.Values{})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}

func TestHandleResponse_SuccessClosesAndResets(t *testing.T) {
	alerts := &alertRecorder{}
	b := NewBridge(nil, alerts)
	modal := NewModalForm("m", "/x")
	modal.Open()
	modal.Set("nombre", "Cemento")
	modal.Set(DefaultTokenField, "tok")

	called := false
	ok := b.HandleResponse(&Response{Success: true, ID: "1"}, modal, func(*Response) { called = true })

	if !ok || !called {
		t.Fatalf("ok = %v, called = %v", ok, called)
	}
	if modal.IsOpen() {
		t.Error("modal still open")
	}
	if modal.Get("nombre") != "" {
		t.Errorf("nombre = %q, want reset", modal.Get("nombre"))
	}
	if modal.Get(DefaultTokenField) != "tok" {
		t.Error("reset dropped the anti-forgery token")
	}
	if len(alerts.messages) != 0 {
		t.Errorf("alerts = %v, want none", alerts.messages)
	}

	modal.Close()
	if modal.IsOpen() {
		t.Error("second Close reopened the modal")
	}
}

func TestHandleResponse_FailureAlertsWithoutMutation(t *testing.T) {
	alerts := &alertRecorder{}
	b := NewBridge(nil, alerts)
	modal := NewModalForm("m", "/x")
	modal.Open()
	modal.Set("nombre", "")

	resp := &Response{Success: false, Errors: []byte(`{"nombre":["required"]}`)}
	called := false
	ok := b.HandleResponse(resp, modal, func(*Response) { called = true })

	if ok || called {
		t.Fatalf("ok = %v, called = %v, want false/false", ok, called)
	}
	if !modal.IsOpen() {
		t.Error("modal closed on failure")
	}
	if len(alerts.messages) != 1 || !strings.Contains(alerts.messages[0], "nombre: required") {
		t.Errorf("alerts = %v, want one mentioning the field error", alerts.messages)
	}
}

func TestHandle_TransportErrorIsGeneric(t *testing.T) {
	alerts := &alertRecorder{}
	b := NewBridge(nil, alerts)
	modal := NewModalForm("m", "/x")
	modal.Open()

	ok := b.Handle(nil, ErrTransport, modal, func(*Response) { t.Error("success handler ran") })

	if ok {
		t.Error("Handle returned true for a transport error")
	}
	if !modal.IsOpen() {
		t.Error("modal closed after transport error")
	}
	if len(alerts.messages) != 1 || alerts.messages[0] != GenericFailure {
		t.Errorf("alerts = %v, want generic failure", alerts.messages)
	}
}

func TestResponseDecoding(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantID    string
		wantPrice string
	}{
		{"strings", `{"success":true,"id":"42","precio_costo_unitario":"120.00"}`, "42", "120.00"},
		{"numbers", `{"success":true,"id":42,"precio_costo_unitario":120.5}`, "42", "120.5"},
		{"null_price", `{"success":true,"id":"1","precio_costo_unitario":null}`, "1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			resp, err := NewBridge(srv.Client(), nil).Post(context.Background(), srv.URL, nil)
			if err != nil {
				t.Fatalf("Post: %v", err)
			}
			if resp.ID.String() != tt.wantID {
				t.Errorf("ID = %q, want %q", resp.ID, tt.wantID)
			}
			if resp.PrecioCostoUnitario.String() != tt.wantPrice {
				t.Errorf("price = %q, want %q", resp.PrecioCostoUnitario, tt.wantPrice)
			}
		})
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"field_errors", Failed(map[string][]string{"nombre": {"required"}, "cuit": {"inválido"}}, ""), "cuit: inválido; nombre: required"},
		{"message", Response{Message: "sin permiso"}, "sin permiso"},
		{"raw", Response{Errors: []byte(`"boom"`)}, `"boom"`},
		{"empty", Response{}, "la solicitud fue rechazada"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.ErrorText(); got != tt.want {
				t.Errorf("ErrorText() = %q, want %q", got, tt.want)
			}
		})
	}
}
