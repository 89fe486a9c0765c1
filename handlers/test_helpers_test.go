package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"comprasweb/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newFormRequest builds a urlencoded POST as an HTMX form submit would.
func newFormRequest(target string, values url.Values, htmx bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

// catalogFixture holds the records most order form tests start from.
type catalogFixture struct {
	proveedor *core.Record
	formaPago *core.Record
	empleado  *core.Record
	resma     *core.Record // 4500
	tinta     *core.Record // 1250.5
}

func newCatalogFixture(t *testing.T, app *pocketbase.PocketBase) catalogFixture {
	t.Helper()
	return catalogFixture{
		proveedor: testhelpers.CreateTestProveedor(t, app, "Papelera del Sur"),
		formaPago: testhelpers.CreateTestFormaPago(t, app, "Efectivo"),
		empleado:  testhelpers.CreateTestEmpleado(t, app, "Lucía", "Fernández"),
		resma:     testhelpers.CreateTestInsumo(t, app, "Resma A4", 4500),
		tinta:     testhelpers.CreateTestInsumo(t, app, "Tinta negra", 1250.5),
	}
}

// formValues is a valid posted order form with the given rows, each given
// as insumo id, cantidad and precio.
func (fx catalogFixture) formValues(rows ...[3]string) url.Values {
	v := url.Values{}
	v.Set("proveedor", fx.proveedor.Id)
	v.Set("forma_pago", fx.formaPago.Id)
	v.Set("empleado", fx.empleado.Id)
	for i, r := range rows {
		idx := strconv.Itoa(i)
		v.Set("detallescompra_set-"+idx+"-insumo", r[0])
		v.Set("detallescompra_set-"+idx+"-cantidad", r[1])
		v.Set("detallescompra_set-"+idx+"-precio_unitario", r[2])
		v.Set("detallescompra_set-"+idx+"-subtotal", "")
	}
	v.Set("detallescompra_set-TOTAL_FORMS", strconv.Itoa(len(rows)))
	v.Set("detallescompra_set-INITIAL_FORMS", "0")
	return v
}
