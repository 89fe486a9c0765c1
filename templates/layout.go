package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// NavData is shown in the header of every full page.
type NavData struct {
	ActivePath     string
	CompraCount    int
	ProveedorCount int
	InsumoCount    int
	LowStockCount  int
}

type navLink struct {
	href  string
	label string
	count int
}

// Page wraps content in the full HTML document with the navigation bar.
func Page(title string, nav NavData, content templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(title)
		h.raw(" · Tinta Negra</title>")
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css"></head><body>`)

		h.raw(`<header class="nav"><strong>Tinta Negra</strong>`)
		links := []navLink{
			{"/compras", "Compras", nav.CompraCount},
			{"/compras/nueva", "Nueva compra", 0},
		}
		for _, l := range links {
			h.raw("<a")
			h.attr("href", l.href)
			if nav.ActivePath == l.href {
				h.attr("class", "active")
			}
			h.raw(">")
			h.text(l.label)
			if l.count > 0 {
				h.raw(` <span class="badge">`, strconv.Itoa(l.count), "</span>")
			}
			h.raw("</a>")
		}
		h.raw(`<span class="stats">`)
		h.text(strconv.Itoa(nav.ProveedorCount) + " proveedores · " + strconv.Itoa(nav.InsumoCount) + " insumos")
		if nav.LowStockCount > 0 {
			h.raw(` <span class="warn">`)
			h.text(strconv.Itoa(nav.LowStockCount) + " con stock bajo")
			h.raw("</span>")
		}
		h.raw("</span></header>")

		h.raw(`<main>`)
		h.render(ctx, content)
		h.raw(`</main><div id="toast" class="toast" hidden></div>`)
		h.raw(`<script>`, toastJS, `</script></body></html>`)
	})
}

const toastJS = `function showToast(d){var t=document.getElementById("toast");t.textContent=d.message;t.className="toast "+(d.type||"");t.hidden=false;clearTimeout(t._h);t._h=setTimeout(function(){t.hidden=true},4000)}
document.body.addEventListener("showToast",function(e){showToast(e.detail)});
(function(){var m=document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);if(m){try{showToast(JSON.parse(decodeURIComponent(m[1].replace(/\+/g," "))))}catch(e){}document.cookie="flash_toast=; Max-Age=0; path=/"}})();`
