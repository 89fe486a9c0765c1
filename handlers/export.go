package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"comprasweb/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

func exportFilename(data *services.ExportData, ext string) string {
	name := "Compra"
	if data.Proveedor != "" {
		name += "_" + sanitizeFilename(data.Proveedor)
	}
	return fmt.Sprintf("%s_%s.%s", name, data.FechaCompra, ext)
}

// HandleCompraExportExcel downloads a compra as an Excel workbook.
func HandleCompraExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		compraID := e.Request.PathValue("id")
		if compraID == "" {
			return e.String(http.StatusBadRequest, "Falta el ID de la compra")
		}

		data, err := services.BuildExportData(app, compraID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Compra no encontrada")
		}

		xlsxBytes, err := services.GenerateExcel(*data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo generar el archivo Excel")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleCompraExportPDF downloads a compra as a PDF document.
func HandleCompraExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		compraID := e.Request.PathValue("id")
		if compraID == "" {
			return e.String(http.StatusBadRequest, "Falta el ID de la compra")
		}

		data, err := services.BuildExportData(app, compraID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Compra no encontrada")
		}

		pdfBytes, err := services.GeneratePDF(*data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo generar el archivo PDF")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}
