package handlers

import (
	"net/http"

	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/http/middleware"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type generateInvoiceRequest struct {
	BookingID  string `json:"bookingId"`
	CompanyKey string `json:"companyKey"`
}

func invoiceService(c *gin.Context) services.InvoiceService {
	return services.InvoiceService{
		Renderer:  services.PDFInvoiceRenderer{AssetDir: currentSettings().assetDir},
		RequestID: middleware.GetRequestID(c),
	}
}

func invoiceFilterFromQuery(c *gin.Context) (repositories.InvoiceFilter, error) {
	f := repositories.InvoiceFilter{BookingID: c.Query("bookingId")}
	var err error
	if f.CompanyID, err = queryInt64(c, "companyId"); err != nil {
		return f, err
	}
	if f.From, err = queryTime(c, "from", false); err != nil {
		return f, err
	}
	if f.To, err = queryTime(c, "to", true); err != nil {
		return f, err
	}
	return f, nil
}

// POST /api/invoices issues an invoice and returns the rendered PDF.
func GenerateInvoice(c *gin.Context) {
	var req generateInvoiceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := invoiceService(c)
	doc, err := svc.Issue(c.Request.Context(), req.BookingID, req.CompanyKey, middleware.CurrentUser(c).UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, filename, err := svc.RenderDocument(doc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("X-Invoice-Number", doc.Invoice.InvoiceNumber)
	sendAttachment(c, pdfContentType, filename, data)
}

// GET /api/invoices
func GetInvoices(c *gin.Context) {
	f, err := invoiceFilterFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	list, err := invoiceService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/invoices/export
func ExportInvoices(c *gin.Context) {
	f, err := invoiceFilterFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, filename, err := services.ExportService{RequestID: middleware.GetRequestID(c)}.Invoices(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendAttachment(c, xlsxContentType, filename, data)
}

// GET /api/invoices/:id
func GetInvoiceByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	doc, err := invoiceService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GET /api/invoices/:id/pdf
func GetInvoicePDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	data, filename, err := invoiceService(c).Render(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendAttachment(c, pdfContentType, filename, data)
}

// PUT /api/invoices/:id
func UpdateInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var upd models.InvoiceUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	inv, err := invoiceService(c).Update(c.Request.Context(), id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// DELETE /api/invoices/:id
func DeleteInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := invoiceService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}
