package pdf

import (
	"bytes"
	"html/template"

	"github.com/shabihhaider/waterbottle-admin/internal/models"
)

// invoiceTemplate 账单 PDF 模板（A4 纵向）
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1f2933; margin: 36px; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .muted { color: #6b7280; }
  .header { display: flex; justify-content: space-between; margin-bottom: 24px; }
  .badge { text-transform: uppercase; font-weight: bold; letter-spacing: 1px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th { text-align: left; border-bottom: 2px solid #1f2933; padding: 6px 4px; }
  td { border-bottom: 1px solid #e5e7eb; padding: 6px 4px; }
  .num { text-align: right; }
  .totals { margin-top: 16px; width: 40%; margin-left: auto; }
  .totals td { border: none; padding: 3px 4px; }
  .totals .grand td { border-top: 2px solid #1f2933; font-weight: bold; }
</style>
</head>
<body>
  <div class="header">
    <div>
      <h1>HydroPak Water Supply</h1>
      <div class="muted">Invoice {{.InvoiceNo}}</div>
      <div class="badge">{{.Status}}</div>
    </div>
    <div>
      <div>Issued: {{.IssuedAt}}</div>
      {{if .DueDate}}<div>Due: {{.DueDate}}</div>{{end}}
      {{if .OrderNo}}<div class="muted">Order {{.OrderNo}}</div>{{end}}
    </div>
  </div>

  <div>
    <strong>Billed to</strong><br>
    {{.CustomerName}}<br>
    {{if .CustomerPhone}}{{.CustomerPhone}}<br>{{end}}
    {{if .CustomerAddress}}{{.CustomerAddress}}{{end}}
  </div>

  <table>
    <thead>
      <tr><th>Description</th><th class="num">Unit Price</th><th class="num">Qty</th><th class="num">Amount</th></tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td>{{.Description}}</td>
        <td class="num">{{.UnitPrice}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.TotalPrice}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
    <tr><td>Tax</td><td class="num">{{.TaxAmount}}</td></tr>
    <tr><td>Discount</td><td class="num">-{{.DiscountAmount}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{.TotalAmount}}</td></tr>
    <tr><td>Paid</td><td class="num">{{.PaidAmount}}</td></tr>
    <tr class="grand"><td>Balance Due</td><td class="num">{{.BalanceAmount}}</td></tr>
  </table>

  {{if .Notes}}<p class="muted">{{.Notes}}</p>{{end}}
</body>
</html>`

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

type invoiceView struct {
	InvoiceNo       string
	Status          string
	IssuedAt        string
	DueDate         string
	OrderNo         string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []invoiceItemView
	Subtotal        string
	TaxAmount       string
	DiscountAmount  string
	TotalAmount     string
	PaidAmount      string
	BalanceAmount   string
	Notes           string
}

type invoiceItemView struct {
	Description string
	UnitPrice   string
	Quantity    int
	TotalPrice  string
}

// InvoiceHTML 渲染账单 HTML
func InvoiceHTML(invoice *models.Invoice) (string, error) {
	view := invoiceView{
		InvoiceNo:      invoice.InvoiceNo,
		Status:         invoice.Status,
		IssuedAt:       invoice.CreatedAt.Format("2006-01-02"),
		Subtotal:       invoice.Subtotal.String(),
		TaxAmount:      invoice.TaxAmount.String(),
		DiscountAmount: invoice.DiscountAmount.String(),
		TotalAmount:    invoice.TotalAmount.String(),
		PaidAmount:     invoice.PaidAmount.String(),
		BalanceAmount:  invoice.BalanceAmount.String(),
		Notes:          invoice.Notes,
	}
	if invoice.DueDate != nil {
		view.DueDate = invoice.DueDate.Format("2006-01-02")
	}
	if invoice.Order != nil {
		view.OrderNo = invoice.Order.OrderNo
	}
	view.CustomerName = invoice.Customer.Name
	view.CustomerPhone = invoice.Customer.Phone
	view.CustomerAddress = invoice.Customer.Address

	for _, item := range invoice.Items {
		view.Items = append(view.Items, invoiceItemView{
			Description: item.Description,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice.String(),
		})
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
