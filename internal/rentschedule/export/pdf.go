package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
)

// PDFExporter wraps Gotenberg interactions for schedule exports.
type PDFExporter struct {
	Endpoint string
	Client   *http.Client
}

// RenderSchedule sends HTML content to Gotenberg and returns the PDF bytes.
func (p *PDFExporter) RenderSchedule(ctx context.Context, doc rentschedule.Document) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialised")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	content := buildHTML(doc)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "schedule.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, content); err != nil {
		return nil, err
	}
	if err := writer.WriteField("waitDelay", "500"); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	return io.ReadAll(resp.Body)
}

func buildHTML(doc rentschedule.Document) string {
	var b strings.Builder
	b.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:sans-serif;margin:24px;}h1{font-size:20px;}table{width:100%;border-collapse:collapse;margin-bottom:16px;}th,td{border:1px solid #ddd;padding:6px;text-align:right;}th{text-align:left;background:#f5f5f5;}section{margin-bottom:24px;} .label{text-align:left;}")
	b.WriteString("</style></head><body>")
	b.WriteString(fmt.Sprintf("<h1>Rent Schedule – %s</h1>", html.EscapeString(doc.PropertyName)))

	for _, section := range doc.Sections.All() {
		b.WriteString("<section><h2>")
		b.WriteString(html.EscapeString(section.Title))
		b.WriteString("</h2><table><tbody>")
		for _, item := range section.Items {
			b.WriteString("<tr><td class=\"label\">")
			b.WriteString(html.EscapeString(item.Label))
			b.WriteString("</td><td>")
			b.WriteString(fmt.Sprintf("£%.2f", item.Amount))
			b.WriteString("</td></tr>")
		}
		b.WriteString("<tr><th class=\"label\">Subtotal</th><th>")
		b.WriteString(fmt.Sprintf("£%.2f", section.Subtotal))
		b.WriteString("</th></tr></tbody></table></section>")
	}

	totals := rentschedule.ComputeTotals(doc)
	b.WriteString("<section><h2>Weekly Totals</h2><table><tbody>")
	rows := []struct {
		label string
		value float64
	}{
		{"Core rent", totals.CoreRentWeekly},
		{"Eligible service charges", totals.ServiceChargesWeekly},
		{"Ineligible services", totals.IneligibleWeekly},
		{"Gross weekly rent", totals.GrossWeeklyRent},
		{"Eligible for Housing Benefit", totals.EligibleForHB},
		{"Ineligible for Housing Benefit", totals.IneligibleForHB},
	}
	for _, row := range rows {
		b.WriteString("<tr><td class=\"label\">")
		b.WriteString(html.EscapeString(row.label))
		b.WriteString("</td><td>")
		b.WriteString(fmt.Sprintf("£%.2f", row.value))
		b.WriteString("</td></tr>")
	}
	b.WriteString("</tbody></table></section>")
	b.WriteString("</body></html>")
	return b.String()
}
