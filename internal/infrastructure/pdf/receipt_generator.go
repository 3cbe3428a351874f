// Package pdf genera el comprobante PDF de un upgrade de paquete.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: AssetVerse  │  Comprobante de pago + fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TENANT: empresa + email del HR                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: paquete / límite de empleados / monto             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: id de pago + sesión del gateway                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/assetverse/assetverse-api/internal/application/billing"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	payment *entity.Payment,
	hr *entity.User,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Comprobante de pago AssetVerse", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(payment))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tenantRow(hr))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailRows(payment)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(payment))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF del comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(payment *entity.Payment) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("AssetVerse", props.Text{Size: 16, Style: fontstyle.Bold, Color: colorPrimary}),
			text.New("Gestión de activos", props.Text{Top: 8, Size: 8, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Comprobante de pago", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
			text.New(payment.PaidAt.Format("2006-01-02 15:04"), props.Text{Top: 7, Size: 9, Align: align.Right, Color: colorGray}),
		),
	)
}

func tenantRow(hr *entity.User) core.Row {
	company := hr.CompanyName
	if company == "" {
		company = hr.Name
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(company, props.Text{Size: 11, Style: fontstyle.Bold}),
			text.New(hr.Email, props.Text{Top: 6, Size: 9, Color: colorGray}),
		),
	)
}

func detailRows(payment *entity.Payment) []core.Row {
	return []core.Row{
		detailRow("Paquete", payment.PackageName),
		detailRow("Monto", "USD $"+payment.Amount.StringFixed(2)),
		detailRow("Suscripción vigente desde", payment.PaidAt.Format("2006-01-02")),
	}
}

func detailRow(label, value string) core.Row {
	return row.New(8).Add(
		col.New(4).Add(text.New(label, props.Text{Size: 9, Color: colorGray})),
		col.New(8).Add(text.New(value, props.Text{Size: 10, Style: fontstyle.Bold})),
	)
}

func footerRow(payment *entity.Payment) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Pago: "+payment.ID, props.Text{Size: 7, Color: colorGray}),
			text.New("Sesión: "+payment.SessionID, props.Text{Top: 4, Size: 7, Color: colorGray}),
		),
	)
}
