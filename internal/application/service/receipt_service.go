package service

import (
	"context"
	"fmt"

	"github.com/instabill/instabill-api/internal/domain/billing"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/internal/domain/repository"
	"github.com/instabill/instabill-api/pkg/printer"
)

// ReceiptService formats finalized transactions and sends them to the
// thermal printer. It implements ReceiptPrinter for the billing core.
type ReceiptService struct {
	printer      printer.Printer
	settingsRepo repository.SettingsRepository
	printerType  string
	charWidth    int
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(p printer.Printer, settingsRepo repository.SettingsRepository, printerType string, charWidth int) *ReceiptService {
	if charWidth <= 0 {
		charWidth = 32
	}
	return &ReceiptService{
		printer:      p,
		settingsRepo: settingsRepo,
		printerType:  printerType,
		charWidth:    charWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt formats and prints a finalized sale.
func (s *ReceiptService) PrintReceipt(ctx context.Context, txn *entity.Transaction) error {
	profile, err := s.settingsRepo.GetStoreProfile(ctx)
	if err != nil {
		profile = entity.DefaultStoreProfile()
	}

	data := s.formatReceipt(profile, txn)
	if err := s.printer.Print(data); err != nil {
		return fmt.Errorf("failed to print receipt %s: %w", txn.ReceiptNo, err)
	}
	return nil
}

// formatReceipt converts a transaction into ESC/POS bytes.
func (s *ReceiptService) formatReceipt(profile *entity.StoreProfile, txn *entity.Transaction) []byte {
	doc := printer.NewDocument(s.charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(profile.Name).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if profile.AddressLine1 != "" {
		doc.Text(profile.AddressLine1)
	}
	if profile.AddressLine2 != "" {
		doc.Text(profile.AddressLine2)
	}
	if profile.Phone != "" {
		doc.Text(profile.Phone)
	}
	if profile.GSTIN != "" {
		doc.TextF("GSTIN: %s", profile.GSTIN)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", txn.ReceiptNo).
		KeyValue("Date:", txn.Date).
		KeyValue("Payment:", txn.PaymentMethod.String())

	if txn.CustomerName != nil {
		doc.KeyValue("Customer:", *txn.CustomerName)
	}

	doc.Separator('-')

	var subtotal int64
	for _, item := range txn.Items {
		lineTotal := item.PriceCents * int64(item.Quantity)
		subtotal += lineTotal
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", billing.DecimalFromCents(lineTotal)))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", billing.DecimalFromCents(item.PriceCents))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", billing.DecimalFromCents(subtotal))).
		KeyValue(fmt.Sprintf("GST (%d%%):", billing.TaxRatePercent), fmt.Sprintf("%.2f", billing.DecimalFromCents(billing.TaxOn(subtotal))))

	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", billing.DecimalFromCents(txn.TotalCents))).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Thank you, visit again!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
