package worker

// Processes receipt jobs from QueueReceipt: renders the PDF ticket for a
// committed sale, then chains an email job so the customer gets the receipt
// attached. The sale is re-read by id — the snapshot fields on the record
// mean this works even if the product was deleted in the meantime.

import (
	"context"
	"encoding/json"
	"fmt"

	"stockroom/internal/infra"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReceiptWorker struct {
	saleRepo    repository.SaleRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewReceiptWorker(saleRepo repository.SaleRepository, dispatcher *Dispatcher, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{saleRepo: saleRepo, dispatcher: dispatcher, storagePath: storagePath}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale id")
		return nil
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("receipt_worker: load sale %s: %w", payload.SaleID, err)
	}

	pdfPath, err := infra.GenerateReceiptPDF(sale, w.storagePath)
	if err != nil {
		return fmt.Errorf("receipt_worker: render pdf: %w", err)
	}
	log.Info().Str("sale_id", payload.SaleID).Str("pdf", pdfPath).Msg("receipt_worker: pdf generated")

	if payload.CustomerEmail == "" {
		return nil
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.CustomerEmail,
		Subject: "Your receipt",
		Body:    payload.ReceiptText,
		PDFPath: pdfPath,
	})
}
