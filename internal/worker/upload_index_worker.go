package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
	"github.com/R3MiX9002/my-gemini-app/internal/pkg/pdfextract"
	"github.com/R3MiX9002/my-gemini-app/internal/repository"
)

// ElementTypeUpload tags project elements created from uploaded files.
const ElementTypeUpload = "upload"

const pdfSummaryRunes = 500

// UploadIndexWorker turns upload events into project elements.
type UploadIndexWorker struct {
	conn      *amqp.Connection
	repo      *repository.ProjectElementRepository
	queueName string
	logger    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewUploadIndexWorker(conn *amqp.Connection, repo *repository.ProjectElementRepository, queueName string, logger *zap.Logger) *UploadIndexWorker {
	return &UploadIndexWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
		logger:    logger.Named("upload-index-worker"),
	}
}

func (w *UploadIndexWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}
	if _, err := ch.QueueDeclare(w.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(w.queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					w.logger.Error("index upload failed", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	w.logger.Info("worker started", zap.String("queue", w.queueName))
	return nil
}

func (w *UploadIndexWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *UploadIndexWorker) handle(ctx context.Context, body []byte) error {
	var event model.FileUploadedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode upload event failed: %w", err)
	}
	_, err := w.IndexUpload(ctx, event)
	return err
}

// IndexUpload records one ProjectElement for the uploaded file. PDF text that
// cannot be extracted is skipped, not fatal.
func (w *UploadIndexWorker) IndexUpload(ctx context.Context, event model.FileUploadedEvent) (*model.ProjectElement, error) {
	if event.SavedPath == "" {
		return nil, fmt.Errorf("upload event %d has no saved path", event.FileID)
	}

	summary := fmt.Sprintf("%s (%s, %d bytes)", event.Filename, event.MimeType, event.Size)
	if isPDF(event) {
		text, err := extractPDF(event.SavedPath)
		if err != nil {
			w.logger.Warn("pdf text extraction failed", zap.String("path", event.SavedPath), zap.Error(err))
		} else if text != "" {
			summary += "\n" + text
		}
	}

	element := &model.ProjectElement{
		Path:    event.SavedPath,
		Type:    ElementTypeUpload,
		Summary: summary,
	}
	if err := w.repo.Create(ctx, element); err != nil {
		return nil, err
	}
	w.logger.Debug("upload indexed", zap.Uint("file_id", event.FileID), zap.Uint("element_id", element.ID))
	return element, nil
}

func isPDF(event model.FileUploadedEvent) bool {
	return event.MimeType == "application/pdf" || strings.EqualFold(filepath.Ext(event.Filename), ".pdf")
}

func extractPDF(path string) (string, error) {
	return pdfextract.ExtractFile(path, pdfSummaryRunes)
}
