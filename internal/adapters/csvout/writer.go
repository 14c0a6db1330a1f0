// Package csvout writes classified reviews as a CSV table.
package csvout

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"review_sentiment/internal/domain"
)

const DefaultPath = "customer_reviews_sentiment_output.csv"

const dateLayout = "2006-01-02"

// Header column names are part of the downstream contract.
var Header = []string{
	"ReviewID", "CustomerID", "ProductID", "ReviewDate", "Rating", "ReviewText",
	"Score", "Sentiment", "Bucket",
}

// Writer is a domain.Sink. The header is written before the first row.
type Writer struct {
	mu      sync.Mutex
	w       *csv.Writer
	closer  io.Closer
	started bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// Create truncates path and writes to it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

func Record(cr domain.ClassifiedReview) []string {
	date := ""
	if !cr.ReviewDate.IsZero() {
		date = cr.ReviewDate.Format(dateLayout)
	}
	return []string{
		strconv.FormatInt(cr.ReviewID, 10),
		strconv.FormatInt(cr.CustomerID, 10),
		strconv.FormatInt(cr.ProductID, 10),
		date,
		strconv.Itoa(cr.Rating),
		cr.ReviewText,
		strconv.FormatFloat(cr.Score, 'f', -1, 64),
		string(cr.Sentiment),
		string(cr.Bucket),
	}
}

func (w *Writer) WriteBatch(_ context.Context, rs []domain.ClassifiedReview) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		if err := w.w.Write(Header); err != nil {
			return err
		}
		w.started = true
	}
	for _, cr := range rs {
		if err := w.w.Write(Record(cr)); err != nil {
			return err
		}
	}
	w.w.Flush()
	return w.w.Error()
}

// Close writes the header if nothing was written yet, flushes and closes the file.
func (w *Writer) Close() error {
	err := w.WriteBatch(context.Background(), nil)
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
