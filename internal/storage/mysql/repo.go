package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"review_sentiment/internal/adapters/observability"
	"review_sentiment/internal/domain"
)

func valDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(s rowScanner, extra ...any) (domain.Review, error) {
	var (
		rv   domain.Review
		date sql.NullTime
		text sql.NullString
	)
	dest := append([]any{&rv.ReviewID, &rv.CustomerID, &rv.ProductID, &date, &rv.Rating, &text}, extra...)
	if err := s.Scan(dest...); err != nil {
		return domain.Review{}, err
	}
	if date.Valid {
		rv.ReviewDate = date.Time
	}
	if text.Valid {
		rv.ReviewText = text.String
	}
	return rv, nil
}

func (r *Repo) ListReviews(ctx context.Context, afterID int64, limit int) (out []domain.Review, err error) {
	defer func(start time.Time) { observability.ObserveQuery("list_reviews", err, time.Since(start)) }(time.Now())

	rows, err := r.db.QueryContext(ctx, listReviewsSQL, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateRating(rv.Rating); err != nil {
			return nil, fmt.Errorf("review %d: %w", rv.ReviewID, err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) UpsertClassified(ctx context.Context, rs []domain.ClassifiedReview) (err error) {
	if len(rs) == 0 {
		return nil
	}
	defer func(start time.Time) { observability.ObserveQuery("upsert_classified", err, time.Since(start)) }(time.Now())

	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*9) // 9 params per row
	for _, cr := range rs {
		values = append(values, "(?,?,?,?,?,?,?,?,?)")
		args = append(args,
			cr.ReviewID,
			cr.CustomerID,
			cr.ProductID,
			valDate(cr.ReviewDate),
			cr.Rating,
			cr.ReviewText,
			cr.Score,
			string(cr.Sentiment),
			string(cr.Bucket),
		)
	}
	sqlStr := insertClassifiedPrefix + strings.Join(values, ",") + insertClassifiedOnDup
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func scanClassified(s rowScanner) (domain.ClassifiedReview, error) {
	var (
		score     float64
		sentiment string
		bucket    string
	)
	rv, err := scanReview(s, &score, &sentiment, &bucket)
	if err != nil {
		return domain.ClassifiedReview{}, err
	}
	return domain.ClassifiedReview{
		ScoredReview: domain.ScoredReview{Review: rv, Score: score},
		Sentiment:    domain.Label(sentiment),
		Bucket:       domain.Bucket(bucket),
	}, nil
}

func (r *Repo) GetClassified(ctx context.Context, reviewID int64) (cr domain.ClassifiedReview, err error) {
	defer func(start time.Time) { observability.ObserveQuery("get_classified", err, time.Since(start)) }(time.Now())

	cr, err = scanClassified(r.db.QueryRowContext(ctx, getClassifiedSQL, reviewID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ClassifiedReview{}, domain.ErrNotFound
	}
	return cr, err
}

func (r *Repo) ListClassifiedByProduct(ctx context.Context, productID int64) (out []domain.ClassifiedReview, err error) {
	defer func(start time.Time) { observability.ObserveQuery("list_classified", err, time.Since(start)) }(time.Now())

	rows, err := r.db.QueryContext(ctx, listClassifiedByProductSQL, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		cr, err := scanClassified(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
