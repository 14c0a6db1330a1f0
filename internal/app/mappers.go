package app

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"review_sentiment/internal/domain"
)

/********** alias registry (single source of truth) **********/

var reviewAliases = map[string][]string{
	"review_id":   {"ReviewID", "review_id", "reviewId", "id"},
	"customer_id": {"CustomerID", "customer_id", "customerId", "customer.id"},
	"product_id":  {"ProductID", "product_id", "productId", "product.id"},
	"review_date": {"ReviewDate", "review_date", "reviewDate", "date", "created_at"},
	"rating":      {"Rating", "rating.value", "rating", "stars"},
	"text":        {"ReviewText", "review_text", "reviewText", "text", "body", "comment"},
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) (any, bool) {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := obj[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// firstPresent returns the first alias present in m (a JSON null counts as present).
func firstPresent(m map[string]any, key string) (string, any, bool) {
	for _, p := range reviewAliases[key] {
		if v, ok := lookupAny(m, p); ok {
			return p, v, true
		}
	}
	return "", nil, false
}

func invalid(field string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, field, fmt.Sprintf(format, args...))
}

// asInteger accepts only integral numbers. Strings are never coerced.
func asInteger(field string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, invalid(field, "want an integer, got %v", n)
		}
		return int64(n), nil
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return 0, invalid(field, "want an integer, got %s", n)
		}
		return i, nil
	default:
		return 0, invalid(field, "want a number, got %T", v)
	}
}

func optionalID(m map[string]any, key string) (int64, error) {
	p, v, ok := firstPresent(m, key)
	if !ok || v == nil {
		return 0, nil
	}
	return asInteger(p, v)
}

/********** review mapper **********/

// MapReview converts a loosely typed payload into a Review. The rating must be
// an integral number in 1-5 and the text, when present, must be a string.
// Missing or null text is treated as empty.
func MapReview(m map[string]any) (domain.Review, error) {
	var rv domain.Review
	var err error

	if rv.ReviewID, err = optionalID(m, "review_id"); err != nil {
		return domain.Review{}, err
	}
	if rv.CustomerID, err = optionalID(m, "customer_id"); err != nil {
		return domain.Review{}, err
	}
	if rv.ProductID, err = optionalID(m, "product_id"); err != nil {
		return domain.Review{}, err
	}

	// Rating is required.
	p, v, ok := firstPresent(m, "rating")
	if !ok || v == nil {
		return domain.Review{}, invalid("Rating", "required")
	}
	stars, err := asInteger(p, v)
	if err != nil {
		return domain.Review{}, err
	}
	if err := domain.ValidateRating(int(stars)); err != nil {
		return domain.Review{}, err
	}
	rv.Rating = int(stars)

	if p, v, ok := firstPresent(m, "text"); ok && v != nil {
		s, isStr := v.(string)
		if !isStr {
			return domain.Review{}, invalid(p, "want a string, got %T", v)
		}
		rv.ReviewText = s
	}

	if p, v, ok := firstPresent(m, "review_date"); ok && v != nil {
		s, isStr := v.(string)
		if !isStr {
			return domain.Review{}, invalid(p, "want a date string, got %T", v)
		}
		d, err := parseDate(s)
		if err != nil {
			return domain.Review{}, invalid(p, "%v", err)
		}
		rv.ReviewDate = d
	}

	return rv, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
