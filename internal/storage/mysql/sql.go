package mysql

// Source table, read-only.
const listReviewsSQL = `
SELECT ReviewID, CustomerID, ProductID, ReviewDate, Rating, ReviewText
FROM fact_customer_reviews
WHERE ReviewID > ?
ORDER BY ReviewID
LIMIT ?
`

const insertClassifiedPrefix = "INSERT INTO customer_reviews_sentiment\n" +
	"  (ReviewID, CustomerID, ProductID, ReviewDate, Rating, ReviewText, Score, Sentiment, Bucket)\nVALUES "

// Re-running a batch overwrites the previous result for the same review.
const insertClassifiedOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  CustomerID = VALUES(CustomerID),\n" +
	"  ProductID  = VALUES(ProductID),\n" +
	"  ReviewDate = VALUES(ReviewDate),\n" +
	"  Rating     = VALUES(Rating),\n" +
	"  ReviewText = VALUES(ReviewText),\n" +
	"  Score      = VALUES(Score),\n" +
	"  Sentiment  = VALUES(Sentiment),\n" +
	"  Bucket     = VALUES(Bucket),\n" +
	"  updated_at = CURRENT_TIMESTAMP\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const classifiedColumns = `ReviewID, CustomerID, ProductID, ReviewDate, Rating, ReviewText, Score, Sentiment, Bucket`

const getClassifiedSQL = `
SELECT ` + classifiedColumns + `
FROM customer_reviews_sentiment
WHERE ReviewID = ?
`

const listClassifiedByProductSQL = `
SELECT ` + classifiedColumns + `
FROM customer_reviews_sentiment
WHERE ProductID = ?
ORDER BY ReviewDate DESC, ReviewID DESC
`
