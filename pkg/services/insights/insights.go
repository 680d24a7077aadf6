// Package insights carries the fixed commentary attached to each business
// question. The text is presentation content and is never derived from the
// data.
package insights

// Question identifiers, shared by the HTTP API and the terminal reporter.
const (
	QuestionSummary  = "summary"
	QuestionTrend    = "monthly-trend"
	QuestionCategory = "categories"
	QuestionFreight  = "freight"
	QuestionPayments = "payments"
	QuestionRFM      = "rfm"
)

var titles = map[string]string{
	QuestionSummary:  "Dataset summary",
	QuestionTrend:    "Monthly order trend",
	QuestionCategory: "Top product categories",
	QuestionFreight:  "Price vs freight correlation",
	QuestionPayments: "Payment type distribution",
	QuestionRFM:      "Customer RFM profile",
}

var texts = map[string]string{
	QuestionSummary: "Headline metrics for the selected scope. " +
		"Use them as context when reading the per-question breakdowns.",
	QuestionTrend: "Most customers place a single order and spending is small and uneven. " +
		"Recommendation: use loyalty rewards and email marketing to grow repeat orders.",
	QuestionCategory: "Low-priced categories sell most often, while expensive products see fewer " +
		"but higher-value transactions. Recommendation: focus promotion on the popular " +
		"categories and apply bundling or upselling for the rest.",
	QuestionFreight: "Transactions concentrate where freight is low and high freight suppresses " +
		"purchases. Recommendation: offer free shipping above a minimum basket value.",
	QuestionPayments: "Credit cards dominate; alternatives such as boleto and vouchers stay " +
		"marginal. Recommendation: widen the payment options and run promotions on the " +
		"alternative methods.",
	QuestionRFM: "Most customers transact rarely. Recommendation: segment the customer base " +
		"and target promising segments with dedicated promotions.",
}

// Questions lists the known question identifiers in presentation order.
func Questions() []string {
	return []string{
		QuestionSummary,
		QuestionTrend,
		QuestionCategory,
		QuestionFreight,
		QuestionPayments,
		QuestionRFM,
	}
}

// Title returns a short display name for a question, empty when unknown.
func Title(question string) string {
	return titles[question]
}

// For returns the fixed commentary for a question, empty when unknown.
func For(question string) string {
	return texts[question]
}
