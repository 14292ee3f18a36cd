package dispatch

import "strings"

// Aggregate metric names accepted by AggregateMetrics.
const (
	MetricTotalRecords = "total_records"
	MetricCustomers    = "customers"
	MetricPayments     = "payments"
	MetricEntityCounts = "entity_counts"
)

// AggregateMetrics lists the supported metric names.
func AggregateMetrics() []string {
	return []string{MetricTotalRecords, MetricCustomers, MetricPayments, MetricEntityCounts}
}

// CustomerCountStatement returns the statement counting a source's
// customer-like entities. The school source counts students.
func (d *Dispatcher) CustomerCountStatement(src string) (string, bool) {
	switch src {
	case "school_erp":
		return "SELECT COUNT(*) as count FROM sms_students", true
	case "chinook", "sakila":
		return "SELECT COUNT(*) as count FROM customer", true
	}
	return "", false
}

// PaymentStatement returns the statement summarizing a source's payments.
func (d *Dispatcher) PaymentStatement(src string) (string, bool) {
	switch src {
	case "school_erp":
		return "SELECT COUNT(*) as count, SUM(amount_paid) as total FROM fee_payments", true
	case "chinook":
		return "SELECT COUNT(*) as count, SUM(Total) as total FROM invoice", true
	case "sakila":
		return "SELECT COUNT(*) as count, SUM(amount) as total FROM payment", true
	}
	return "", false
}

// EntityCountStatements returns the per-entity count statements of a
// source, keyed by entity name.
func (d *Dispatcher) EntityCountStatements(src string) map[string]string {
	switch src {
	case "school_erp":
		return map[string]string{
			"students": "SELECT COUNT(*) as c FROM sms_students",
			"teachers": "SELECT COUNT(*) as c FROM sms_teachers",
			"classes":  "SELECT COUNT(*) as c FROM sms_class_section",
		}
	case "chinook":
		return map[string]string{
			"artists":   "SELECT COUNT(*) as c FROM artist",
			"albums":    "SELECT COUNT(*) as c FROM album",
			"tracks":    "SELECT COUNT(*) as c FROM track",
			"customers": "SELECT COUNT(*) as c FROM customer",
		}
	case "sakila":
		return map[string]string{
			"films":     "SELECT COUNT(*) as c FROM film",
			"actors":    "SELECT COUNT(*) as c FROM actor",
			"customers": "SELECT COUNT(*) as c FROM customer",
		}
	}
	return nil
}

// CountStatement counts the rows of one table. The table name comes from
// the source's own catalog, not from user input; embedded backticks are
// stripped rather than quoted.
func CountStatement(table string) string {
	clean := strings.ReplaceAll(table, "`", "")
	return "SELECT COUNT(*) as count FROM `" + clean + "`"
}
