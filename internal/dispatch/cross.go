package dispatch

import "strings"

// CrossSourceStatement produces the per-source statement for a
// cross-source question. The scenarios are checked in order; questions
// that fit none of them fall back to per-source entity counts, so every
// catalogued source always contributes comparable rows.
func (d *Dispatcher) CrossSourceStatement(src, description string) string {
	q := strings.ToLower(description)

	switch {
	case strings.Contains(q, "customer") && strings.Contains(q, "count"):
		switch src {
		case "school_erp":
			return "SELECT 'School Students' as entity_type, COUNT(*) as count FROM sms_students"
		case "chinook":
			return "SELECT 'Music Customers' as entity_type, COUNT(*) as count FROM customer"
		case "sakila":
			return "SELECT 'Movie Customers' as entity_type, COUNT(*) as count FROM customer"
		}
	case contains(q, "payment", "revenue"):
		switch src {
		case "school_erp":
			return "SELECT 'School Fees' as source, SUM(amount_paid) as total_revenue FROM fee_payments"
		case "chinook":
			return "SELECT 'Music Sales' as source, SUM(Total) as total_revenue FROM invoice"
		case "sakila":
			return "SELECT 'Movie Rentals' as source, SUM(amount) as total_revenue FROM payment"
		}
	case strings.Contains(q, "email"):
		switch src {
		case "school_erp":
			return "SELECT DISTINCT email, 'Student' as type FROM sms_students WHERE email IS NOT NULL LIMIT 100"
		case "chinook":
			return "SELECT DISTINCT Email as email, 'Music Customer' as type FROM customer WHERE Email IS NOT NULL LIMIT 100"
		case "sakila":
			return "SELECT DISTINCT email, 'Movie Customer' as type FROM customer WHERE email IS NOT NULL LIMIT 100"
		}
	case contains(q, "employee", "staff"):
		switch src {
		case "school_erp":
			return "SELECT staff_id as id, CONCAT(first_name, ' ', last_name) as name, role FROM sms_teachers WHERE status='active'"
		case "chinook":
			return "SELECT EmployeeId as id, CONCAT(FirstName, ' ', LastName) as name, Title as role FROM employee"
		case "sakila":
			return "SELECT staff_id as id, CONCAT(first_name, ' ', last_name) as name, 'Staff' as role FROM staff WHERE active=1"
		}
	}

	switch src {
	case "school_erp":
		return `SELECT 'Students' as entity, COUNT(*) as count FROM sms_students
UNION ALL
SELECT 'Teachers' as entity, COUNT(*) as count FROM sms_teachers`
	case "chinook":
		return `SELECT 'Artists' as entity, COUNT(*) as count FROM artist
UNION ALL
SELECT 'Albums' as entity, COUNT(*) as count FROM album
UNION ALL
SELECT 'Customers' as entity, COUNT(*) as count FROM customer`
	case "sakila":
		return `SELECT 'Films' as entity, COUNT(*) as count FROM film
UNION ALL
SELECT 'Actors' as entity, COUNT(*) as count FROM actor
UNION ALL
SELECT 'Customers' as entity, COUNT(*) as count FROM customer`
	}
	return "SELECT 'Unknown database' as error"
}
