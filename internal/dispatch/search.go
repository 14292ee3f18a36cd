package dispatch

// SearchStatement produces one source's statement for a unified search,
// with the term bound as a LIKE parameter rather than spliced into the
// statement text. The returned args repeat the wildcarded term once per
// placeholder. Source/type pairs with nothing to search yield a stub
// statement with no args; its single message row is executed like any
// other result and counts as one match.
func (d *Dispatcher) SearchStatement(src, term, searchType string) (string, []interface{}) {
	switch searchType {
	case "", "id":
		// No catalogued source keys records by free-text id; fall back
		// to the name search.
		searchType = "all"
	}

	pattern := "%" + term + "%"
	bind := func(statement string, n int) (string, []interface{}) {
		args := make([]interface{}, n)
		for i := range args {
			args[i] = pattern
		}
		return d.expand(statement), args
	}

	switch src {
	case "school_erp":
		switch searchType {
		case "name", "all":
			return bind(`SELECT 'Student' as type, name, email, admission_no as id
FROM sms_students
WHERE name LIKE ?
UNION ALL
SELECT 'Teacher' as type, CONCAT(first_name, ' ', last_name) as name,
       email, staff_id as id
FROM sms_teachers
WHERE first_name LIKE ?
   OR last_name LIKE ?
LIMIT %d`, 3)
		case "email":
			return bind(`SELECT 'Student' as type, name, email, admission_no as id
FROM sms_students
WHERE email LIKE ?
UNION ALL
SELECT 'Teacher' as type, CONCAT(first_name, ' ', last_name) as name,
       email, staff_id as id
FROM sms_teachers
WHERE email LIKE ?
LIMIT %d`, 2)
		}
	case "chinook":
		switch searchType {
		case "name", "all":
			return bind(`SELECT 'Artist' as type, Name as name, NULL as email, ArtistId as id
FROM artist
WHERE Name LIKE ?
UNION ALL
SELECT 'Customer' as type, CONCAT(FirstName, ' ', LastName) as name,
       Email as email, CustomerId as id
FROM customer
WHERE FirstName LIKE ?
   OR LastName LIKE ?
LIMIT %d`, 3)
		case "email":
			return bind(`SELECT 'Customer' as type, CONCAT(FirstName, ' ', LastName) as name,
       Email as email, CustomerId as id
FROM customer
WHERE Email LIKE ?
LIMIT %d`, 1)
		case "title":
			return bind(`SELECT 'Album' as type, Title as name, NULL as email, AlbumId as id
FROM album
WHERE Title LIKE ?
UNION ALL
SELECT 'Track' as type, Name as name, NULL as email, TrackId as id
FROM track
WHERE Name LIKE ?
LIMIT %d`, 2)
		}
	case "sakila":
		switch searchType {
		case "name", "all":
			return bind(`SELECT 'Actor' as type, CONCAT(first_name, ' ', last_name) as name,
       NULL as email, actor_id as id
FROM actor
WHERE first_name LIKE ?
   OR last_name LIKE ?
UNION ALL
SELECT 'Customer' as type, CONCAT(first_name, ' ', last_name) as name,
       email, customer_id as id
FROM customer
WHERE first_name LIKE ?
   OR last_name LIKE ?
LIMIT %d`, 4)
		case "title":
			return bind(`SELECT 'Film' as type, title as name, NULL as email, film_id as id
FROM film
WHERE title LIKE ?
LIMIT %d`, 1)
		}
	}

	return "SELECT 'No results' as message", nil
}
