package dispatch

import "strings"

// sakilaTemplates covers the movie rental source.
var sakilaTemplates = []Template{
	{
		Match: func(q string) bool {
			return contains(q, "film", "movie") && strings.Contains(q, "actor")
		},
		Statement: `SELECT f.title, a.first_name, a.last_name
FROM film f
JOIN film_actor fa ON f.film_id = fa.film_id
JOIN actor a ON fa.actor_id = a.actor_id
ORDER BY f.title
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return contains(q, "film", "movie")
		},
		Statement: `SELECT film_id, title, release_year, rating, length
FROM film
ORDER BY title
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "actor")
		},
		Statement: `SELECT actor_id, first_name, last_name
FROM actor
ORDER BY last_name, first_name
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "rental")
		},
		Statement: `SELECT r.rental_id, c.first_name, c.last_name,
       f.title, r.rental_date, r.return_date
FROM rental r
JOIN customer c ON r.customer_id = c.customer_id
JOIN inventory i ON r.inventory_id = i.inventory_id
JOIN film f ON i.film_id = f.film_id
ORDER BY r.rental_date DESC
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "customer")
		},
		Statement: `SELECT customer_id, first_name, last_name, email, active
FROM customer
ORDER BY last_name, first_name
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "category")
		},
		Statement: `SELECT category_id, name
FROM category
ORDER BY name`,
	},
	{
		Match: func(q string) bool { return true },
		Statement: `SELECT 'Sakila Movie Rental Database. Ask about: films, actors,
customers, rentals, categories' as info`,
	},
}
