package dispatch

import "strings"

// chinookTemplates covers the music store source. Album questions that
// also mention the artist get the joined listing.
var chinookTemplates = []Template{
	{
		Match: func(q string) bool {
			return strings.Contains(q, "album") && strings.Contains(q, "artist")
		},
		Statement: `SELECT ar.Name as Artist, al.Title as Album
FROM album al
JOIN artist ar ON al.ArtistId = ar.ArtistId
ORDER BY ar.Name, al.Title
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "album")
		},
		Statement: `SELECT AlbumId, Title
FROM album
ORDER BY Title
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "artist")
		},
		Statement: `SELECT ArtistId, Name
FROM artist
ORDER BY Name
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return contains(q, "track", "song")
		},
		Statement: `SELECT t.Name as Track, al.Title as Album, ar.Name as Artist
FROM track t
JOIN album al ON t.AlbumId = al.AlbumId
JOIN artist ar ON al.ArtistId = ar.ArtistId
ORDER BY t.Name
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "customer")
		},
		Statement: `SELECT CustomerId, FirstName, LastName, Email, Country
FROM customer
ORDER BY LastName, FirstName
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return contains(q, "invoice", "sale")
		},
		Statement: `SELECT i.InvoiceId, c.FirstName, c.LastName, i.InvoiceDate, i.Total
FROM invoice i
JOIN customer c ON i.CustomerId = c.CustomerId
ORDER BY i.InvoiceDate DESC
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "playlist")
		},
		Statement: `SELECT PlaylistId, Name
FROM playlist
ORDER BY Name
LIMIT %d`,
	},
	{
		Match: func(q string) bool { return true },
		Statement: `SELECT 'Chinook Music Store Database. Ask about: albums, artists, tracks,
customers, invoices, playlists' as info`,
	},
}
