package mysql

// Cities go first: they reference countries.
const (
	deleteCitiesSQL    = `DELETE FROM cities`
	deleteCountriesSQL = `DELETE FROM countries`
	deleteSitesSQL     = `DELETE FROM sites`
)

const insertCountriesPrefix = "INSERT INTO countries\n  (position, name)\nVALUES "

const insertCitiesPrefix = "INSERT INTO cities\n  (country_position, position, name, description)\nVALUES "

const insertSitesPrefix = "INSERT INTO sites\n  (kind, position, name, description, image_url)\nVALUES "

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Position columns carry document order; every read sorts on them.
const selectCountriesSQL = `
SELECT position, name
FROM countries
ORDER BY position
`

const selectCitiesSQL = `
SELECT country_position, name, description
FROM cities
ORDER BY country_position, position
`

const selectSitesSQL = `
SELECT name, description, image_url
FROM sites
WHERE kind = ?
ORDER BY position
`
