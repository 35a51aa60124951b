// Package pagination selects the records of one page of a collection and
// derives the navigation links and page count of the response.
//
// A Strategy turns the request's page parameters into a Range. The page-number
// ("paged") and offset ("offset") strategies are built in; applications may
// register their own. Record counts come from a CounterRegistry, which picks
// the Counter that understands the collection kind at hand.
//
// An Engine is configured once at startup and shared. Each request gets its
// own Context, which memoizes the record count for the duration of one
// document build.
package pagination
