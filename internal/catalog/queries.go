package catalog

import "fmt"

// DefaultEndpoint is the public Elden Ring GraphQL API.
const DefaultEndpoint = "https://eldenring.fanapis.com/api/graphql"

// namesLimit caps list queries; the API pages at 20 by default.
const namesLimit = 1000

// Query pairs the two GraphQL documents used for a category. Every category
// is exposed as a root field with the same name as the category.
type Query struct {
	Field    string
	AllNames string
	Details  string
}

// QueryFor builds the list and detail documents for category.
func QueryFor(category string) (Query, error) {
	if err := checkCategory(category); err != nil {
		return Query{}, err
	}
	return Query{
		Field:    category,
		AllNames: fmt.Sprintf("query { %s(limit: %d) { name } }", category, namesLimit),
		Details:  fmt.Sprintf("query ($name: String!) { %s(name: $name) { name image description } }", category),
	}, nil
}
