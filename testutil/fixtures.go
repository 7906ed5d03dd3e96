package testutil

// Fixture file contents used across package tests.
const (
	// PeopleCSV has a header and two valid rows.
	PeopleCSV = "id,name,age\n1,John,30\n2,Jane,25\n"

	// PeopleHeaderOnlyCSV has a header and no data.
	PeopleHeaderOnlyCSV = "id,name,age\n"

	// PeopleInvalidCSV fails validation on its third line.
	PeopleInvalidCSV = "id,name,age\n1,John,30\n2,Jane,twenty-five\n"

	// PeopleJSONL has two records separated by a blank line.
	PeopleJSONL = "{\"id\":1,\"name\":\"John\",\"age\":30}\n\n{\"id\":2,\"name\":\"Jane\",\"age\":25}\n"

	// PersonJSON is a single record without an age.
	PersonJSON = `{"id": 1, "name": "X"}`

	// MalformedJSON is truncated.
	MalformedJSON = `{"id": 1, "name": `
)
