/*
Package loader reads structured files from disk, validates every record
against a schema.Schema and returns path-tagged results.

# Loaders

Single-file loaders return a *result.Single:

  - TextLoader: the whole file as a string
  - JSONLoader: one JSON value validated as T
  - ImageLoader: a decoded image (jpeg, png, gif, bmp, tiff, webp)

Row loaders return a *result.Collection whose values all carry the file path:

  - CSVLoader: header row plus one record per data row
  - JSONLLoader: one record per non-blank line
  - ParquetLoader: one record per stored row
  - SQLiteLoader and TableLoader: one record per table row

DirectoryLoader applies a single-file loader to every matching file of a
directory (NewJSONsLoader, NewTextFilesLoader, NewImageFilesLoader). Registry
picks a row loader by file extension.

# Errors

Every failure is a *types.Error: NOT_FOUND for a missing path, INVALID_PATH
for a file where a directory was expected or the reverse, PARSE_ERROR for
malformed content, SCHEMA_VIOLATION for a rejected record. The first failure
aborts the load and nothing partial is returned.

# Usage

	s := schema.MustFor[Person]()
	people, err := loader.NewCSVLoader(s).Load(ctx, "people.csv")
	if err != nil {
		return err
	}
	for _, p := range people.Values {
		fmt.Println(p.Path, p.Value.Name)
	}
*/
package loader
