// Package docstore implements store.Collection over database/sql.
//
// Every collection is a table holding one JSON document per row:
//
//	id          primary key (the document's identifier)
//	body        the JSON encoding of the document
//	created_at  insertion time, used for ordering
//	updated_at  last merge time
//
// SQL differences between engines are isolated behind the Dialect interface,
// implemented by the postgres and sqlite platform packages.
package docstore
