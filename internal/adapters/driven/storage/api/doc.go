// Package api implements the document store against the remote document
// REST API. Requests carry a bearer token, a per-request id and are
// throttled client side. Nothing is retried.
//
// Endpoints, relative to the base URL:
//
//	POST   documents                      list an owner's documents
//	DELETE documents                      delete a batch of documents
//	POST   documents/upload               upload files (multipart)
//	GET    documents/download/{filename}/ stream a document
//	POST   files/reload                   re-process an owner's files
//	GET    language?auth0_id=             read the owner's language
//	POST   language                       change the owner's language
package api
