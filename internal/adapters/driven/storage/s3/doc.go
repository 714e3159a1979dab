// Package s3 stores documents as objects in an S3 bucket.
//
// Objects live at {prefix}/{owner}/{filename}. Two marker objects sit next
// to the documents and are hidden from listings: .reload records the last
// reload request and .language holds the owner's language.
package s3
