// Package azure stores documents as blobs in an Azure Storage container.
//
// Blobs are laid out by package objectkey with an empty prefix:
// {owner}/{filename}, plus the .reload and .language markers. The client
// authenticates with a connection string or, given only an account URL,
// with the default Azure credential chain.
package azure
