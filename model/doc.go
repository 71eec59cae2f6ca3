// Package model defines the shared data types of the localsearch library:
// documents, contents, tokens and search results.
package model
