// Package models contains the database models of the development backend.
package models
