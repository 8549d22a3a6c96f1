// Package main provides the entry point of the Portal de Prestadores.
// It runs the server rendered portal on top of the backend REST API, keeping
// one portal session per browser with its principal, permissions and pending
// notifications. The devapi command serves a development backend backed by gorm.
package main
