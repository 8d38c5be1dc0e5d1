// Package agendasdk provides a Go client for the agenda contact-book API
// along with the request/response and error types shared with the server.
//
// Basic usage:
//
//	client := agendasdk.NewClient("http://localhost:8080")
//	if _, err := client.Register(ctx, "ana@example.com", "Ana", "secret1"); err != nil {
//		return err
//	}
//	session, err := client.Login(ctx, "ana@example.com", "secret1")
//	if err != nil {
//		return err
//	}
//	contact, err := session.CreateContact(ctx, "Bob", "555-1111", "bob@example.com")
//
// Failures are returned as *APIError values carrying the stable error kind
// and the HTTP status code.
package agendasdk
