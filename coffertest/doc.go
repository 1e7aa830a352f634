// Package coffertest provides mocks and fixtures for testing handlers,
// decorators and authenticators without running a full application.
package coffertest
