// Package mocks contains generated test doubles for the port interfaces.
//
// The mocks are generated with go.uber.org/mock/mockgen. Regenerate after
// changing internal/ports:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/brickstash/catadm/internal/ports AuthAPI,CatalogAPI,Presigner,TokenStore
