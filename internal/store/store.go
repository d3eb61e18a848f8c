// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists templates and documents. Templates are read from a
// directory of files; documents live either in a data directory of JSON files
// or in PostgreSQL, behind the DocumentStore interface.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"fiches/internal/models"
)

// ErrNotFound is returned by Update when the document does not exist.
var ErrNotFound = errors.New("document not found")

// DocumentStore persists documents and their index entries. Find returns
// (nil, nil) for an unknown id.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	Find(ctx context.Context, id string) (*models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
	List(ctx context.Context) ([]models.DocumentIndexEntry, error)
}

// validID reports whether id is a document id in canonical UUID form. Other
// ids never reach the filesystem or the database.
func validID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.String() == id
}
