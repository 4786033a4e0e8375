package repositories

import "errors"

// ErrNotFound is wrapped by all repositories when a referenced entity
// does not exist, so handlers can map it to a 404 with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is wrapped when a create collides with a unique
// constraint, such as an already registered email.
var ErrDuplicate = errors.New("already exists")
