package home

import "errors"

var ErrHomeNotFound = errors.New("home not found")
