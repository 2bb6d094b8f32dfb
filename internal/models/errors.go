package models

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrNotFound       = status.Errorf(codes.NotFound, "not found")
	ErrProductIDTaken = status.Errorf(codes.AlreadyExists, "product id already taken")

	// ErrTransportAnomaly marks an inbound payload that lacks a required field.
	ErrTransportAnomaly = errors.New("transport anomaly")

	ErrMissingRetailer = errors.New("missing website")
)
