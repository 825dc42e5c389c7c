package services

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const (
	IDFormatUUID = "uuid"
	IDFormatULID = "ulid"
)

// IDGenerator returns a fresh random id or an error if the random
// source is unavailable.
type IDGenerator func() (string, error)

func NewUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func NewULID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func IDGeneratorFor(format string) (IDGenerator, error) {
	switch format {
	case "", IDFormatUUID:
		return NewUUID, nil
	case IDFormatULID:
		return NewULID, nil
	default:
		return nil, fmt.Errorf("unknown id format: %s", format)
	}
}
